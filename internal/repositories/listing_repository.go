package repositories

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"market-service/internal/models"
)

var ErrListingNotFound = errors.New("listing not found")

// ListingRepository abstracts the listing collection.
type ListingRepository interface {
	Create(ctx context.Context, input models.ListingInput, seller models.User) (models.Listing, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (models.Listing, error)
	Query(ctx context.Context, search string, tab models.Tab, filters *models.QueryFilters) ([]models.Listing, error)
}

// ListingRepo is an in-memory implementation of ListingRepository. The
// collection is ordered newest first; writes are serialized behind a mutex
// and queries hand out copies, never the backing slice.
type ListingRepo struct {
	mu       sync.RWMutex
	listings []models.Listing
}

// NewListingRepo constructs an empty ListingRepo.
func NewListingRepo() *ListingRepo {
	return &ListingRepo{}
}

// Load replaces the collection, keeping the given order. Used for seeding.
func (r *ListingRepo) Load(listings []models.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings = append([]models.Listing(nil), listings...)
}

// Create fills unset fields with defaults, stamps the seller snapshot and
// prepends the listing so default ordering stays most-recent-first.
// It never fails.
func (r *ListingRepo) Create(ctx context.Context, input models.ListingInput, seller models.User) (models.Listing, error) {
	listing := models.Listing{
		ID:             newID("lst"),
		Type:           input.Type,
		Category:       "iPhone",
		IsQuickSale:    input.IsQuickSale,
		AllowOffers:    input.AllowOffers,
		Brand:          "Apple",
		Model:          input.Model,
		Storage:        input.Storage,
		Condition:      append([]models.Condition(nil), input.Condition...),
		Region:         input.Region,
		SimStatus:      input.SimStatus,
		Price:          input.Price,
		Currency:       "₦",
		BatteryHealth:  input.BatteryHealth,
		Color:          input.Color,
		Description:    input.Description,
		Images:         append([]string(nil), input.Images...),
		VideoURL:       input.VideoURL,
		SellerID:       seller.ID,
		SellerName:     seller.Name,
		SellerPhone:    seller.Phone,
		SellerVerified: seller.IsVerified,
		Location:       seller.Location,
		CreatedAt:      time.Now().UTC(),
		Status:         models.ListingStatusActive,
		Offers:         []models.Offer{},
	}

	if listing.Type == "" {
		listing.Type = models.ListingTypeSupply
	}
	if listing.Model == "" {
		listing.Model = "Unknown Model"
	}
	if listing.Storage == "" {
		listing.Storage = "128GB"
	}
	if len(listing.Condition) == 0 {
		listing.Condition = []models.Condition{models.ConditionClean}
	}
	if listing.Region == "" {
		listing.Region = "UK"
	}
	if listing.SimStatus == "" {
		listing.SimStatus = "Physical Sim"
	}
	if listing.BatteryHealth == 0 {
		listing.BatteryHealth = 100
	}
	if listing.Color == "" {
		listing.Color = "Black"
	}
	if listing.Images == nil {
		listing.Images = []string{}
	}

	r.mu.Lock()
	r.listings = append([]models.Listing{listing}, r.listings...)
	r.mu.Unlock()

	return listing, nil
}

// Delete removes the listing with the given id. Deleting an absent id is a
// no-op, reported through the returned flag rather than an error.
func (r *ListingRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.listings {
		if l.ID == id {
			r.listings = append(r.listings[:i], r.listings[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// GetByID fetches a listing by id.
func (r *ListingRepo) GetByID(ctx context.Context, id string) (models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.listings {
		if l.ID == id {
			return l, nil
		}
	}
	return models.Listing{}, ErrListingNotFound
}

// Query runs the browse pipeline: active listings only, partitioned by tab,
// narrowed by free-text search and filters, then sorted. The three tab
// partitions are disjoint and together cover every active supply/demand
// listing. The result is a fresh slice; the store is not mutated.
func (r *ListingRepo) Query(ctx context.Context, search string, tab models.Tab, filters *models.QueryFilters) ([]models.Listing, error) {
	r.mu.RLock()
	result := make([]models.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		if l.Status == models.ListingStatusActive {
			result = append(result, l)
		}
	}
	r.mu.RUnlock()

	result = filterTab(result, tab)

	if search != "" {
		lower := strings.ToLower(search)
		result = keep(result, func(l models.Listing) bool {
			return strings.Contains(strings.ToLower(l.Model), lower) ||
				strings.Contains(strings.ToLower(l.Location), lower)
		})
	}

	if filters != nil {
		result = applyFilters(result, filters)
	}

	sortListings(result, sortOrder(filters))
	return result, nil
}

func filterTab(listings []models.Listing, tab models.Tab) []models.Listing {
	switch tab {
	case models.TabQuickSale:
		return keep(listings, func(l models.Listing) bool {
			return l.IsQuickSale && l.Type == models.ListingTypeSupply
		})
	case models.TabDemand:
		return keep(listings, func(l models.Listing) bool {
			return l.Type == models.ListingTypeDemand
		})
	default:
		return keep(listings, func(l models.Listing) bool {
			return l.Type == models.ListingTypeSupply && !l.IsQuickSale
		})
	}
}

func applyFilters(listings []models.Listing, f *models.QueryFilters) []models.Listing {
	if f.MinPrice > 0 {
		listings = keep(listings, func(l models.Listing) bool { return l.Price >= f.MinPrice })
	}
	if f.MaxPrice > 0 {
		listings = keep(listings, func(l models.Listing) bool { return l.Price <= f.MaxPrice })
	}
	if len(f.Conditions) > 0 {
		listings = keep(listings, func(l models.Listing) bool {
			return conditionsIntersect(l.Condition, f.Conditions)
		})
	}
	if len(f.Regions) > 0 {
		listings = keep(listings, func(l models.Listing) bool {
			return containsRegion(f.Regions, l.Region)
		})
	}
	if len(f.Storage) > 0 {
		listings = keep(listings, func(l models.Listing) bool {
			return containsString(f.Storage, l.Storage)
		})
	}
	return listings
}

func sortOrder(f *models.QueryFilters) models.SortOrder {
	if f == nil || f.SortBy == "" {
		return models.SortNewest
	}
	return f.SortBy
}

// sortListings is stable so equal keys keep their stored relative order.
func sortListings(listings []models.Listing, by models.SortOrder) {
	switch by {
	case models.SortPriceAsc:
		sort.SliceStable(listings, func(i, j int) bool { return listings[i].Price < listings[j].Price })
	case models.SortPriceDesc:
		sort.SliceStable(listings, func(i, j int) bool { return listings[i].Price > listings[j].Price })
	default:
		sort.SliceStable(listings, func(i, j int) bool { return listings[i].CreatedAt.After(listings[j].CreatedAt) })
	}
}

func keep(listings []models.Listing, pred func(models.Listing) bool) []models.Listing {
	out := listings[:0]
	for _, l := range listings {
		if pred(l) {
			out = append(out, l)
		}
	}
	return out
}

// conditionsIntersect uses any-tag-matches semantics, not all-tags-match.
func conditionsIntersect(have, want []models.Condition) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func containsRegion(set []models.Region, r models.Region) bool {
	for _, v := range set {
		if v == r {
			return true
		}
	}
	return false
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
