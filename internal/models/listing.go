package models

import "time"

// ListingType separates sell-side and buy-side posts.
type ListingType string

const (
	ListingTypeSupply ListingType = "supply"
	ListingTypeDemand ListingType = "demand"
)

// ListingStatus is the listing lifecycle state.
type ListingStatus string

const (
	ListingStatusActive  ListingStatus = "active"
	ListingStatusSold    ListingStatus = "sold"
	ListingStatusPending ListingStatus = "pending"
)

// Condition is a defect or cleanliness tag. A listing carries a non-empty
// set of these; the store persists whatever set it is given.
type Condition string

const (
	ConditionClean       Condition = "Clean"
	ConditionDM          Condition = "DM"
	ConditionDDM         Condition = "DDM"
	ConditionBM          Condition = "BM"
	ConditionCM          Condition = "CM"
	ConditionOffID       Condition = "OffID"
	ConditionBackCrack   Condition = "backcrack"
	ConditionScreenCrack Condition = "screencrack"
)

// Region tags where the unit was sourced or graded.
type Region string

// SimStatus describes the SIM configuration of the unit.
type SimStatus string

// OfferStatus is the tri-state lifecycle of a price offer.
type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferRejected OfferStatus = "rejected"
)

// Offer is a buyer-proposed price attached to a listing.
type Offer struct {
	ID         string      `json:"id"`
	Amount     int         `json:"amount"`
	BidderID   string      `json:"bidder_id"`
	BidderName string      `json:"bidder_name"`
	Status     OfferStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Listing is a posted supply or demand record for a phone configuration.
// Seller fields are a snapshot taken at creation time, not a live reference.
type Listing struct {
	ID             string        `json:"id"`
	Type           ListingType   `json:"type"`
	Category       string        `json:"category"`
	IsQuickSale    bool          `json:"is_quick_sale"`
	AllowOffers    bool          `json:"allow_offers"`
	Brand          string        `json:"brand"`
	Model          string        `json:"model"`
	Storage        string        `json:"storage"`
	Condition      []Condition   `json:"condition"`
	Region         Region        `json:"region"`
	SimStatus      SimStatus     `json:"sim_status"`
	Price          int           `json:"price"`
	Currency       string        `json:"currency"`
	BatteryHealth  int           `json:"battery_health"`
	Color          string        `json:"color"`
	Description    string        `json:"description"`
	Images         []string      `json:"images"`
	VideoURL       string        `json:"video_url,omitempty"`
	SellerID       string        `json:"seller_id"`
	SellerName     string        `json:"seller_name"`
	SellerPhone    string        `json:"seller_phone"`
	SellerVerified bool          `json:"seller_verified"`
	Location       string        `json:"location"`
	CreatedAt      time.Time     `json:"created_at"`
	Status         ListingStatus `json:"status"`
	Offers         []Offer       `json:"offers,omitempty"`
}

// ListingInput is a partial listing as supplied by a poster or by the
// agent parser. The store fills unset fields with defaults.
type ListingInput struct {
	Type          ListingType `json:"type"`
	IsQuickSale   bool        `json:"is_quick_sale"`
	AllowOffers   bool        `json:"allow_offers"`
	Model         string      `json:"model"`
	Storage       string      `json:"storage"`
	Condition     []Condition `json:"condition"`
	Region        Region      `json:"region"`
	SimStatus     SimStatus   `json:"sim_status"`
	Price         int         `json:"price"`
	BatteryHealth int         `json:"battery_health"`
	Color         string      `json:"color"`
	Description   string      `json:"description"`
	Images        []string    `json:"images"`
	VideoURL      string      `json:"video_url"`
}

// Tab is one of the three mutually exclusive browse partitions.
type Tab string

const (
	TabSupply    Tab = "supply"
	TabDemand    Tab = "demand"
	TabQuickSale Tab = "quicksale"
)

// SortOrder selects the query result ordering.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// QueryFilters narrows a listing query. Zero-valued fields are ignored;
// MaxPrice only applies when positive. Condition matching is any-tag-matches.
type QueryFilters struct {
	MinPrice   int         `json:"min_price"`
	MaxPrice   int         `json:"max_price"`
	Conditions []Condition `json:"conditions"`
	Regions    []Region    `json:"regions"`
	Storage    []string    `json:"storage"`
	SortBy     SortOrder   `json:"sort_by"`
}
