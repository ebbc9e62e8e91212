package repositories

import (
	"fmt"
	"strings"
	"time"

	"market-service/internal/catalog"
	"market-service/internal/models"
)

var demoImages = []string{
	"https://images.unsplash.com/photo-1696446701796-da61225697cc?auto=format&fit=crop&w=600&q=80",
	"https://images.unsplash.com/photo-1592750475338-74b7b21085ab?auto=format&fit=crop&w=600&q=80",
	"https://images.unsplash.com/photo-1616348436168-de43ad0db179?auto=format&fit=crop&w=600&q=80",
}

var demoVideos = []string{
	"https://assets.mixkit.co/videos/preview/mixkit-hands-holding-a-smart-phone-with-a-green-screen-3290-large.mp4",
	"https://assets.mixkit.co/videos/preview/mixkit-man-holding-a-smartphone-with-a-green-screen-3426-large.mp4",
	"https://assets.mixkit.co/videos/preview/mixkit-woman-holding-a-smartphone-with-a-green-screen-3427-large.mp4",
}

// DemoUser is the default authorized trader for local runs.
var DemoUser = models.User{
	ID:         "u1",
	Name:       "Tunde Johnson",
	Phone:      "+234 800 123 4567",
	Role:       models.RoleUser,
	Location:   "Computer Village, Ikeja",
	State:      "Lagos",
	Country:    "Nigeria",
	IsVerified: true,
	Email:      "tunde@applesize.ng",
	AvatarURL:  "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?auto=format&fit=crop&w=200&q=80",
}

// DemoListings builds a deterministic browsing set: every fourth listing is
// a demand post, every fifth supply listing is a quick sale, conditions and
// regions rotate, and timestamps step backwards from now so the newest-first
// default ordering is visible.
func DemoListings(now time.Time, owner models.User) []models.Listing {
	regions := []models.Region{"UK", "Dubai", "China", "New", "Used"}
	sims := []models.SimStatus{"Physical Sim", "E-Sim", "Dual Sim"}
	listingModels := catalog.ModelsByCategory["iPhone"]

	listings := make([]models.Listing, 0, 15)
	for i := 0; i < 15; i++ {
		isDemand := i%4 == 0
		isQuickSale := !isDemand && i%5 == 0
		model := listingModels[i%len(listingModels)]

		conditions := []models.Condition{catalog.Conditions[i%len(catalog.Conditions)]}
		if i%3 == 0 {
			conditions = append(conditions, catalog.Conditions[(i+1)%len(catalog.Conditions)])
		}

		listingType := models.ListingTypeSupply
		price := 350000 + i*10000
		description := fmt.Sprintf("Selling %s. Condition: %s.", model, joinConditions(conditions))
		images := []string{demoImages[i%3]}
		video := demoVideos[i%3]
		if isDemand {
			listingType = models.ListingTypeDemand
			price = 0
			description = fmt.Sprintf("I urgently need a clean %s. Please contact if available.", model)
			images = []string{}
			video = ""
		}

		sellerID := fmt.Sprintf("seller_%d", i)
		sellerName := "Emeka Phones Ltd"
		if i < 3 {
			sellerID = owner.ID
			sellerName = owner.Name
		}

		storage := "256GB"
		if i%2 == 0 {
			storage = "128GB"
		}
		color := "Silver"
		if i%2 == 0 {
			color = "Graphite"
		}

		listings = append(listings, models.Listing{
			ID:             fmt.Sprintf("lst_%d", i),
			Type:           listingType,
			Category:       "iPhone",
			IsQuickSale:    isQuickSale,
			AllowOffers:    isQuickSale || isDemand,
			Brand:          "Apple",
			Model:          model,
			Storage:        storage,
			Condition:      conditions,
			Region:         regions[i%5],
			SimStatus:      sims[i%3],
			Price:          price,
			Currency:       "₦",
			BatteryHealth:  80 + i%20,
			Color:          color,
			Description:    description,
			Images:         images,
			VideoURL:       video,
			SellerID:       sellerID,
			SellerName:     sellerName,
			SellerPhone:    "+234 811 000 0000",
			SellerVerified: true,
			Location:       "Ikeja, Lagos",
			CreatedAt:      now.Add(-time.Duration(i) * 3 * time.Hour),
			Status:         models.ListingStatusActive,
			Offers:         []models.Offer{},
		})
	}
	return listings
}

func joinConditions(conditions []models.Condition) string {
	parts := make([]string, 0, len(conditions))
	for _, c := range conditions {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, ", ")
}
