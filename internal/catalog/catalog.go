package catalog

import (
	"strings"

	"market-service/internal/models"
)

// Categories is the closed set of product categories. Only one exists today.
var Categories = []string{"iPhone"}

// ModelsByCategory holds the sellable model names per category.
var ModelsByCategory = map[string][]string{
	"iPhone": {
		"iPhone 16 Pro Max", "iPhone 16 Pro", "iPhone 16 Plus", "iPhone 16",
		"iPhone 15 Pro Max", "iPhone 15 Pro", "iPhone 15 Plus", "iPhone 15",
		"iPhone 14 Pro Max", "iPhone 14 Pro", "iPhone 14 Plus", "iPhone 14",
		"iPhone 13 Pro Max", "iPhone 13 Pro", "iPhone 13", "iPhone 13 mini",
		"iPhone 12 Pro Max", "iPhone 12", "iPhone 11 Pro Max", "iPhone 11", "iPhone XR",
		"iPhone XS Max", "iPhone XS", "iPhone X", "iPhone 8 Plus",
	},
}

// AllModels is the flattened model list used for search suggestions.
var AllModels = flatten()

// Regions lists the sourcing/grading tags offered by the filter sheet.
var Regions = []models.Region{"New", "Used", "UK", "Dubai", "China", "Korea"}

// SimStatuses lists the supported SIM configurations.
var SimStatuses = []models.SimStatus{"Physical Sim", "E-Sim", "Dual Sim", "No Sim"}

// StorageSizes lists the storage tokens offered by the filter sheet.
var StorageSizes = []string{"64GB", "128GB", "256GB", "512GB", "1TB"}

// Conditions lists every condition tag.
var Conditions = []models.Condition{
	models.ConditionClean,
	models.ConditionDM,
	models.ConditionDDM,
	models.ConditionBM,
	models.ConditionCM,
	models.ConditionOffID,
	models.ConditionBackCrack,
	models.ConditionScreenCrack,
}

const maxSuggestions = 5

// Suggest returns up to five model names containing the query,
// case-insensitively. An empty query yields no suggestions. The result is
// never nil so it serializes as a JSON array.
func Suggest(query string) []string {
	result := make([]string, 0, maxSuggestions)
	if query == "" {
		return result
	}
	lower := strings.ToLower(query)
	for _, m := range AllModels {
		if strings.Contains(strings.ToLower(m), lower) {
			result = append(result, m)
			if len(result) == maxSuggestions {
				break
			}
		}
	}
	return result
}

func flatten() []string {
	var all []string
	for _, category := range Categories {
		all = append(all, ModelsByCategory[category]...)
	}
	return all
}
