package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"storefront-api/models"
)

// SubSection is one titled block of products inside a category
type SubSection struct {
	Title    string           `json:"title"`
	Products []models.Product `json:"products"`
}

// CategorySection groups the sub-sections rendered under one category heading
type CategorySection struct {
	Category string       `json:"category"`
	Sub      []SubSection `json:"sub"`
}

// GroupByCategory partitions products by primary category and splits each
// category by veg flag according to mode. Categories without any veg or
// non-veg item are emitted as a single bare block whatever the mode.
// The result is sorted by category name using English collation.
func GroupByCategory(products []models.Product, mode models.VegMode) []CategorySection {
	if mode == "" {
		mode = models.VegModeAll
	}

	var order []string
	byCategory := make(map[string][]models.Product)
	for _, p := range products {
		key := p.PrimaryCategory()
		if _, seen := byCategory[key]; !seen {
			order = append(order, key)
		}
		byCategory[key] = append(byCategory[key], p)
	}

	result := make([]CategorySection, 0, len(order))
	for _, category := range order {
		prods := byCategory[category]
		var veg, nonVeg, unclassified []models.Product
		for _, p := range prods {
			switch p.VegFlag {
			case models.VegFlagVeg:
				veg = append(veg, p)
			case models.VegFlagNonVeg:
				nonVeg = append(nonVeg, p)
			default:
				unclassified = append(unclassified, p)
			}
		}

		var sub []SubSection
		if len(veg) == 0 && len(nonVeg) == 0 {
			sub = append(sub, SubSection{Title: category, Products: prods})
		} else {
			if mode != models.VegModeNonVeg && len(veg) > 0 {
				sub = append(sub, SubSection{Title: category + " — Veg", Products: veg})
			}
			if mode != models.VegModeVeg && len(nonVeg) > 0 {
				sub = append(sub, SubSection{Title: category + " — Non-Veg", Products: nonVeg})
			}
			if mode == models.VegModeAll && len(unclassified) > 0 {
				sub = append(sub, SubSection{Title: category, Products: unclassified})
			}
		}
		if len(sub) > 0 {
			result = append(result, CategorySection{Category: category, Sub: sub})
		}
	}

	// a Collator is not safe for concurrent use
	c := collate.New(language.English)
	sort.SliceStable(result, func(i, j int) bool {
		return c.CompareString(result[i].Category, result[j].Category) < 0
	})
	return result
}
