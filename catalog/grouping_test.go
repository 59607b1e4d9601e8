package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/models"
)

func titles(sections []SubSection) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.Title
	}
	return out
}

func TestGroupByCategory(t *testing.T) {
	products := []models.Product{
		item("s1", models.ServiceFMCG, models.VegFlagVeg, "Snacks"),
		item("s2", models.ServiceFMCG, models.VegFlagNonVeg, "Snacks"),
		item("g1", models.ServiceGifting, models.VegFlagNA, "Gifts"),
	}

	got := GroupByCategory(products, models.VegModeAll)
	require.Len(t, got, 2)
	assert.Equal(t, "Gifts", got[0].Category)
	assert.Equal(t, []string{"Gifts"}, titles(got[0].Sub))
	assert.Equal(t, "Snacks", got[1].Category)
	assert.Equal(t, []string{"Snacks — Veg", "Snacks — Non-Veg"}, titles(got[1].Sub))

	got = GroupByCategory(products, models.VegModeVeg)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"Gifts"}, titles(got[0].Sub))
	assert.Equal(t, []string{"Snacks — Veg"}, titles(got[1].Sub))

	got = GroupByCategory(products, models.VegModeNonVeg)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"Snacks — Non-Veg"}, titles(got[1].Sub))
}

func TestGroupByCategoryDropsEmptyCategories(t *testing.T) {
	products := []models.Product{
		item("v", models.ServiceFreshServe, models.VegFlagVeg, "Salads"),
		item("n", models.ServiceFreshServe, models.VegFlagNonVeg, "Kebabs"),
	}
	got := GroupByCategory(products, models.VegModeVeg)
	require.Len(t, got, 1)
	assert.Equal(t, "Salads", got[0].Category)
}

func TestGroupByCategoryMixedUnclassified(t *testing.T) {
	products := []models.Product{
		item("v", models.ServiceFMCG, models.VegFlagVeg, "Pantry"),
		item("na", models.ServiceFMCG, models.VegFlagNA, "Pantry"),
	}

	got := GroupByCategory(products, models.VegModeAll)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Pantry — Veg", "Pantry"}, titles(got[0].Sub))
	assert.Equal(t, "na", got[0].Sub[1].Products[0].ID)

	got = GroupByCategory(products, models.VegModeVeg)
	assert.Equal(t, []string{"Pantry — Veg"}, titles(got[0].Sub))
}

func TestGroupByCategoryDefaults(t *testing.T) {
	uncategorized := item("x", models.ServiceSupplies, models.VegFlagNA, "")
	uncategorized.Categories = nil
	products := []models.Product{
		uncategorized,
		item("b", models.ServiceSupplies, models.VegFlagNA, "beverages"),
		item("a", models.ServiceSupplies, models.VegFlagNA, "Apparel"),
	}

	got := GroupByCategory(products, "")
	var cats []string
	for _, c := range got {
		cats = append(cats, c.Category)
	}
	assert.Equal(t, []string{"Apparel", "beverages", "Other"}, cats)
	assert.Empty(t, GroupByCategory(nil, models.VegModeAll))
}
