package catalog

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"storefront-api/models"
)

//go:embed data/default.yaml
var defaultDataset []byte

// Dataset is a decoded seed file
type Dataset struct {
	Products []models.Product
	Chefs    []models.Chef
}

type seedItem struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Brand       string   `yaml:"brand"`
	Price       float64  `yaml:"price"`
	MRP         *float64 `yaml:"mrp"`
	Tags        []string `yaml:"tags"`
	Available   *bool    `yaml:"available"`
}

type seedGroup struct {
	Service  models.Service       `yaml:"service"`
	Category string               `yaml:"category"`
	Veg      *bool                `yaml:"veg"`
	Unit     models.UnitOfMeasure `yaml:"unit"`
	Items    []seedItem           `yaml:"items"`
}

type seedFile struct {
	Groups []seedGroup   `yaml:"groups"`
	Chefs  []models.Chef `yaml:"chefs"`
}

// LoadDefault decodes the dataset embedded in the binary.
func LoadDefault(now time.Time) (Dataset, error) {
	return ParseDataset(defaultDataset, now)
}

// ParseDataset decodes a YAML seed file. Product ids default to
// "<service>-<slug(name)>", chef ids to "chef-<slug(name)>".
func ParseDataset(data []byte, now time.Time) (Dataset, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Dataset{}, fmt.Errorf("failed to decode catalog dataset: %w", err)
	}

	var ds Dataset
	for gi, g := range f.Groups {
		if !g.Service.Valid() {
			return Dataset{}, fmt.Errorf("group %d: unknown service %q", gi, g.Service)
		}
		for _, it := range g.Items {
			if it.Name == "" {
				return Dataset{}, fmt.Errorf("group %d: item without name", gi)
			}
			ds.Products = append(ds.Products, buildProduct(g, it, now))
		}
	}
	for _, c := range f.Chefs {
		if c.ID == "" {
			c.ID = "chef-" + Slugify(c.Name)
		}
		ds.Chefs = append(ds.Chefs, c)
	}
	return ds, nil
}

func buildProduct(g seedGroup, it seedItem, now time.Time) models.Product {
	flag := models.VegFlagNA
	if g.Veg != nil {
		if *g.Veg {
			flag = models.VegFlagVeg
		} else {
			flag = models.VegFlagNonVeg
		}
	}
	unit := g.Unit
	if unit == "" {
		unit = models.UnitServing
		if g.Service == models.ServiceFMCG {
			unit = models.UnitPack
		}
	}
	id := it.ID
	if id == "" {
		id = strings.ToLower(string(g.Service)) + "-" + Slugify(it.Name)
	}
	available := true
	if it.Available != nil {
		available = *it.Available
	}

	p := models.Product{
		ID:          id,
		Service:     g.Service,
		Name:        it.Name,
		Description: it.Description,
		Brand:       it.Brand,
		Tags:        it.Tags,
		VegFlag:     flag,
		Price: models.Price{
			Currency: models.CurrencyINR,
			MRP:      it.MRP,
			Selling:  it.Price,
			Unit:     unit,
		},
		IsAvailable: &available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if g.Category != "" {
		p.Categories = []string{g.Category}
	}
	return p
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases s and collapses every run of non-alphanumerics into "-"
func Slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
