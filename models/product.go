package models

import (
	"slices"
	"time"
)

// Service is one of the catalog verticals a product belongs to
type Service string

const (
	ServiceFreshServe Service = "FRESH_SERVE"
	ServiceFMCG       Service = "FMCG"
	ServiceGifting    Service = "GIFTING"
	ServiceSupplies   Service = "SUPPLIES"
	ServiceLiveChef   Service = "LIVE_CHEF"
)

// Services lists every vertical in display order
var Services = []Service{ServiceFreshServe, ServiceFMCG, ServiceGifting, ServiceSupplies, ServiceLiveChef}

// Valid reports whether s is a known vertical
func (s Service) Valid() bool {
	for _, v := range Services {
		if s == v {
			return true
		}
	}
	return false
}

// VegFlag classifies food items; non-food items carry NA
type VegFlag string

const (
	VegFlagVeg    VegFlag = "VEG"
	VegFlagNonVeg VegFlag = "NON_VEG"
	VegFlagNA     VegFlag = "NA"
)

// Normalize maps the empty flag to NA
func (f VegFlag) Normalize() VegFlag {
	if f == "" {
		return VegFlagNA
	}
	return f
}

// VegMode is the display filter used when grouping a catalog for rendering
type VegMode string

const (
	VegModeAll    VegMode = "ALL"
	VegModeVeg    VegMode = "VEG"
	VegModeNonVeg VegMode = "NON_VEG"
)

type CurrencyCode string

const CurrencyINR CurrencyCode = "INR"

type UnitOfMeasure string

const (
	UnitKg      UnitOfMeasure = "kg"
	UnitGram    UnitOfMeasure = "g"
	UnitLitre   UnitOfMeasure = "l"
	UnitMl      UnitOfMeasure = "ml"
	UnitPieces  UnitOfMeasure = "pcs"
	UnitPack    UnitOfMeasure = "pack"
	UnitPlate   UnitOfMeasure = "plate"
	UnitServing UnitOfMeasure = "serving"
)

type Price struct {
	Currency        CurrencyCode  `json:"currency" yaml:"currency"`
	MRP             *float64      `json:"mrp,omitempty" yaml:"mrp"`
	Selling         float64       `json:"selling" yaml:"selling"`
	Unit            UnitOfMeasure `json:"unit,omitempty" yaml:"unit"`
	QuantityPerUnit *float64      `json:"quantity_per_unit,omitempty" yaml:"quantity_per_unit"`
}

type Product struct {
	ID           string    `json:"id" yaml:"id"`
	Service      Service   `json:"service" yaml:"service"`
	Name         string    `json:"name" yaml:"name"`
	Description  string    `json:"description,omitempty" yaml:"description"`
	Images       []string  `json:"images,omitempty" yaml:"images"`
	Price        Price     `json:"price" yaml:"price"`
	VegFlag      VegFlag   `json:"veg_flag" yaml:"veg_flag"`
	Categories   []string  `json:"categories,omitempty" yaml:"categories"`
	Tags         []string  `json:"tags,omitempty" yaml:"tags"`
	Brand        string    `json:"brand,omitempty" yaml:"brand"`
	IsAvailable  *bool     `json:"is_available,omitempty" yaml:"is_available"`
	TaxPercent   *float64  `json:"tax_percent,omitempty" yaml:"tax_percent"`
	SearchTokens []string  `json:"-" yaml:"-"`
	CreatedAt    time.Time `json:"created_at" yaml:"-"`
	UpdatedAt    time.Time `json:"updated_at" yaml:"-"`
}

// Available treats an absent availability flag as true
func (p Product) Available() bool {
	return p.IsAvailable == nil || *p.IsAvailable
}

// PrimaryCategory is the grouping key; "Other" when the product has none
func (p Product) PrimaryCategory() string {
	if len(p.Categories) == 0 || p.Categories[0] == "" {
		return "Other"
	}
	return p.Categories[0]
}

// Clone returns a copy that shares no slices or pointers with p
func (p Product) Clone() Product {
	p.Images = slices.Clone(p.Images)
	p.Categories = slices.Clone(p.Categories)
	p.Tags = slices.Clone(p.Tags)
	p.SearchTokens = slices.Clone(p.SearchTokens)
	p.IsAvailable = clonePtr(p.IsAvailable)
	p.TaxPercent = clonePtr(p.TaxPercent)
	p.Price.MRP = clonePtr(p.Price.MRP)
	p.Price.QuantityPerUnit = clonePtr(p.Price.QuantityPerUnit)
	return p
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
