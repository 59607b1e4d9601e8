package models

import (
	"slices"
	"time"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Chef is a live-chef booking offered under the LIVE_CHEF vertical
type Chef struct {
	ID              string       `json:"id" yaml:"id"`
	Name            string       `json:"name" yaml:"name"`
	Age             int          `json:"age,omitempty" yaml:"age"`
	Gender          Gender       `json:"gender,omitempty" yaml:"gender"`
	ExperienceYears int          `json:"experience_years,omitempty" yaml:"experience_years"`
	Expertise       []string     `json:"expertise" yaml:"expertise"`
	SignatureDishes []string     `json:"signature_dishes,omitempty" yaml:"signature_dishes"`
	PricePerSlot    float64      `json:"price_per_slot" yaml:"price_per_slot"`
	Currency        CurrencyCode `json:"currency" yaml:"currency"`
	Rating          float64      `json:"rating,omitempty" yaml:"rating"`
	Images          []string     `json:"images,omitempty" yaml:"images"`
	IsAvailable     *bool        `json:"is_available,omitempty" yaml:"is_available"`
	CreatedAt       time.Time    `json:"created_at" yaml:"-"`
	UpdatedAt       time.Time    `json:"updated_at" yaml:"-"`
}

func (c Chef) Available() bool {
	return c.IsAvailable == nil || *c.IsAvailable
}

func (c Chef) Clone() Chef {
	c.Expertise = slices.Clone(c.Expertise)
	c.SignatureDishes = slices.Clone(c.SignatureDishes)
	c.Images = slices.Clone(c.Images)
	c.IsAvailable = clonePtr(c.IsAvailable)
	return c
}
