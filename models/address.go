package models

import "time"

type AddressType string

const (
	AddressHome   AddressType = "HOME"
	AddressOffice AddressType = "OFFICE"
	AddressOther  AddressType = "OTHER"
)

type Address struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	Type         AddressType `json:"type"`
	Label        string      `json:"label"`
	FullName     string      `json:"full_name"`
	PhoneNumber  string      `json:"phone_number"`
	AddressLine1 string      `json:"address_line1"`
	AddressLine2 string      `json:"address_line2,omitempty"`
	Landmark     string      `json:"landmark,omitempty"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	Pincode      string      `json:"pincode"`
	Latitude     *float64    `json:"latitude,omitempty"`
	Longitude    *float64    `json:"longitude,omitempty"`
	IsDefault    bool        `json:"is_default"`
	IsActive     bool        `json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Clone copies the coordinates so the result shares nothing with a
func (a Address) Clone() Address {
	a.Latitude = clonePtr(a.Latitude)
	a.Longitude = clonePtr(a.Longitude)
	return a
}

// AddressInput is the caller-supplied part of a new address
type AddressInput struct {
	UserID       string
	Type         AddressType
	Label        string
	FullName     string
	PhoneNumber  string
	AddressLine1 string
	AddressLine2 string
	Landmark     string
	City         string
	State        string
	Pincode      string
	Latitude     *float64
	Longitude    *float64
	IsDefault    bool
	IsActive     bool
}

// AddressPatch carries a partial update; nil fields are left untouched
type AddressPatch struct {
	Type         *AddressType
	Label        *string
	FullName     *string
	PhoneNumber  *string
	AddressLine1 *string
	AddressLine2 *string
	Landmark     *string
	City         *string
	State        *string
	Pincode      *string
	Latitude     *float64
	Longitude    *float64
	IsDefault    *bool
	IsActive     *bool
}

// Apply merges the non-nil fields of p into a
func (p AddressPatch) Apply(a Address) Address {
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Label != nil {
		a.Label = *p.Label
	}
	if p.FullName != nil {
		a.FullName = *p.FullName
	}
	if p.PhoneNumber != nil {
		a.PhoneNumber = *p.PhoneNumber
	}
	if p.AddressLine1 != nil {
		a.AddressLine1 = *p.AddressLine1
	}
	if p.AddressLine2 != nil {
		a.AddressLine2 = *p.AddressLine2
	}
	if p.Landmark != nil {
		a.Landmark = *p.Landmark
	}
	if p.City != nil {
		a.City = *p.City
	}
	if p.State != nil {
		a.State = *p.State
	}
	if p.Pincode != nil {
		a.Pincode = *p.Pincode
	}
	if p.Latitude != nil {
		a.Latitude = clonePtr(p.Latitude)
	}
	if p.Longitude != nil {
		a.Longitude = clonePtr(p.Longitude)
	}
	if p.IsActive != nil {
		a.IsActive = *p.IsActive
	}
	return a
}
