package handlers

import (
	"net/http"

	"storefront-api/middleware"
	"storefront-api/models"

	"github.com/gin-gonic/gin"
)

type AddressRequest struct {
	Type         models.AddressType `json:"type" binding:"required,oneof=HOME OFFICE OTHER"`
	Label        string             `json:"label" binding:"required,max=50"`
	FullName     string             `json:"full_name" binding:"required,max=100"`
	PhoneNumber  string             `json:"phone_number" binding:"required,in_phone"`
	AddressLine1 string             `json:"address_line1" binding:"required,max=200"`
	AddressLine2 string             `json:"address_line2" binding:"max=200"`
	Landmark     string             `json:"landmark" binding:"max=100"`
	City         string             `json:"city" binding:"required"`
	State        string             `json:"state" binding:"required"`
	Pincode      string             `json:"pincode" binding:"required,pincode"`
	Latitude     *float64           `json:"latitude" binding:"omitempty,latitude"`
	Longitude    *float64           `json:"longitude" binding:"omitempty,longitude"`
	IsDefault    bool               `json:"is_default"`
}

// UpdateAddressRequest uses pointers so omitted fields stay untouched
type UpdateAddressRequest struct {
	Type         *models.AddressType `json:"type" binding:"omitempty,oneof=HOME OFFICE OTHER"`
	Label        *string             `json:"label" binding:"omitempty,min=1,max=50"`
	FullName     *string             `json:"full_name" binding:"omitempty,min=1,max=100"`
	PhoneNumber  *string             `json:"phone_number" binding:"omitempty,in_phone"`
	AddressLine1 *string             `json:"address_line1" binding:"omitempty,min=1,max=200"`
	AddressLine2 *string             `json:"address_line2" binding:"omitempty,max=200"`
	Landmark     *string             `json:"landmark" binding:"omitempty,max=100"`
	City         *string             `json:"city" binding:"omitempty,min=1"`
	State        *string             `json:"state" binding:"omitempty,min=1"`
	Pincode      *string             `json:"pincode" binding:"omitempty,pincode"`
	Latitude     *float64            `json:"latitude" binding:"omitempty,latitude"`
	Longitude    *float64            `json:"longitude" binding:"omitempty,longitude"`
	IsDefault    *bool               `json:"is_default"`
	IsActive     *bool               `json:"is_active"`
}

func (r UpdateAddressRequest) patch() models.AddressPatch {
	return models.AddressPatch{
		Type:         r.Type,
		Label:        r.Label,
		FullName:     r.FullName,
		PhoneNumber:  r.PhoneNumber,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		Landmark:     r.Landmark,
		City:         r.City,
		State:        r.State,
		Pincode:      r.Pincode,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		IsDefault:    r.IsDefault,
		IsActive:     r.IsActive,
	}
}

type SelectAddressRequest struct {
	AddressID string `json:"address_id"`
}

func (h *Handler) ListAddresses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"addresses": h.session(c).Addresses.Snapshot()})
}

// AddAddress stores a validated address; the first one becomes the default
func (h *Handler) AddAddress(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}
	addr := h.session(c).Addresses.Add(models.AddressInput{
		UserID:       middleware.GetUserID(c),
		Type:         req.Type,
		Label:        req.Label,
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		Landmark:     req.Landmark,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		IsDefault:    req.IsDefault,
		IsActive:     true,
	})
	c.JSON(http.StatusCreated, gin.H{"message": "Address added", "address": addr})
}

func (h *Handler) UpdateAddress(c *gin.Context) {
	var req UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}
	addr, ok := h.session(c).Addresses.Update(c.Param("id"), req.patch())
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address updated", "address": addr})
}

func (h *Handler) DeleteAddress(c *gin.Context) {
	if !h.session(c).Addresses.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}

func (h *Handler) SetDefaultAddress(c *gin.Context) {
	addresses := h.session(c).Addresses
	if !addresses.SetDefault(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addresses.Snapshot()})
}

// SelectAddress picks the checkout address; an empty id clears the choice
func (h *Handler) SelectAddress(c *gin.Context) {
	var req SelectAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	addresses := h.session(c).Addresses
	if !addresses.Select(req.AddressID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addresses.Snapshot()})
}
