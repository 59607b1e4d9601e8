package models

import (
	"slices"
	"time"
)

// OrderStatus represents all possible states of a storefront order
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

var OrderStatuses = []OrderStatus{
	StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	return slices.Contains(OrderStatuses, s)
}

// LineItem is one row of the cart, keyed by product id
type LineItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"` // snapshot of selling price when first added
	Quantity  int     `json:"quantity"`
	VegFlag   VegFlag `json:"veg_flag,omitempty"`
}

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"` // snapshot price at time of order
	Quantity  int     `json:"quantity"`
	VegFlag   VegFlag `json:"veg_flag,omitempty"`
}

type Order struct {
	ID                string      `json:"id"`
	OrderNumber       string      `json:"order_number"`
	Items             []OrderItem `json:"items"`
	Subtotal          float64     `json:"subtotal"`
	Tax               float64     `json:"tax"`
	Total             float64     `json:"total"`
	Status            OrderStatus `json:"status"`
	Notes             string      `json:"notes,omitempty"`
	AddressID         string      `json:"address_id,omitempty"`
	DeliveryAddress   *Address    `json:"delivery_address,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
	EstimatedDelivery time.Time   `json:"estimated_delivery"`
}

// Clone returns a copy that shares no mutable memory with o
func (o Order) Clone() Order {
	o.Items = slices.Clone(o.Items)
	if o.DeliveryAddress != nil {
		addr := o.DeliveryAddress.Clone()
		o.DeliveryAddress = &addr
	}
	return o
}
