package session

import (
	"time"

	"github.com/google/uuid"

	"storefront-api/models"
	"storefront-api/store"
)

// SeedMock fills a session with two Mumbai addresses (the first being the
// default) and three past orders.
func SeedMock(s *Session, now time.Time) {
	for _, in := range mockAddresses(s.UserID) {
		s.Addresses.Add(in)
	}
	s.Orders.Seed(mockOrders(now))
}

func mockAddresses(userID string) []models.AddressInput {
	return []models.AddressInput{
		{
			UserID:       userID,
			Type:         models.AddressHome,
			Label:        "Home",
			FullName:     "John Doe",
			PhoneNumber:  "+91 98765 43210",
			AddressLine1: "123 Main Street",
			AddressLine2: "Apartment 4B",
			Landmark:     "Near City Mall",
			City:         "Mumbai",
			State:        "Maharashtra",
			Pincode:      "400001",
			IsDefault:    true,
			IsActive:     true,
		},
		{
			UserID:       userID,
			Type:         models.AddressOffice,
			Label:        "Office",
			FullName:     "John Doe",
			PhoneNumber:  "+91 98765 43210",
			AddressLine1: "456 Business Park",
			AddressLine2: "Floor 2, Suite 201",
			Landmark:     "Opposite Metro Station",
			City:         "Mumbai",
			State:        "Maharashtra",
			Pincode:      "400002",
			IsActive:     true,
		},
	}
}

func mockOrders(now time.Time) []models.Order {
	build := func(number string, status models.OrderStatus, created, updated, eta time.Time, items ...models.OrderItem) models.Order {
		subtotal, tax, total := store.Totals(items)
		return models.Order{
			ID:                "order-" + uuid.NewString(),
			OrderNumber:       number,
			Items:             items,
			Subtotal:          subtotal,
			Tax:               tax,
			Total:             total,
			Status:            status,
			CreatedAt:         created,
			UpdatedAt:         updated,
			EstimatedDelivery: eta,
		}
	}

	twoDaysAgo := now.Add(-48 * time.Hour)
	return []models.Order{
		build("ORD-123456-001", models.StatusDelivered, twoDaysAgo, twoDaysAgo, twoDaysAgo.Add(30*time.Minute),
			models.OrderItem{ProductID: "fresh_serve-paneer-butter-masala", Name: "Paneer Butter Masala", Price: 240, Quantity: 2, VegFlag: models.VegFlagVeg},
			models.OrderItem{ProductID: "fresh_serve-dal-makhani", Name: "Dal Makhani", Price: 200, Quantity: 1, VegFlag: models.VegFlagVeg},
		),
		build("ORD-123457-002", models.StatusPreparing, now.Add(-time.Hour), now.Add(-30*time.Minute), now.Add(15*time.Minute),
			models.OrderItem{ProductID: "fmcg-potato-chips", Name: "Potato Chips", Price: 35, Quantity: 3, VegFlag: models.VegFlagNA},
			models.OrderItem{ProductID: "fmcg-cookies-chocolate-chip", Name: "Cookies (Chocolate Chip)", Price: 60, Quantity: 2, VegFlag: models.VegFlagNA},
		),
		build("ORD-123458-003", models.StatusConfirmed, now.Add(-30*time.Minute), now.Add(-30*time.Minute), now.Add(2*time.Hour),
			models.OrderItem{ProductID: "gifting-laptop-bag", Name: "Laptop Bag", Price: 1499, Quantity: 1, VegFlag: models.VegFlagNA},
		),
	}
}
