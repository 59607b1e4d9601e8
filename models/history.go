package models

import "time"

// OrderStatusHistory tracks every status change of an order, including its
// creation (FromStatus empty).
type OrderStatusHistory struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	OrderID     string      `json:"order_id" gorm:"not null;index"`
	OrderNumber string      `json:"order_number"`
	UserID      string      `json:"user_id" gorm:"index"`
	FromStatus  OrderStatus `json:"from_status"`
	ToStatus    OrderStatus `json:"to_status" gorm:"not null"`
	Total       float64     `json:"total"`
	CreatedAt   time.Time   `json:"created_at"`
}
