// Package audit keeps a queryable journal of order status changes. Orders
// live in memory; the journal is the only part written to a database.
package audit

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"storefront-api/models"
	"storefront-api/store"
)

const defaultRecentLimit = 50

type Journal struct {
	db  *gorm.DB
	log *slog.Logger
}

// NewJournal migrates the history table on db.
func NewJournal(db *gorm.DB, log *slog.Logger) (*Journal, error) {
	if err := db.AutoMigrate(&models.OrderStatusHistory{}); err != nil {
		return nil, fmt.Errorf("failed to migrate journal: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Journal{db: db, log: log}, nil
}

// Attach records every order created or moved in orders on behalf of userID
// until the returned function is called.
func (j *Journal) Attach(userID string, orders *store.Orders) (detach func()) {
	return orders.Subscribe(func(prev, next store.OrdersState) {
		changes := store.Changes(prev, next)
		if len(changes) == 0 {
			return
		}
		rows := historyRows(userID, changes)
		if err := j.db.Create(&rows).Error; err != nil {
			j.log.Error("failed to record order history", "user_id", userID, "error", err)
		}
	})
}

func historyRows(userID string, changes []store.StatusChange) []models.OrderStatusHistory {
	out := make([]models.OrderStatusHistory, 0, len(changes))
	for _, c := range changes {
		out = append(out, models.OrderStatusHistory{
			OrderID:     c.Order.ID,
			OrderNumber: c.Order.OrderNumber,
			UserID:      userID,
			FromStatus:  c.From,
			ToStatus:    c.Order.Status,
			Total:       c.Order.Total,
			CreatedAt:   c.Order.UpdatedAt,
		})
	}
	return out
}

// History returns the changes of one order, oldest first.
func (j *Journal) History(ctx context.Context, orderID string) ([]models.OrderStatusHistory, error) {
	var entries []models.OrderStatusHistory
	err := j.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&entries).Error
	return entries, err
}

// Recent returns the latest changes across all users, newest first,
// optionally restricted to one target status.
func (j *Journal) Recent(ctx context.Context, status models.OrderStatus, limit int) ([]models.OrderStatusHistory, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	query := j.db.WithContext(ctx).Order("id desc").Limit(limit)
	if status != "" {
		query = query.Where("to_status = ?", status)
	}
	var entries []models.OrderStatusHistory
	err := query.Find(&entries).Error
	return entries, err
}

// Summary counts journal entries per target status.
func (j *Journal) Summary(ctx context.Context) (map[models.OrderStatus]int64, error) {
	var rows []struct {
		ToStatus models.OrderStatus
		Count    int64
	}
	err := j.db.WithContext(ctx).
		Model(&models.OrderStatusHistory{}).
		Select("to_status, count(*) as count").
		Group("to_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	summary := make(map[models.OrderStatus]int64, len(rows))
	for _, r := range rows {
		summary[r.ToStatus] = r.Count
	}
	return summary, nil
}
