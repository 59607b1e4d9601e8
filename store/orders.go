package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"storefront-api/models"
	"storefront-api/statemachine"
)

// ErrOrderNotFound is returned by the checked transition path only;
// plain lookups report absence with a boolean.
var ErrOrderNotFound = errors.New("order not found")

const (
	deliveryWindow     = 30 * time.Minute
	defaultRecentLimit = 5
)

var gstRate = decimal.RequireFromString("0.18")

// OrdersState is an immutable view of placed orders, most recent first.
type OrdersState struct {
	orders []models.Order
	seeded bool // produced by Seed rather than by placing or moving an order
}

// All returns copies of every order sorted by creation time, newest first.
func (s OrdersState) All() []models.Order {
	out := make([]models.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.Clone()
	}
	slices.SortStableFunc(out, func(a, b models.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func (s OrdersState) ByID(orderID string) (models.Order, bool) {
	i := s.indexOf(orderID)
	if i < 0 {
		return models.Order{}, false
	}
	return s.orders[i].Clone(), true
}

func (s OrdersState) ByStatus(status models.OrderStatus) []models.Order {
	var out []models.Order
	for _, o := range s.orders {
		if o.Status == status {
			out = append(out, o.Clone())
		}
	}
	return out
}

// Recent returns the newest limit orders; limit <= 0 means 5.
func (s OrdersState) Recent(limit int) []models.Order {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	all := s.All()
	return all[:min(limit, len(all))]
}

func (s OrdersState) Len() int {
	return len(s.orders)
}

func (s OrdersState) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Orders []models.Order `json:"orders"`
	}{s.All()})
}

func (s OrdersState) indexOf(orderID string) int {
	return slices.IndexFunc(s.orders, func(o models.Order) bool { return o.ID == orderID })
}

// StatusChange is an order created (From empty) or moved to a new status
// between two snapshots.
type StatusChange struct {
	Order models.Order
	From  models.OrderStatus
}

// Changes lists the orders of next that are new or carry a different
// status than in prev, newest first. A state loaded by Seed reports no
// changes; its orders were not placed through the store.
func Changes(prev, next OrdersState) []StatusChange {
	if next.seeded {
		return nil
	}
	var changes []StatusChange
	for _, o := range next.All() {
		var from models.OrderStatus
		if old, ok := prev.ByID(o.ID); ok {
			if old.Status == o.Status {
				continue
			}
			from = old.Status
		}
		changes = append(changes, StatusChange{Order: o, From: from})
	}
	return changes
}

// Orders materializes orders from cart snapshots and tracks their status.
// Orders are never removed; cancelling is a status change.
type Orders struct {
	*observable[OrdersState]
	cfg settings
}

func NewOrders(opts ...Option) *Orders {
	return &Orders{
		observable: newObservable(OrdersState{}),
		cfg:        applyOptions(opts),
	}
}

// CreateFromCart places a PENDING order from the given line items. Prices
// and quantities are copied, so later cart or catalog changes never reach
// the order. deliverTo, when non-nil, is copied onto the order.
func (o *Orders) CreateFromCart(items []models.LineItem, notes string, deliverTo *models.Address) models.Order {
	now := o.cfg.now()
	orderItems := make([]models.OrderItem, len(items))
	for i, it := range items {
		orderItems[i] = models.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			VegFlag:   it.VegFlag,
		}
	}
	subtotal, tax, total := Totals(orderItems)

	order := models.Order{
		ID:                "order-" + o.cfg.newID(),
		OrderNumber:       o.orderNumber(now),
		Items:             orderItems,
		Subtotal:          subtotal,
		Tax:               tax,
		Total:             total,
		Status:            models.StatusPending,
		Notes:             notes,
		CreatedAt:         now,
		UpdatedAt:         now,
		EstimatedDelivery: now.Add(deliveryWindow),
	}
	if deliverTo != nil {
		addr := deliverTo.Clone()
		order.AddressID = addr.ID
		order.DeliveryAddress = &addr
	}

	o.update(func(cur OrdersState) (OrdersState, bool) {
		orders := make([]models.Order, 0, len(cur.orders)+1)
		orders = append(orders, order)
		orders = append(orders, cur.orders...)
		return OrdersState{orders: orders}, true
	})
	return order.Clone()
}

// UpdateStatus sets any known status on the order, from any state.
// Unknown ids and unknown statuses leave the store untouched.
func (o *Orders) UpdateStatus(orderID string, status models.OrderStatus) (models.Order, bool) {
	if !status.Valid() {
		return models.Order{}, false
	}
	var updated models.Order
	_, ok := o.update(func(cur OrdersState) (OrdersState, bool) {
		i := cur.indexOf(orderID)
		if i < 0 {
			return cur, false
		}
		var next OrdersState
		next, updated = o.withStatus(cur, i, status)
		return next, true
	})
	return updated, ok
}

// Transition is the checked variant of UpdateStatus: the move must be an
// edge of the order lifecycle graph.
func (o *Orders) Transition(orderID string, to models.OrderStatus) (models.Order, error) {
	var (
		updated models.Order
		err     error
	)
	o.update(func(cur OrdersState) (OrdersState, bool) {
		i := cur.indexOf(orderID)
		if i < 0 {
			err = fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
			return cur, false
		}
		if err = statemachine.CanTransition(cur.orders[i].Status, to); err != nil {
			return cur, false
		}
		var next OrdersState
		next, updated = o.withStatus(cur, i, to)
		return next, true
	})
	return updated, err
}

// Cancel is UpdateStatus(orderID, CANCELLED); repeating it is harmless.
func (o *Orders) Cancel(orderID string) (models.Order, bool) {
	return o.UpdateStatus(orderID, models.StatusCancelled)
}

// Seed replaces every order, e.g. with development fixtures. Subscribers
// are notified, but Changes treats the seeded orders as pre-existing.
func (o *Orders) Seed(orders []models.Order) {
	next := make([]models.Order, len(orders))
	for i, ord := range orders {
		next[i] = ord.Clone()
	}
	o.update(func(OrdersState) (OrdersState, bool) {
		return OrdersState{orders: next, seeded: true}, true
	})
}

// withStatus returns a copy of cur with order i moved to status
func (o *Orders) withStatus(cur OrdersState, i int, status models.OrderStatus) (OrdersState, models.Order) {
	orders := slices.Clone(cur.orders)
	ord := orders[i]
	ord.Status = status
	ord.UpdatedAt = o.cfg.now()
	orders[i] = ord
	return OrdersState{orders: orders}, ord.Clone()
}

// orderNumber formats ORD-<last 6 digits of epoch ms>-<3 random digits>.
// Numbers can collide; the order id is the unique key.
func (o *Orders) orderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%06d-%03d", now.UnixMilli()%1_000_000, o.cfg.intn(1000))
}

// Totals computes subtotal, 18% GST rounded to the nearest unit, and total.
func Totals(items []models.OrderItem) (subtotal, tax, total float64) {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	gst := sum.Mul(gstRate).Round(0)
	return sum.InexactFloat64(), gst.InexactFloat64(), sum.Add(gst).InexactFloat64()
}
