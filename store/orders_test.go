package store

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/models"
	"storefront-api/statemachine"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 123_000_000, time.UTC)

func sequentialIDs() Option {
	n := 0
	return WithIDs(func() string {
		n++
		return fmt.Sprintf("id%d", n)
	})
}

func newTestOrders(t *testing.T) *Orders {
	t.Helper()
	return NewOrders(
		WithClock(func() time.Time { return fixedNow }),
		WithRand(func(int) int { return 7 }),
		sequentialIDs(),
	)
}

func TestCreateFromCartTotals(t *testing.T) {
	c := NewCart()
	c.AddItem(product("A", 100), 2)
	c.AddItem(product("B", 50), 1)

	o := newTestOrders(t)
	order := o.CreateFromCart(c.Snapshot().Items(), "ring the bell", nil)

	assert.Equal(t, 250.0, order.Subtotal)
	assert.Equal(t, 45.0, order.Tax)
	assert.Equal(t, 295.0, order.Total)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, "order-id1", order.ID)
	assert.Equal(t, "ring the bell", order.Notes)
	assert.Equal(t, fixedNow.Add(30*time.Minute), order.EstimatedDelivery)
	require.Len(t, order.Items, 2)

	// later cart changes never reach the stored order
	c.Increment("A")
	c.RemoveItem("B")
	c.Clear()

	stored, ok := o.Snapshot().ByID(order.ID)
	require.True(t, ok)
	assert.Equal(t, 250.0, stored.Subtotal)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, 2, stored.Items[0].Quantity)
}

func TestCreateFromCartReturnsCopy(t *testing.T) {
	o := newTestOrders(t)
	order := o.CreateFromCart([]models.LineItem{{ProductID: "A", Name: "A", Price: 10, Quantity: 1}}, "", nil)
	order.Items[0].Quantity = 99

	stored, _ := o.Snapshot().ByID(order.ID)
	assert.Equal(t, 1, stored.Items[0].Quantity)
}

func TestTaxRounding(t *testing.T) {
	tests := []struct {
		name     string
		items    []models.OrderItem
		subtotal float64
		tax      float64
	}{
		{"empty", nil, 0, 0},
		{"rounds down", []models.OrderItem{{Price: 12, Quantity: 1}}, 12, 2},
		{"rounds up", []models.OrderItem{{Price: 11, Quantity: 1}}, 11, 2},
		{"rounds half up", []models.OrderItem{{Price: 25, Quantity: 1}}, 25, 5},
		{"fractional prices", []models.OrderItem{{Price: 19.99, Quantity: 3}}, 59.97, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal, tax, total := Totals(tt.items)
			assert.InDelta(t, tt.subtotal, subtotal, 1e-9)
			assert.Equal(t, tt.tax, tax)
			assert.InDelta(t, tt.subtotal+tt.tax, total, 1e-9)
		})
	}
}

func TestOrderNumberFormat(t *testing.T) {
	o := newTestOrders(t)
	order := o.CreateFromCart(nil, "", nil)

	assert.Regexp(t, regexp.MustCompile(`^ORD-\d{6}-\d{3}$`), order.OrderNumber)
	want := fmt.Sprintf("ORD-%06d-007", fixedNow.UnixMilli()%1_000_000)
	assert.Equal(t, want, order.OrderNumber)
}

func TestCreateFromCartCopiesAddress(t *testing.T) {
	o := newTestOrders(t)
	addr := models.Address{ID: "addr_1", City: "Mumbai"}
	order := o.CreateFromCart(nil, "", &addr)
	addr.City = "Pune"

	require.NotNil(t, order.DeliveryAddress)
	assert.Equal(t, "addr_1", order.AddressID)
	assert.Equal(t, "Mumbai", order.DeliveryAddress.City)
}

func TestOrderDeliveryAddressIsDetached(t *testing.T) {
	o := newTestOrders(t)
	lat := 19.07
	addr := models.Address{ID: "addr_1", Latitude: &lat}
	order := o.CreateFromCart(nil, "", &addr)

	lat = 0
	*order.DeliveryAddress.Latitude = 1
	got, ok := o.Snapshot().ByID(order.ID)
	require.True(t, ok)
	assert.Equal(t, 19.07, *got.DeliveryAddress.Latitude)

	*o.Snapshot().All()[0].DeliveryAddress.Latitude = 2
	again, _ := o.Snapshot().ByID(order.ID)
	assert.Equal(t, 19.07, *again.DeliveryAddress.Latitude)
}

func TestOrdersNewestFirst(t *testing.T) {
	now := fixedNow
	o := NewOrders(WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	}), sequentialIDs())

	first := o.CreateFromCart(nil, "", nil)
	second := o.CreateFromCart(nil, "", nil)

	all := o.Snapshot().All()
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	recent := o.Snapshot().Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, second.ID, recent[0].ID)
}

func TestCancelIsIdempotent(t *testing.T) {
	o := newTestOrders(t)
	order := o.CreateFromCart(nil, "", nil)

	got, ok := o.Cancel(order.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusCancelled, got.Status)

	got, ok = o.Cancel(order.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusCancelled, got.Status)

	_, ok = o.Cancel("order-missing")
	assert.False(t, ok)
}

func TestUpdateStatusIsPermissive(t *testing.T) {
	o := newTestOrders(t)
	order := o.CreateFromCart(nil, "", nil)

	got, ok := o.UpdateStatus(order.ID, models.StatusDelivered)
	require.True(t, ok)
	assert.Equal(t, models.StatusDelivered, got.Status)

	got, ok = o.UpdateStatus(order.ID, models.StatusPending)
	require.True(t, ok)
	assert.Equal(t, models.StatusPending, got.Status)

	_, ok = o.UpdateStatus(order.ID, "SHIPPED")
	assert.False(t, ok)

	assert.Len(t, o.Snapshot().ByStatus(models.StatusPending), 1)
}

func TestTransitionFollowsLifecycle(t *testing.T) {
	o := newTestOrders(t)
	order := o.CreateFromCart(nil, "", nil)

	for _, status := range []models.OrderStatus{
		models.StatusConfirmed, models.StatusPreparing, models.StatusReady, models.StatusDelivered,
	} {
		got, err := o.Transition(order.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}

	_, err := o.Transition(order.ID, models.StatusCancelled)
	assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)

	_, err = o.Transition("order-missing", models.StatusConfirmed)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	stored, _ := o.Snapshot().ByID(order.ID)
	assert.Equal(t, models.StatusDelivered, stored.Status)
}

func TestOrdersNotifySubscribers(t *testing.T) {
	o := newTestOrders(t)
	var changes []models.OrderStatus
	unsubscribe := o.Subscribe(func(prev, next OrdersState) {
		for _, ord := range next.All() {
			changes = append(changes, ord.Status)
		}
	})

	order := o.CreateFromCart(nil, "", nil)
	o.Cancel(order.ID)
	unsubscribe()
	o.UpdateStatus(order.ID, models.StatusPending)

	assert.Equal(t, []models.OrderStatus{models.StatusPending, models.StatusCancelled}, changes)
}

func TestSeedReplacesOrders(t *testing.T) {
	o := newTestOrders(t)
	o.CreateFromCart(nil, "", nil)
	o.Seed([]models.Order{{ID: "order-a", Status: models.StatusDelivered}})

	assert.Equal(t, 1, o.Snapshot().Len())
	_, ok := o.Snapshot().ByID("order-a")
	assert.True(t, ok)
}

func TestChanges(t *testing.T) {
	o := newTestOrders(t)
	empty := o.Snapshot()
	order := o.CreateFromCart(nil, "", nil)
	created := o.Snapshot()

	changes := Changes(empty, created)
	require.Len(t, changes, 1)
	assert.Equal(t, order.ID, changes[0].Order.ID)
	assert.Empty(t, changes[0].From)

	o.Cancel(order.ID)
	changes = Changes(created, o.Snapshot())
	require.Len(t, changes, 1)
	assert.Equal(t, models.StatusPending, changes[0].From)
	assert.Equal(t, models.StatusCancelled, changes[0].Order.Status)

	assert.Empty(t, Changes(created, created))
}

func TestChangesIgnoresSeed(t *testing.T) {
	o := newTestOrders(t)
	before := o.Snapshot()
	o.Seed([]models.Order{{ID: "order-a", Status: models.StatusConfirmed}})
	seeded := o.Snapshot()
	assert.Empty(t, Changes(before, seeded))

	o.Cancel("order-a")
	changes := Changes(seeded, o.Snapshot())
	require.Len(t, changes, 1)
	assert.Equal(t, models.StatusConfirmed, changes[0].From)

	placed := o.CreateFromCart(nil, "", nil)
	after := o.Snapshot()
	o.Seed(after.All())
	assert.Empty(t, Changes(after, o.Snapshot()))
	_, ok := o.Snapshot().ByID(placed.ID)
	assert.True(t, ok)
}
