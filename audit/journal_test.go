package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/config"
	"storefront-api/models"
	"storefront-api/store"
)

func newJournal(t *testing.T) *Journal {
	t.Helper()
	db, err := config.OpenJournal(":memory:")
	require.NoError(t, err)
	j, err := NewJournal(db, nil)
	require.NoError(t, err)
	return j
}

func TestJournalRecordsLifecycle(t *testing.T) {
	ctx := context.Background()
	j := newJournal(t)
	orders := store.NewOrders()
	detach := j.Attach("user_1", orders)

	order := orders.CreateFromCart([]models.LineItem{{ProductID: "a", Name: "A", Price: 100, Quantity: 1}}, "", nil)
	_, err := orders.Transition(order.ID, models.StatusConfirmed)
	require.NoError(t, err)
	orders.Cancel(order.ID)
	orders.Cancel(order.ID) // no change, no entry

	history, err := j.History(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, models.OrderStatus(""), history[0].FromStatus)
	assert.Equal(t, models.StatusPending, history[0].ToStatus)
	assert.Equal(t, models.StatusPending, history[1].FromStatus)
	assert.Equal(t, models.StatusConfirmed, history[1].ToStatus)
	assert.Equal(t, models.StatusCancelled, history[2].ToStatus)
	assert.Equal(t, "user_1", history[2].UserID)
	assert.Equal(t, 118.0, history[0].Total)

	detach()
	other := orders.CreateFromCart(nil, "", nil)
	history, err = j.History(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestJournalRecentAndSummary(t *testing.T) {
	ctx := context.Background()
	j := newJournal(t)
	orders := store.NewOrders()
	j.Attach("user_1", orders)

	a := orders.CreateFromCart(nil, "", nil)
	orders.CreateFromCart(nil, "", nil)
	orders.Cancel(a.ID)

	recent, err := j.Recent(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, models.StatusCancelled, recent[0].ToStatus)

	cancelled, err := j.Recent(ctx, models.StatusCancelled, 0)
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, a.ID, cancelled[0].OrderID)

	summary, err := j.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary[models.StatusPending])
	assert.Equal(t, int64(1), summary[models.StatusCancelled])
}

func TestJournalSkipsSeededOrders(t *testing.T) {
	ctx := context.Background()
	j := newJournal(t)
	orders := store.NewOrders()
	j.Attach("user_1", orders)

	orders.Seed([]models.Order{{ID: "order-a", Status: models.StatusConfirmed, Total: 500}})
	history, err := j.History(ctx, "order-a")
	require.NoError(t, err)
	assert.Empty(t, history)

	_, err = orders.Transition("order-a", models.StatusPreparing)
	require.NoError(t, err)
	history, err = j.History(ctx, "order-a")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.StatusConfirmed, history[0].FromStatus)
}
