package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/models"
)

func TestGetCreatesOncePerUser(t *testing.T) {
	hooks := 0
	r := NewRegistry(WithHook(func(*Session) func() {
		hooks++
		return nil
	}))

	var wg sync.WaitGroup
	sessions := make([]*Session, 20)
	for i := range sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sessions[i] = r.Get("user_1")
		}()
	}
	wg.Wait()

	for _, s := range sessions {
		assert.Same(t, sessions[0], s)
	}
	assert.Equal(t, 1, hooks)
	assert.Equal(t, 1, r.Len())

	other := r.Get("user_2")
	assert.NotSame(t, sessions[0], other)
	assert.Equal(t, []string{"user_1", "user_2"}, []string{r.All()[0].UserID, r.All()[1].UserID})

	_, ok := r.Lookup("user_3")
	assert.False(t, ok)
}

func TestMockSeeding(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	r := NewRegistry(WithMockData(true), WithClock(func() time.Time { return now }))
	s := r.Get("user_9")

	addrs := s.Addresses.Snapshot()
	require.Equal(t, 2, addrs.Len())
	def, ok := addrs.Default()
	require.True(t, ok)
	assert.Equal(t, "Home", def.Label)
	assert.Equal(t, "user_9", def.UserID)
	assert.Equal(t, def.ID, addrs.SelectedID())

	orders := s.Orders.Snapshot().All()
	require.Len(t, orders, 3)
	assert.Equal(t, models.StatusConfirmed, orders[0].Status)
	assert.Equal(t, models.StatusPreparing, orders[1].Status)
	assert.Equal(t, models.StatusDelivered, orders[2].Status)
	assert.Equal(t, 680.0, orders[2].Subtotal)
	assert.Equal(t, 122.0, orders[2].Tax)
	assert.Equal(t, 802.0, orders[2].Total)
	assert.Equal(t, 270.0, orders[0].Tax)
}

func TestFindOrderAndClose(t *testing.T) {
	detached := 0
	r := NewRegistry(WithHook(func(*Session) func() {
		return func() { detached++ }
	}))
	a := r.Get("user_a")
	r.Get("user_b")

	order := a.Orders.CreateFromCart(nil, "", nil)
	s, found, ok := r.FindOrder(order.ID)
	require.True(t, ok)
	assert.Equal(t, "user_a", s.UserID)
	assert.Equal(t, order.ID, found.ID)

	_, _, ok = r.FindOrder("order-missing")
	assert.False(t, ok)

	r.Close()
	r.Close()
	assert.Equal(t, 2, detached)
}
