package store

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/models"
)

func product(id string, price float64) models.Product {
	return models.Product{
		ID:      id,
		Service: models.ServiceFMCG,
		Name:    id,
		Price:   models.Price{Currency: models.CurrencyINR, Selling: price},
		VegFlag: models.VegFlagVeg,
	}
}

func TestCartAddItemMergesLines(t *testing.T) {
	c := NewCart()
	c.AddItem(product("a", 100), 1)
	c.AddItem(product("b", 50), 2)
	state := c.AddItem(product("a", 100), 3)

	require.Equal(t, 2, state.Len())
	assert.Equal(t, 4, state.Quantity("a"))
	assert.Equal(t, 2, state.Quantity("b"))
	assert.Equal(t, 6, state.TotalQuantity())

	items := state.Items()
	assert.Equal(t, "a", items[0].ProductID)
	assert.Equal(t, "b", items[1].ProductID)
}

func TestCartAddItemClampsQuantity(t *testing.T) {
	c := NewCart()
	state := c.AddItem(product("a", 10), 0)
	assert.Equal(t, 1, state.Quantity("a"))

	state = c.AddItem(product("a", 10), -4)
	assert.Equal(t, 2, state.Quantity("a"))
}

func TestCartPriceSnapshot(t *testing.T) {
	c := NewCart()
	c.AddItem(product("a", 100), 1)

	// catalog price change after the line exists
	c.AddItem(product("a", 150), 1)
	state := c.Increment("a")

	line, ok := state.Line("a")
	require.True(t, ok)
	assert.Equal(t, 100.0, line.Price)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, 300.0, state.Subtotal())
}

func TestCartDecrementRemovesLine(t *testing.T) {
	c := NewCart()
	c.AddItem(product("a", 10), 2)

	state := c.Decrement("a")
	assert.Equal(t, 1, state.Quantity("a"))

	state = c.Decrement("a")
	_, ok := state.Line("a")
	assert.False(t, ok)
	assert.Equal(t, 0, state.Len())
}

func TestCartUnknownProductIsNoop(t *testing.T) {
	c := NewCart()
	calls := 0
	c.Subscribe(func(prev, next CartState) { calls++ })

	c.Increment("missing")
	c.Decrement("missing")
	c.RemoveItem("missing")

	assert.Zero(t, calls)
	assert.Equal(t, 0, c.Snapshot().Len())
}

func TestCartClearAlwaysNotifies(t *testing.T) {
	c := NewCart()
	calls := 0
	c.Subscribe(func(prev, next CartState) { calls++ })

	c.Clear()
	c.AddItem(product("a", 10), 1)
	state := c.Clear()

	assert.Equal(t, 3, calls)
	assert.Equal(t, 0, state.Len())
	assert.Zero(t, state.Subtotal())
}

func TestCartInvariantsUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	ids := []string{"a", "b", "c", "d"}
	prices := map[string]float64{"a": 10, "b": 25.5, "c": 99, "d": 1}

	c := NewCart()
	for range 500 {
		id := ids[rng.IntN(len(ids))]
		var state CartState
		switch rng.IntN(4) {
		case 0:
			state = c.AddItem(product(id, prices[id]), rng.IntN(3))
		case 1:
			state = c.Increment(id)
		case 2:
			state = c.Decrement(id)
		case 3:
			state = c.RemoveItem(id)
		}

		seen := map[string]bool{}
		var want float64
		for _, line := range state.Items() {
			require.False(t, seen[line.ProductID], "duplicate line %s", line.ProductID)
			seen[line.ProductID] = true
			require.Positive(t, line.Quantity)
			want += float64(line.Quantity) * line.Price
		}
		require.InDelta(t, want, state.Subtotal(), 1e-9)
		require.Equal(t, state.Len(), len(seen))
	}
}

func TestCartDrain(t *testing.T) {
	c := NewCart()
	calls := 0
	c.Subscribe(func(_, _ CartState) { calls++ })

	assert.Nil(t, c.Drain())
	assert.Zero(t, calls)

	c.AddItem(product("a", 10), 2)
	c.AddItem(product("b", 5), 1)
	lines := c.Drain()
	require.Len(t, lines, 2)
	assert.Equal(t, "a", lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Zero(t, c.Snapshot().Len())
	assert.Equal(t, 3, calls)
}

func TestCartDrainConcurrentWithAdds(t *testing.T) {
	c := NewCart()
	const adds = 2000

	var (
		wg      sync.WaitGroup
		drained [2]int
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		for range adds {
			c.AddItem(product("a", 10), 1)
		}
	}()
	for i := range drained {
		go func() {
			defer wg.Done()
			for range adds {
				for _, line := range c.Drain() {
					drained[i] += line.Quantity
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, adds, drained[0]+drained[1]+c.Snapshot().Quantity("a"))
}

func TestCartSnapshotsAreIndependent(t *testing.T) {
	c := NewCart()
	before := c.AddItem(product("a", 10), 1)
	c.AddItem(product("a", 10), 1)
	c.AddItem(product("b", 5), 1)

	assert.Equal(t, 1, before.Quantity("a"))
	assert.Equal(t, 1, before.Len())
	assert.Equal(t, 2, c.Snapshot().Quantity("a"))
}

func TestCartStateJSON(t *testing.T) {
	c := NewCart()
	c.AddItem(product("a", 100), 2)

	data, err := c.Snapshot().MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"items": [{"product_id":"a","name":"a","price":100,"quantity":2,"veg_flag":"VEG"}],
		"lines": 1,
		"total_quantity": 2,
		"subtotal": 200
	}`, string(data))
}
