package store

import (
	"encoding/json"

	"storefront-api/models"
)

// CartState is an immutable view of the cart. Lines keep the order in
// which products first entered the cart.
type CartState struct {
	items map[string]models.LineItem
	order []string
}

// Items returns a fresh slice of the cart lines.
func (s CartState) Items() []models.LineItem {
	out := make([]models.LineItem, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

func (s CartState) Line(productID string) (models.LineItem, bool) {
	line, ok := s.items[productID]
	return line, ok
}

// Quantity is 0 for products not in the cart.
func (s CartState) Quantity(productID string) int {
	return s.items[productID].Quantity
}

// Len is the number of distinct lines.
func (s CartState) Len() int {
	return len(s.order)
}

func (s CartState) TotalQuantity() int {
	total := 0
	for _, line := range s.items {
		total += line.Quantity
	}
	return total
}

// Subtotal is recomputed from the current lines on every call.
func (s CartState) Subtotal() float64 {
	var total float64
	for _, id := range s.order {
		line := s.items[id]
		total += float64(line.Quantity) * line.Price
	}
	return total
}

func (s CartState) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Items         []models.LineItem `json:"items"`
		Lines         int               `json:"lines"`
		TotalQuantity int               `json:"total_quantity"`
		Subtotal      float64           `json:"subtotal"`
	}{s.Items(), s.Len(), s.TotalQuantity(), s.Subtotal()})
}

// put returns a copy of s with line stored under its product id
func (s CartState) put(line models.LineItem) CartState {
	items := make(map[string]models.LineItem, len(s.items)+1)
	for k, v := range s.items {
		items[k] = v
	}
	order := s.order
	if _, exists := s.items[line.ProductID]; !exists {
		order = append(append(make([]string, 0, len(s.order)+1), s.order...), line.ProductID)
	}
	items[line.ProductID] = line
	return CartState{items: items, order: order}
}

// without returns a copy of s lacking productID
func (s CartState) without(productID string) CartState {
	items := make(map[string]models.LineItem, len(s.items))
	for k, v := range s.items {
		if k != productID {
			items[k] = v
		}
	}
	order := make([]string, 0, len(s.order))
	for _, id := range s.order {
		if id != productID {
			order = append(order, id)
		}
	}
	return CartState{items: items, order: order}
}

// Cart tracks the buyer's in-progress selection, at most one line per
// product and never a line with quantity below 1.
type Cart struct {
	*observable[CartState]
}

func NewCart() *Cart {
	return &Cart{observable: newObservable(CartState{items: map[string]models.LineItem{}})}
}

// AddItem adds qty units of p. A new line snapshots p's selling price;
// an existing line only grows, keeping the price it was first added at.
// qty below 1 is treated as 1.
func (c *Cart) AddItem(p models.Product, qty int) CartState {
	if qty < 1 {
		qty = 1
	}
	next, _ := c.update(func(cur CartState) (CartState, bool) {
		line, ok := cur.items[p.ID]
		if !ok {
			line = models.LineItem{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price.Selling,
				VegFlag:   p.VegFlag.Normalize(),
			}
		}
		line.Quantity += qty
		return cur.put(line), true
	})
	return next
}

func (c *Cart) Increment(productID string) CartState {
	next, _ := c.update(func(cur CartState) (CartState, bool) {
		line, ok := cur.items[productID]
		if !ok {
			return cur, false
		}
		line.Quantity++
		return cur.put(line), true
	})
	return next
}

// Decrement removes the line once its quantity would drop to zero.
func (c *Cart) Decrement(productID string) CartState {
	next, _ := c.update(func(cur CartState) (CartState, bool) {
		line, ok := cur.items[productID]
		if !ok {
			return cur, false
		}
		line.Quantity--
		if line.Quantity <= 0 {
			return cur.without(productID), true
		}
		return cur.put(line), true
	})
	return next
}

func (c *Cart) RemoveItem(productID string) CartState {
	next, _ := c.update(func(cur CartState) (CartState, bool) {
		if _, ok := cur.items[productID]; !ok {
			return cur, false
		}
		return cur.without(productID), true
	})
	return next
}

// Drain empties the cart and returns the lines it held, in one mutation,
// so a concurrent AddItem lands either in the result or in the cart
// afterwards. An empty cart yields nil and notifies nobody.
func (c *Cart) Drain() []models.LineItem {
	var lines []models.LineItem
	c.update(func(cur CartState) (CartState, bool) {
		if cur.Len() == 0 {
			return cur, false
		}
		lines = cur.Items()
		return CartState{items: map[string]models.LineItem{}}, true
	})
	return lines
}

// Clear always notifies, even when the cart was already empty.
func (c *Cart) Clear() CartState {
	next, _ := c.update(func(CartState) (CartState, bool) {
		return CartState{items: map[string]models.LineItem{}}, true
	})
	return next
}
