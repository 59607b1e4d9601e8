// Package catalog serves read-only, filterable views over the seeded
// product and chef datasets, and reshapes product lists for display.
package catalog

import (
	"sync"
	"time"

	"storefront-api/models"
)

const (
	defaultServiceLimit = 20
	defaultAllLimit     = 50
)

// QueryOptions filters a product listing. VegFlag takes precedence over the
// legacy VegOnly switch. Limit <= 0 selects the listing's default page size.
type QueryOptions struct {
	VegFlag models.VegFlag
	VegOnly bool
	Search  string
	Limit   int
	Offset  int
}

// Repository holds the in-memory catalog. Seeding replaces the dataset
// wholesale; every read works on the dataset current at call time.
type Repository struct {
	mu       sync.RWMutex
	products []models.Product
	byID     map[string]int
	chefs    []models.Chef
	chefByID map[string]int
	now      func() time.Time
}

func NewRepository() *Repository {
	return &Repository{
		byID:     make(map[string]int),
		chefByID: make(map[string]int),
		now:      time.Now,
	}
}

// SeedProducts replaces the product dataset and recomputes search tokens.
// A repeated id replaces the earlier entry in place.
func (r *Repository) SeedProducts(products []models.Product) {
	next := make([]models.Product, 0, len(products))
	index := make(map[string]int, len(products))
	for _, p := range products {
		p = p.Clone()
		p.VegFlag = p.VegFlag.Normalize()
		p.SearchTokens = BuildTokens(p)
		if i, ok := index[p.ID]; ok {
			next[i] = p
			continue
		}
		index[p.ID] = len(next)
		next = append(next, p)
	}

	r.mu.Lock()
	r.products = next
	r.byID = index
	r.mu.Unlock()
}

// SeedChefs replaces the chef roster, filling in currency, availability
// and timestamps where the input leaves them unset.
func (r *Repository) SeedChefs(chefs []models.Chef) {
	now := r.now()
	next := make([]models.Chef, 0, len(chefs))
	index := make(map[string]int, len(chefs))
	for _, c := range chefs {
		c = c.Clone()
		if c.Currency == "" {
			c.Currency = models.CurrencyINR
		}
		if c.IsAvailable == nil {
			available := true
			c.IsAvailable = &available
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		if c.UpdatedAt.IsZero() {
			c.UpdatedAt = now
		}
		if i, ok := index[c.ID]; ok {
			next[i] = c
			continue
		}
		index[c.ID] = len(next)
		next = append(next, c)
	}

	r.mu.Lock()
	r.chefs = next
	r.chefByID = index
	r.mu.Unlock()
}

// ListByService returns available products of one service matching opts,
// in seed order, sliced by offset and limit after filtering.
func (r *Repository) ListByService(service models.Service, opts QueryOptions) []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := searchQuery(opts.Search)
	var items []models.Product
	for _, p := range r.products {
		if p.Service != service || !p.Available() {
			continue
		}
		if !matchesVeg(p, opts) {
			continue
		}
		if query != "" && !matchesTokens(p.SearchTokens, query) {
			continue
		}
		items = append(items, p)
	}
	return page(items, opts, defaultServiceLimit)
}

// ListAll applies the same filters as ListByService across every service.
func (r *Repository) ListAll(opts QueryOptions) []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := searchQuery(opts.Search)
	var items []models.Product
	for _, p := range r.products {
		if !p.Available() || !matchesVeg(p, opts) {
			continue
		}
		if query != "" && !matchesTokens(p.SearchTokens, query) {
			continue
		}
		items = append(items, p)
	}
	return page(items, opts, defaultAllLimit)
}

// GetByID looks a product up regardless of availability.
func (r *Repository) GetByID(id string) (models.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return r.products[i].Clone(), true
}

// ListChefs returns the available chefs in seed order.
func (r *Repository) ListChefs() []models.Chef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	chefs := make([]models.Chef, 0, len(r.chefs))
	for _, c := range r.chefs {
		if c.Available() {
			chefs = append(chefs, c.Clone())
		}
	}
	return chefs
}

func (r *Repository) GetChefByID(id string) (models.Chef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.chefByID[id]
	if !ok {
		return models.Chef{}, false
	}
	return r.chefs[i].Clone(), true
}

// Counts reports the seeded dataset sizes.
func (r *Repository) Counts() (products, chefs int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products), len(r.chefs)
}

func matchesVeg(p models.Product, opts QueryOptions) bool {
	switch {
	case opts.VegFlag != "":
		return p.VegFlag == opts.VegFlag
	case opts.VegOnly:
		return p.VegFlag == models.VegFlagVeg
	}
	return true
}

func searchQuery(search string) string {
	return Normalize(search)
}

func page(items []models.Product, opts QueryOptions, defaultLimit int) []models.Product {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	offset := max(opts.Offset, 0)
	if offset >= len(items) {
		return []models.Product{}
	}
	end := min(offset+limit, len(items))
	out := make([]models.Product, 0, end-offset)
	for _, p := range items[offset:end] {
		out = append(out, p.Clone())
	}
	return out
}
