// Package session keeps one set of buyer stores per signed-in user.
package session

import (
	"slices"
	"strings"
	"sync"
	"time"

	"storefront-api/models"
	"storefront-api/store"
)

// Session is the buyer state of one user.
type Session struct {
	UserID    string
	Cart      *store.Cart
	Orders    *store.Orders
	Addresses *store.Addresses

	cleanup []func()
}

// Hook runs once per new session before it is handed out. The returned
// function, if any, runs when the registry closes.
type Hook func(s *Session) func()

type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	hooks    []Hook
	seedMock bool
	storeOpt []store.Option
	now      func() time.Time
}

type Option func(*Registry)

func WithHook(h Hook) Option {
	return func(r *Registry) { r.hooks = append(r.hooks, h) }
}

// WithMockData seeds each new session with sample addresses and orders.
func WithMockData(enabled bool) Option {
	return func(r *Registry) { r.seedMock = enabled }
}

func WithStoreOptions(opts ...store.Option) Option {
	return func(r *Registry) { r.storeOpt = append(r.storeOpt, opts...) }
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
		r.storeOpt = append(r.storeOpt, store.WithClock(now))
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the session of userID, creating it on first use.
func (r *Registry) Get(userID string) *Session {
	r.mu.RLock()
	s, ok := r.sessions[userID]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[userID]; ok {
		return s
	}
	s = &Session{
		UserID:    userID,
		Cart:      store.NewCart(),
		Orders:    store.NewOrders(r.storeOpt...),
		Addresses: store.NewAddresses(r.storeOpt...),
	}
	for _, h := range r.hooks {
		if stop := h(s); stop != nil {
			s.cleanup = append(s.cleanup, stop)
		}
	}
	if r.seedMock {
		SeedMock(s, r.now())
	}
	r.sessions[userID] = s
	return s
}

func (r *Registry) Lookup(userID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[userID]
	return s, ok
}

// All returns every session ordered by user id.
func (r *Registry) All() []*Session {
	r.mu.RLock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	r.mu.RUnlock()
	slices.SortFunc(out, func(a, b *Session) int { return strings.Compare(a.UserID, b.UserID) })
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// FindOrder searches every session for orderID.
func (r *Registry) FindOrder(orderID string) (*Session, models.Order, bool) {
	for _, s := range r.All() {
		if o, ok := s.Orders.Snapshot().ByID(orderID); ok {
			return s, o, true
		}
	}
	return nil, models.Order{}, false
}

// Close detaches every hook from every session.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		for _, stop := range s.cleanup {
			stop()
		}
		s.cleanup = nil
	}
}
