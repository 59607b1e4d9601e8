// Package store holds the buyer-side reactive state: cart, orders and the
// address book. Each store keeps an immutable snapshot that is replaced
// wholesale on every mutation and delivered synchronously to subscribers.
package store

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Listener receives the snapshots before and after a committed mutation.
// Listeners run on the mutating goroutine while the store's write lock is
// held: they may read snapshots and (un)subscribe, but must not mutate the
// store they are registered on.
type Listener[S any] func(prev, next S)

type subscription[S any] struct {
	id uint64
	fn Listener[S]
}

type observable[S any] struct {
	mu     sync.Mutex // serializes mutations and their delivery
	state  atomic.Pointer[S]
	subsMu sync.Mutex
	subs   []subscription[S]
	nextID uint64
}

func newObservable[S any](initial S) *observable[S] {
	o := &observable[S]{}
	o.state.Store(&initial)
	return o
}

// Snapshot returns the current state without blocking writers.
func (o *observable[S]) Snapshot() S {
	return *o.state.Load()
}

// Subscribe registers fn and returns a function that removes it.
// Listeners are called in subscription order.
func (o *observable[S]) Subscribe(fn Listener[S]) (unsubscribe func()) {
	o.subsMu.Lock()
	o.nextID++
	id := o.nextID
	subs := make([]subscription[S], 0, len(o.subs)+1)
	subs = append(subs, o.subs...)
	o.subs = append(subs, subscription[S]{id: id, fn: fn})
	o.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.subsMu.Lock()
			defer o.subsMu.Unlock()
			subs := make([]subscription[S], 0, len(o.subs))
			for _, s := range o.subs {
				if s.id != id {
					subs = append(subs, s)
				}
			}
			o.subs = subs
		})
	}
}

// Watch is Subscribe plus an immediate fn(cur, cur) call. Both happen under
// the mutation lock, so fn sees every later change exactly once and in order.
func (o *observable[S]) Watch(fn Listener[S]) (unsubscribe func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	cur := *o.state.Load()
	unsubscribe = o.Subscribe(fn)
	fn(cur, cur)
	return unsubscribe
}

// update commits the state returned by fn and notifies every listener.
// Nothing is committed or delivered when fn reports no change.
func (o *observable[S]) update(fn func(cur S) (next S, changed bool)) (S, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	prev := *o.state.Load()
	next, changed := fn(prev)
	if !changed {
		return prev, false
	}
	o.state.Store(&next)

	o.subsMu.Lock()
	subs := o.subs
	o.subsMu.Unlock()
	for _, s := range subs {
		s.fn(prev, next)
	}
	return next, true
}

type settings struct {
	now   func() time.Time
	intn  func(n int) int
	newID func() string
}

func defaultSettings() settings {
	return settings{
		now:   time.Now,
		intn:  rand.IntN,
		newID: uuid.NewString,
	}
}

// Option overrides the clock, randomness or id source of a store.
type Option func(*settings)

func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

func WithRand(intn func(n int) int) Option {
	return func(s *settings) { s.intn = intn }
}

func WithIDs(newID func() string) Option {
	return func(s *settings) { s.newID = newID }
}

func applyOptions(opts []Option) settings {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
