package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservableDeliversPrevAndNext(t *testing.T) {
	o := newObservable(1)
	var got [][2]int
	o.Subscribe(func(prev, next int) { got = append(got, [2]int{prev, next}) })

	o.update(func(cur int) (int, bool) { return cur + 1, true })
	o.update(func(cur int) (int, bool) { return cur, false })
	o.update(func(cur int) (int, bool) { return cur * 10, true })

	assert.Equal(t, [][2]int{{1, 2}, {2, 20}}, got)
	assert.Equal(t, 20, o.Snapshot())
}

func TestObservableSubscriptionOrder(t *testing.T) {
	o := newObservable("")
	var calls []string
	o.Subscribe(func(_, _ string) { calls = append(calls, "first") })
	o.Subscribe(func(_, _ string) { calls = append(calls, "second") })

	o.update(func(string) (string, bool) { return "x", true })
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestObservableUnsubscribeFromListener(t *testing.T) {
	o := newObservable(0)
	calls := 0
	var unsubscribe func()
	unsubscribe = o.Subscribe(func(_, _ int) {
		calls++
		unsubscribe()
		unsubscribe()
	})

	o.update(func(cur int) (int, bool) { return cur + 1, true })
	o.update(func(cur int) (int, bool) { return cur + 1, true })
	assert.Equal(t, 1, calls)
}

func TestObservableConcurrentUpdates(t *testing.T) {
	o := newObservable(0)
	var (
		mu   sync.Mutex
		seen []int
	)
	o.Subscribe(func(_, next int) {
		mu.Lock()
		seen = append(seen, next)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o.update(func(cur int) (int, bool) { return cur + 1, true })
			_ = o.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, o.Snapshot())
	require.Len(t, seen, 50)
	for i, v := range seen {
		assert.Equal(t, i+1, v)
	}
}

func TestObservableWatchStartsWithCurrent(t *testing.T) {
	o := newObservable(5)
	var got []int
	stop := o.Watch(func(_, next int) { got = append(got, next) })

	o.update(func(cur int) (int, bool) { return cur + 1, true })
	stop()
	o.update(func(cur int) (int, bool) { return cur + 1, true })

	assert.Equal(t, []int{5, 6}, got)
}
