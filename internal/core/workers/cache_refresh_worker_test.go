package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingCache struct {
	calls atomic.Int32
	err   error
}

func (c *countingCache) Refresh(ctx context.Context) error {
	c.calls.Add(1)
	return c.err
}

func TestCacheRefreshWorker(t *testing.T) {
	t.Run("Enqueue triggers a refresh", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		cache := &countingCache{}
		w := NewCacheRefreshWorker(cache, 0)
		w.Start(ctx)

		w.Enqueue()

		assert.Eventually(t, func() bool { return cache.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	})

	t.Run("Pending requests are coalesced", func(t *testing.T) {
		cache := &countingCache{}
		w := NewCacheRefreshWorker(cache, 0)

		for i := 0; i < 10; i++ {
			w.Enqueue()
		}
		assert.Len(t, w.jobs, 1)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		w.Start(ctx)

		assert.Eventually(t, func() bool { return cache.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
		assert.Never(t, func() bool { return cache.calls.Load() > 1 }, 50*time.Millisecond, 5*time.Millisecond)
	})

	t.Run("Interval refreshes keep running after an error", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		cache := &countingCache{err: errors.New("db down")}
		w := NewCacheRefreshWorker(cache, 10*time.Millisecond)
		w.Start(ctx)

		assert.Eventually(t, func() bool { return cache.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	})

	t.Run("Stops on context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		cache := &countingCache{}
		w := NewCacheRefreshWorker(cache, 0)
		w.Start(ctx)
		cancel()

		time.Sleep(20 * time.Millisecond)
		w.Enqueue()

		assert.Never(t, func() bool { return cache.calls.Load() > 0 }, 50*time.Millisecond, 5*time.Millisecond)
	})
}
