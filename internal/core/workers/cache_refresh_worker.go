package workers

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

type SampleCache interface {
	Refresh(ctx context.Context) error
}

// CacheRefreshWorker keeps the cached sample list in step with the
// database. The scraper writes rows directly, so besides on-demand refreshes
// the cache is rebuilt on a fixed interval.
type CacheRefreshWorker struct {
	cache    SampleCache
	interval time.Duration
	jobs     chan struct{}
}

func NewCacheRefreshWorker(cache SampleCache, interval time.Duration) *CacheRefreshWorker {
	return &CacheRefreshWorker{
		cache:    cache,
		interval: interval,
		jobs:     make(chan struct{}, 1),
	}
}

func (w *CacheRefreshWorker) Start(ctx context.Context) {
	go func() {
		log.Info("cache refresh worker started", "interval", w.interval)

		var tick <-chan time.Time
		if w.interval > 0 {
			ticker := time.NewTicker(w.interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			select {
			case <-w.jobs:
				w.refresh(ctx, "enqueued")
			case <-tick:
				w.refresh(ctx, "interval")
			case <-ctx.Done():
				log.Info("cache refresh worker shutting down")
				return
			}
		}
	}()
}

// Enqueue asks for a refresh. Requests arriving while one is already
// pending are coalesced.
func (w *CacheRefreshWorker) Enqueue() {
	select {
	case w.jobs <- struct{}{}:
	default:
		log.Debug("cache refresh already pending")
	}
}

func (w *CacheRefreshWorker) refresh(ctx context.Context, reason string) {
	start := time.Now()
	if err := w.cache.Refresh(ctx); err != nil {
		log.Error("cache refresh failed", "reason", reason, "err", err)
		return
	}
	log.Debug("cache refreshed", "reason", reason, "took", time.Since(start))
}
