package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"

	"github.com/comitanigiacomo/gym-occupancy/internal/core/domain"
)

var _ domain.SampleRepository = (*CachedSampleRepository)(nil)

const samplesCacheKey = "occupancy:samples"

type CachedSampleRepository struct {
	next  domain.SampleRepository
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedSampleRepository(next domain.SampleRepository, cache *redis.Client, ttl time.Duration) *CachedSampleRepository {
	return &CachedSampleRepository{
		next:  next,
		cache: cache,
		ttl:   ttl,
	}
}

func (r *CachedSampleRepository) Invalidate(ctx context.Context) {
	if err := r.cache.Del(ctx, samplesCacheKey).Err(); err != nil {
		log.Warn("cache invalidate failed", "key", samplesCacheKey, "err", err)
	}
}

// Refresh reloads the sample list from the wrapped repository and
// overwrites the cached copy.
func (r *CachedSampleRepository) Refresh(ctx context.Context) error {
	samples, err := r.next.ListAll(ctx)
	if err != nil {
		return err
	}
	r.store(ctx, samples)
	return nil
}

func (r *CachedSampleRepository) ListAll(ctx context.Context) ([]domain.Sample, error) {
	val, err := r.cache.Get(ctx, samplesCacheKey).Bytes()
	if err == nil {
		var samples []domain.Sample
		if err := json.Unmarshal(val, &samples); err == nil {
			return samples, nil
		}

		log.Warn("corrupted cache entry, cleaning up", "key", samplesCacheKey)
		r.Invalidate(ctx)
	} else if !errors.Is(err, redis.Nil) {
		log.Warn("cache read failed", "err", err)
	}

	samples, err := r.next.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	r.store(ctx, samples)
	return samples, nil
}

// ListSince filters the cached full list so window queries share the
// entry the worker keeps warm.
func (r *CachedSampleRepository) ListSince(ctx context.Context, since time.Time) ([]domain.Sample, error) {
	samples, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(samples, func(s domain.Sample, _ int) bool {
		return !s.Timestamp.Before(since)
	}), nil
}

func (r *CachedSampleRepository) Create(ctx context.Context, sample *domain.Sample) error {
	if err := r.next.Create(ctx, sample); err != nil {
		return err
	}
	r.Invalidate(ctx)
	return nil
}

func (r *CachedSampleRepository) Count(ctx context.Context) (int, error) {
	return r.next.Count(ctx)
}

func (r *CachedSampleRepository) store(ctx context.Context, samples []domain.Sample) {
	data, err := json.Marshal(samples)
	if err != nil {
		log.Warn("cache encode failed", "key", samplesCacheKey, "err", err)
		return
	}
	if err := r.cache.Set(ctx, samplesCacheKey, data, r.ttl).Err(); err != nil {
		log.Warn("cache write failed", "err", err)
	}
}
