package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/comitanigiacomo/gym-occupancy/internal/core/domain"
)

var _ domain.SampleRepository = (*InMemorySampleRepository)(nil)

type InMemorySampleRepository struct {
	store  []domain.Sample
	nextID int64

	mu sync.RWMutex
}

func NewInMemorySampleRepository(seed ...domain.Sample) *InMemorySampleRepository {
	r := &InMemorySampleRepository{nextID: 1}
	for _, s := range seed {
		r.insert(s)
	}
	return r
}

func (r *InMemorySampleRepository) ListAll(ctx context.Context) ([]domain.Sample, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(func(domain.Sample) bool { return true }), nil
}

func (r *InMemorySampleRepository) ListSince(ctx context.Context, since time.Time) ([]domain.Sample, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(func(s domain.Sample) bool { return !s.Timestamp.Before(since) }), nil
}

func (r *InMemorySampleRepository) Create(ctx context.Context, sample *domain.Sample) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	*sample = r.insert(*sample)
	return nil
}

func (r *InMemorySampleRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.store), nil
}

// insert assigns the next ID when the sample has none. Callers hold the
// write lock, except the constructor.
func (r *InMemorySampleRepository) insert(sample domain.Sample) domain.Sample {
	if sample.ID == 0 {
		sample.ID = r.nextID
	}
	if sample.ID >= r.nextID {
		r.nextID = sample.ID + 1
	}

	r.store = append(r.store, sample)
	return sample
}

func (r *InMemorySampleRepository) sorted(keep func(domain.Sample) bool) []domain.Sample {
	out := make([]domain.Sample, 0, len(r.store))
	for _, s := range r.store {
		if keep(s) {
			out = append(out, s)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}
