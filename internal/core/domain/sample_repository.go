package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrStorageUnavailable = errors.New("occupancy storage unavailable")
)

type SampleRepository interface {
	// ListAll returns every stored sample ordered by timestamp ascending.
	ListAll(ctx context.Context) ([]Sample, error)

	// ListSince returns the samples at or after since, ordered by timestamp ascending.
	ListSince(ctx context.Context, since time.Time) ([]Sample, error)

	// Create persists a new reading and assigns its ID.
	Create(ctx context.Context, sample *Sample) error

	Count(ctx context.Context) (int, error)
}
