package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/gym-occupancy/internal/core/domain"
)

type CacheRefresher interface {
	Enqueue()
}

type SampleService struct {
	repo    domain.SampleRepository
	refresh CacheRefresher
}

func NewSampleService(repo domain.SampleRepository, refresh CacheRefresher) *SampleService {
	return &SampleService{
		repo:    repo,
		refresh: refresh,
	}
}

type RecordSampleInput struct {
	Timestamp      time.Time
	OccupancyLevel int
}

func (s *SampleService) Record(ctx context.Context, input RecordSampleInput) (*domain.Sample, error) {
	sample := domain.NewSample(input.Timestamp, input.OccupancyLevel)

	if err := sample.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, sample); err != nil {
		return nil, err
	}

	if s.refresh != nil {
		s.refresh.Enqueue()
	}

	return sample, nil
}
