package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/gym-occupancy/internal/core/domain"
)

type MockSampleRepo struct {
	mock.Mock
}

func (m *MockSampleRepo) ListAll(ctx context.Context) ([]domain.Sample, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sample), args.Error(1)
}

func (m *MockSampleRepo) ListSince(ctx context.Context, since time.Time) ([]domain.Sample, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sample), args.Error(1)
}

func (m *MockSampleRepo) Create(ctx context.Context, s *domain.Sample) error {
	args := m.Called(ctx, s)
	if args.Error(0) == nil && s.ID == 0 {
		s.ID = 1
	}
	return args.Error(0)
}

func (m *MockSampleRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockRefresher struct {
	calls int
}

func (m *MockRefresher) Enqueue() {
	m.calls++
}
