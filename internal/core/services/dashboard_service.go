package services

import (
	"context"
	"fmt"
	"time"

	"github.com/comitanigiacomo/gym-occupancy/internal/core/analytics"
	"github.com/comitanigiacomo/gym-occupancy/internal/core/domain"
)

type DashboardService struct {
	repo domain.SampleRepository
	loc  *time.Location
	now  func() time.Time
}

// NewDashboardService builds the service. loc is the zone day boundaries
// and chart labels are computed in; now supplies the reference instant when
// a request does not pin one.
func NewDashboardService(repo domain.SampleRepository, loc *time.Location, now func() time.Time) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		repo: repo,
		loc:  loc,
		now:  now,
	}
}

// GetSeries reads only the samples at or after the window start.
func (s *DashboardService) GetSeries(ctx context.Context, input domain.SeriesInput) (*domain.OccupancySeries, error) {
	reference := s.reference(input)

	samples, err := s.repo.ListSince(ctx, analytics.WindowStart(reference, input.WindowDays, s.loc))
	if err != nil {
		return nil, fmt.Errorf("loading occupancy window: %w", err)
	}

	series := s.series(samples, reference, input.WindowDays)
	return &series, nil
}

func (s *DashboardService) GetDailyAverages(ctx context.Context) ([]domain.DailyAverage, error) {
	samples, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return analytics.DailyAverages(samples, s.loc), nil
}

// GetDashboard computes both chart views from a single read.
func (s *DashboardService) GetDashboard(ctx context.Context, input domain.SeriesInput) (*domain.Dashboard, error) {
	samples, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		Series:        s.series(samples, s.reference(input), input.WindowDays),
		DailyAverages: analytics.DailyAverages(samples, s.loc),
	}, nil
}

func (s *DashboardService) load(ctx context.Context) ([]domain.Sample, error) {
	samples, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading occupancy samples: %w", err)
	}
	return samples, nil
}

func (s *DashboardService) reference(input domain.SeriesInput) time.Time {
	if input.Reference.IsZero() {
		return s.now().In(s.loc)
	}
	return input.Reference.In(s.loc)
}

func (s *DashboardService) series(samples []domain.Sample, reference time.Time, windowDays int) domain.OccupancySeries {
	windowed := analytics.FilterWindow(samples, reference, windowDays, s.loc)

	return domain.OccupancySeries{
		Reference:  reference,
		Start:      analytics.WindowStart(reference, windowDays, s.loc),
		WindowDays: max(windowDays, 0),
		Points:     analytics.ChartPoints(windowed, s.loc),
	}
}
