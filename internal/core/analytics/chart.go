package analytics

import (
	"time"

	"github.com/samber/lo"

	"github.com/comitanigiacomo/gym-occupancy/internal/core/domain"
)

// ChartPoints projects samples to the rows the area chart plots, with the
// axis and tooltip labels rendered in loc.
func ChartPoints(samples []domain.Sample, loc *time.Location) []domain.ChartPoint {
	if loc == nil {
		loc = time.Local
	}

	return lo.Map(samples, func(s domain.Sample, _ int) domain.ChartPoint {
		local := s.Timestamp.In(loc)
		return domain.ChartPoint{
			ID:             s.ID,
			Timestamp:      s.Timestamp,
			OccupancyLevel: s.OccupancyLevel,
			FormattedDate:  local.Format(domain.ChartDate),
			FormattedTime:  local.Format(domain.ChartTime),
		}
	})
}
