package analytics

import (
	"math"
	"slices"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/comitanigiacomo/gym-occupancy/internal/core/domain"
)

type dayBucket struct {
	date  domain.CivilDate
	first time.Time
	total int
	count int
}

func (b *dayBucket) average() int {
	return int(math.Round(float64(b.total) / float64(b.count)))
}

// DailyAverages buckets samples by calendar day in loc and returns the
// rounded mean of the non-zero readings for the most recent
// domain.MaxDailyAverages days, oldest first.
func DailyAverages(samples []domain.Sample, loc *time.Location) []domain.DailyAverage {
	if loc == nil {
		loc = time.Local
	}

	buckets := make(map[domain.CivilDate]*dayBucket)
	for _, s := range samples {
		if !s.HasData() {
			continue
		}

		local := s.Timestamp.In(loc)
		key := domain.CivilDateOf(local)

		b, ok := buckets[key]
		if !ok {
			b = &dayBucket{date: key, first: local}
			buckets[key] = b
		}
		b.total += s.OccupancyLevel
		b.count++
	}

	days := lo.Values(buckets)
	sort.Slice(days, func(i, j int) bool {
		return days[j].date.Before(days[i].date)
	})

	if len(days) > domain.MaxDailyAverages {
		days = days[:domain.MaxDailyAverages]
	}
	slices.Reverse(days)

	return lo.Map(days, func(b *dayBucket, _ int) domain.DailyAverage {
		return domain.DailyAverage{
			Date:             b.date,
			Day:              b.first.Format(domain.DayLayout),
			WeekdayLabel:     b.first.Format(domain.WeekdayLayout),
			AverageOccupancy: b.average(),
		}
	})
}
