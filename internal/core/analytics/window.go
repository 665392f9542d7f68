// Package analytics derives the chart views from raw occupancy samples.
// Everything here is a pure function of its arguments: no clock reads, no
// I/O, and the input slice is never modified.
package analytics

import (
	"time"

	"github.com/samber/lo"

	"github.com/comitanigiacomo/gym-occupancy/internal/core/domain"
)

// WindowStart is the inclusive lower bound of a trailing window of
// windowDays calendar days ending at reference. Days are subtracted on the
// calendar of loc, so a window spanning a DST change is 23 or 25 hours per
// affected day rather than a fixed multiple of 24h.
func WindowStart(reference time.Time, windowDays int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	if windowDays < 0 {
		windowDays = 0
	}
	return reference.In(loc).AddDate(0, 0, -windowDays)
}

// FilterWindow keeps the samples whose timestamp is at or after
// WindowStart. Samples later than reference are kept as well. The result
// preserves input order.
func FilterWindow(samples []domain.Sample, reference time.Time, windowDays int, loc *time.Location) []domain.Sample {
	start := WindowStart(reference, windowDays, loc)

	return lo.Filter(samples, func(s domain.Sample, _ int) bool {
		return !s.Timestamp.Before(start)
	})
}
