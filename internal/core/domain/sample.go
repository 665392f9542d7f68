package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidSample = errors.New("invalid occupancy sample")
)

type Sample struct {
	ID             int64     `json:"id" db:"id"`
	Timestamp      time.Time `json:"timestamp" db:"timestamp"`
	OccupancyLevel int       `json:"occupancy_level" db:"occupancy_level"`
}

func NewSample(timestamp time.Time, level int) *Sample {
	return &Sample{
		Timestamp:      timestamp.UTC(),
		OccupancyLevel: level,
	}
}

// HasData reports whether the reading carries a measurement. A zero level
// is what the scraper stores when the gym page could not be read.
func (s Sample) HasData() bool {
	return s.OccupancyLevel != 0
}

func (s *Sample) Validate() error {
	if s.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp is required", ErrInvalidSample)
	}
	if s.OccupancyLevel < 0 {
		return fmt.Errorf("%w: occupancy_level cannot be negative", ErrInvalidSample)
	}
	return nil
}
