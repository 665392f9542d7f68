package domain

import "time"

const (
	MaxDailyAverages = 7

	DayLayout     = "Jan 2, 2006"
	WeekdayLayout = "Mon"
	ChartDate     = "Jan 2"
	ChartTime     = "03:04 PM"
)

// CivilDate is a calendar day with no time or zone attached.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

func CivilDateOf(t time.Time) CivilDate {
	y, m, d := t.Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

func (d CivilDate) Before(other CivilDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d CivilDate) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

type DailyAverage struct {
	Date             CivilDate `json:"-"`
	Day              string    `json:"day"`
	WeekdayLabel     string    `json:"weekday_label"`
	AverageOccupancy int       `json:"average_occupancy"`
}

type ChartPoint struct {
	ID             int64     `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	OccupancyLevel int       `json:"occupancy_level"`
	FormattedDate  string    `json:"formatted_date"`
	FormattedTime  string    `json:"formatted_time"`
}

type OccupancySeries struct {
	Reference  time.Time    `json:"reference"`
	Start      time.Time    `json:"start"`
	WindowDays int          `json:"window_days"`
	Points     []ChartPoint `json:"points"`
}

type Dashboard struct {
	Series        OccupancySeries `json:"series"`
	DailyAverages []DailyAverage  `json:"daily_averages"`
}

type SeriesInput struct {
	WindowDays int
	// Reference is the instant the window ends at. Zero means "now".
	Reference time.Time
}
