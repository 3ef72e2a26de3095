package domain

import (
	"sort"

	"gridcli/internal/calendar"
)

// DailyPoint is one observation of a metric on one calendar day.
type DailyPoint struct {
	Date  calendar.DayKey `json:"date" validate:"required"`
	Value float64         `json:"value"`
}

// Series maps calendar days to metric values. A series holds at most one
// value per day; Put replaces any existing value for the day (upsert
// semantics, later imports win). Series are immutable inputs to the
// aggregation engine: every derived structure is recomputed from the series,
// never stored alongside it.
type Series map[calendar.DayKey]float64

// Put records a value for a day, replacing any previous value.
func (s Series) Put(day calendar.DayKey, value float64) {
	s[day] = value
}

// Merge applies every point of other onto s, overwriting on conflicts.
func (s Series) Merge(other Series) {
	for day, value := range other {
		s[day] = value
	}
}

// Get returns the value for a day and whether it is present.
func (s Series) Get(day calendar.DayKey) (float64, bool) {
	v, ok := s[day]
	return v, ok
}

// SortedDays returns every populated day in ascending order.
func (s Series) SortedDays() []calendar.DayKey {
	days := make([]calendar.DayKey, 0, len(s))
	for day := range s {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// Points returns the series as date-ordered daily points.
func (s Series) Points() []DailyPoint {
	days := s.SortedDays()
	points := make([]DailyPoint, len(days))
	for i, day := range days {
		points[i] = DailyPoint{Date: day, Value: s[day]}
	}
	return points
}

// LatestDay returns the maximum populated day, or false for an empty series.
func (s Series) LatestDay() (calendar.DayKey, bool) {
	var latest calendar.DayKey
	for day := range s {
		if day > latest {
			latest = day
		}
	}
	return latest, latest != ""
}

// Window returns a copy of the series restricted to [from, to].
func (s Series) Window(from, to calendar.DayKey) Series {
	out := make(Series)
	for day, value := range s {
		if day >= from && day <= to {
			out[day] = value
		}
	}
	return out
}
