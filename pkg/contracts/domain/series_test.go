package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridcli/internal/calendar"
)

func TestSeriesPutUpserts(t *testing.T) {
	s := make(Series)
	s.Put("2024-03-05", 10)
	s.Put("2024-03-05", 25)

	v, ok := s.Get("2024-03-05")
	require.True(t, ok)
	assert.Equal(t, 25.0, v)
	assert.Len(t, s, 1)
}

func TestSeriesMergeOverwrites(t *testing.T) {
	base := Series{"2024-03-01": 1, "2024-03-02": 2}
	incoming := Series{"2024-03-02": 20, "2024-03-03": 3}

	base.Merge(incoming)

	assert.Equal(t, Series{"2024-03-01": 1, "2024-03-02": 20, "2024-03-03": 3}, base)
}

func TestSeriesSortedDays(t *testing.T) {
	s := Series{"2024-03-05": 3, "2024-01-15": 1, "2024-02-29": 2}

	assert.Equal(t, []calendar.DayKey{"2024-01-15", "2024-02-29", "2024-03-05"}, s.SortedDays())

	points := s.Points()
	require.Len(t, points, 3)
	assert.Equal(t, DailyPoint{Date: "2024-01-15", Value: 1}, points[0])
	assert.Equal(t, DailyPoint{Date: "2024-03-05", Value: 3}, points[2])
}

func TestSeriesLatestDay(t *testing.T) {
	s := Series{"2024-03-05": 3, "2024-03-10": 4}
	latest, ok := s.LatestDay()
	require.True(t, ok)
	assert.Equal(t, calendar.DayKey("2024-03-10"), latest)

	_, ok = Series{}.LatestDay()
	assert.False(t, ok)
}

func TestSeriesWindow(t *testing.T) {
	s := Series{"2024-03-01": 1, "2024-03-05": 2, "2024-03-09": 3}
	got := s.Window("2024-03-02", "2024-03-08")
	assert.Equal(t, Series{"2024-03-05": 2}, got)
}
