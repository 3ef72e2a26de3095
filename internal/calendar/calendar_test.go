package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected DayKey
	}{
		{"canonical", "2024-03-05", "2024-03-05"},
		{"day first slashes", "05/03/2024", "2024-03-05"},
		{"two digit year", "05/03/24", "2024-03-05"},
		{"month only", "3/2024", "2024-03-01"},
		{"month only two digit year", "3/24", "2024-03-01"},
		{"day first dashes", "05-03-2024", "2024-03-05"},
		{"day first dashes short year", "05-03-24", "2024-03-05"},
		{"surrounding whitespace", "  05/03/2024  ", "2024-03-05"},
		{"single digit day and month", "5/3/2024", "2024-03-05"},
		{"spreadsheet serial", "45356", "2024-03-05"},
		{"leap day", "29/02/2024", "2024-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDayRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"free text", "not a date"},
		{"invalid month", "05/13/2024"},
		{"invalid day", "32/01/2024"},
		{"leap day in common year", "29/02/2023"},
		{"number below serial band", "19999"},
		{"number above serial band", "80001"},
		{"plain small number", "123.45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDay(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestParseTextDay(t *testing.T) {
	// The serial band is disabled; text notations still parse.
	_, err := ParseTextDay("45356")
	assert.Error(t, err)

	got, err := ParseTextDay("05/03/2024")
	require.NoError(t, err)
	assert.Equal(t, DayKey("2024-03-05"), got)
}

func TestFromTimeUsesLocalFields(t *testing.T) {
	// Early morning in a zone ahead of UTC is still the previous day in UTC;
	// the key must follow the local fields.
	loc := time.FixedZone("IST", int((5*time.Hour + 30*time.Minute).Seconds()))
	early := time.Date(2024, 3, 5, 1, 0, 0, 0, loc)
	assert.Equal(t, DayKey("2024-03-05"), FromTime(early))
	// The same instant in UTC is still the previous day.
	assert.Equal(t, "2024-03-04", early.UTC().Format("2006-01-02"))
}

func TestFromSerial(t *testing.T) {
	// 45292 is the well-known serial for 2024-01-01.
	assert.Equal(t, DayKey("2024-01-01"), FromSerial(45292))
	assert.Equal(t, DayKey("2024-03-05"), FromSerial(45356))
}

func TestDayKeyAccessors(t *testing.T) {
	k := DayKey("2024-03-05")
	assert.True(t, k.Valid())
	assert.Equal(t, 2024, k.Year())
	assert.Equal(t, 3, k.MonthOfYear())
	assert.Equal(t, 5, k.DayOfMonth())
	assert.Equal(t, MonthKey("2024-03"), k.Month())
	assert.False(t, DayKey("2024-02-30").Valid())
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, DayKey("2024-03-01"), AddDays("2024-02-29", 1))
	assert.Equal(t, DayKey("2024-02-29"), AddDays("2024-03-01", -1))
	assert.Equal(t, DayKey("2023-12-31"), AddDays("2024-01-01", -1))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween("2024-03-05", "2024-03-05"))
	assert.Equal(t, 6, DaysBetween("2024-02-28", "2024-03-05"))
	assert.Equal(t, -6, DaysBetween("2024-03-05", "2024-02-28"))
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name     string
		day      DayKey
		expected DayKey
	}{
		{"tuesday", "2024-03-05", "2024-03-04"},
		{"monday is identity", "2024-03-04", "2024-03-04"},
		{"sunday shifts back six", "2024-03-10", "2024-03-04"},
		{"week spanning month edge", "2024-03-01", "2024-02-26"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StartOfWeek(tt.day))
		})
	}
}

func TestAddYearsSameDay(t *testing.T) {
	assert.Equal(t, DayKey("2023-02-28"), AddYearsSameDay("2024-02-29", -1))
	assert.Equal(t, DayKey("2025-02-28"), AddYearsSameDay("2024-02-29", 1))
	assert.Equal(t, DayKey("2023-03-05"), AddYearsSameDay("2024-03-05", -1))
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		month    MonthKey
		n        int
		expected MonthKey
	}{
		{"within year", "2024-03", 2, "2024-05"},
		{"overflow into next year", "2024-11", 3, "2025-02"},
		{"underflow into prior year", "2024-01", -2, "2023-11"},
		{"full year back", "2024-06", -12, "2023-06"},
		{"zero shift", "2024-06", 0, "2024-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddMonths(tt.month, tt.n))
		})
	}
}

func TestFiscalYear(t *testing.T) {
	tests := []struct {
		name  string
		day   DayKey
		label string
		start DayKey
		last  DayKey
	}{
		{"january belongs to ending year", "2024-02-15", "FY24", "2023-04-01", "2024-03-31"},
		{"may belongs to following year", "2024-05-15", "FY25", "2024-04-01", "2025-03-31"},
		{"april first is a boundary", "2024-04-01", "FY25", "2024-04-01", "2025-03-31"},
		{"march thirty-first is a boundary", "2024-03-31", "FY24", "2023-04-01", "2024-03-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.label, FiscalYearLabel(tt.day))
			assert.Equal(t, tt.start, FiscalYearStart(tt.day))
			assert.Equal(t, tt.last, FiscalYearLastDay(tt.day))
		})
	}
}

func TestMonthKeyLabel(t *testing.T) {
	assert.Equal(t, "Mar 2024", MonthKey("2024-03").Label())
	assert.Equal(t, DayKey("2024-03-01"), MonthKey("2024-03").FirstDay())
}
