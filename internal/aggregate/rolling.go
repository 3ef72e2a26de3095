package aggregate

import (
	"sort"

	"gridcli/internal/calendar"
	"gridcli/pkg/contracts/domain"
)

// windowSum accumulates the populated days of [anchor-(windowDays-1), anchor].
func windowSum(s domain.Series, anchor calendar.DayKey, windowDays int) (float64, int) {
	var sum float64
	var count int
	day := calendar.AddDays(anchor, -(windowDays - 1))
	for ; day <= anchor; day = calendar.AddDays(day, 1) {
		if v, ok := s[day]; ok {
			sum += v
			count++
		}
	}
	return sum, count
}

// RollingCalendar evaluates a trailing calendar-day window ending at anchor:
// exactly the windowDays dates anchor-(windowDays-1)..anchor, with absent
// days excluded from the sum and from the average's denominator. A window
// with zero populated days yields an explicit 0 under ModeSum and nil under
// ModeAverage; the asymmetry is part of the contract because it affects
// chart continuity.
func RollingCalendar(s domain.Series, anchor calendar.DayKey, windowDays int, mode CombinationMode) *float64 {
	sum, count := windowSum(s, anchor, windowDays)
	v, ok := mode.combine(sum, count)
	if !ok {
		return nil
	}
	return &v
}

// RollingTrading evaluates a trailing window over the last windowDays dates
// present in the series at or before anchor, skipping non-trading days. It
// exists separately from RollingCalendar on purpose: for a sparse
// trading-day series a fixed calendar span would silently change the
// denominator. nil when no date at or before the anchor is populated.
func RollingTrading(s domain.Series, anchor calendar.DayKey, windowDays int, mode CombinationMode) *float64 {
	days := s.SortedDays()
	// First index after the anchor.
	end := sort.Search(len(days), func(i int) bool { return days[i] > anchor })
	if end == 0 {
		return nil
	}
	start := end - windowDays
	if start < 0 {
		start = 0
	}

	var sum float64
	for _, day := range days[start:end] {
		sum += s[day]
	}
	v, _ := mode.combine(sum, end-start)
	return &v
}

// RollingSeries evaluates a calendar-day rolling window at every populated
// day of the series, attaching the same window one year earlier (same-day
// anchor shift, leap-day clamped) as the prior-year comparison. The prior
// value is nil whenever its window holds no data, regardless of mode: a
// missing comparison is reported as absent, never as zero.
func RollingSeries(s domain.Series, windowDays int, mode CombinationMode) []domain.RollingPoint {
	days := s.SortedDays()
	out := make([]domain.RollingPoint, 0, len(days))
	for _, anchor := range days {
		point := domain.RollingPoint{
			AnchorDate:  anchor,
			WindowValue: RollingCalendar(s, anchor, windowDays, mode),
		}

		priorAnchor := calendar.AddYearsSameDay(anchor, -1)
		if sum, count := windowSum(s, priorAnchor, windowDays); count > 0 {
			v, _ := mode.combine(sum, count)
			point.PriorYearWindowValue = &v
		}

		out = append(out, point)
	}
	return out
}

// RollingTradingSeries is RollingSeries under the last-N-present-dates
// convention, for sparse trading-day series. The prior-year comparison anchors
// one year back and likewise counts only present dates.
func RollingTradingSeries(s domain.Series, windowDays int, mode CombinationMode) []domain.RollingPoint {
	days := s.SortedDays()
	out := make([]domain.RollingPoint, 0, len(days))
	for _, anchor := range days {
		out = append(out, domain.RollingPoint{
			AnchorDate:           anchor,
			WindowValue:          RollingTrading(s, anchor, windowDays, mode),
			PriorYearWindowValue: RollingTrading(s, calendar.AddYearsSameDay(anchor, -1), windowDays, mode),
		})
	}
	return out
}
