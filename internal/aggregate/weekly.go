package aggregate

import (
	"fmt"
	"sort"

	"gridcli/internal/calendar"
	"gridcli/internal/stats"
	"gridcli/pkg/contracts/domain"
)

type weekBucket struct {
	sum   float64
	count int
}

// WeeklySeries aggregates a series into Monday-start weeks, in ascending
// order. Week-over-week growth compares against the week exactly 7 days
// earlier; year-over-year compares against the week 364 days earlier (52
// whole weeks, not a calendar-year shift, so day-of-week alignment is
// preserved).
func WeeklySeries(s domain.Series, mode CombinationMode) []domain.PeriodAggregate {
	buckets := make(map[calendar.DayKey]*weekBucket)
	for day, value := range s {
		wk := calendar.StartOfWeek(day)
		b, ok := buckets[wk]
		if !ok {
			b = &weekBucket{}
			buckets[wk] = b
		}
		b.sum += value
		b.count++
	}
	if len(buckets) == 0 {
		return nil
	}

	weeks := make([]calendar.DayKey, 0, len(buckets))
	for wk := range buckets {
		weeks = append(weeks, wk)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i] < weeks[j] })

	out := make([]domain.PeriodAggregate, 0, len(weeks))
	for _, wk := range weeks {
		b := buckets[wk]
		value, _ := mode.combine(b.sum, b.count)

		agg := domain.PeriodAggregate{
			PeriodKey: string(wk),
			Label:     fmt.Sprintf("Wk of %s", wk),
			Value:     value,
		}

		if prior, ok := buckets[calendar.AddDays(wk, -7)]; ok {
			if v, ok := mode.combine(prior.sum, prior.count); ok {
				agg.PriorPeriodValue = &v
			}
		}
		if priorYear, ok := buckets[calendar.AddDays(wk, -364)]; ok {
			if v, ok := mode.combine(priorYear.sum, priorYear.count); ok {
				agg.PriorYearValue = &v
			}
		}

		agg.PeriodGrowthPct = stats.GrowthPctPtr(agg.Value, agg.PriorPeriodValue)
		agg.YearGrowthPct = stats.GrowthPctPtr(agg.Value, agg.PriorYearValue)

		out = append(out, agg)
	}
	return out
}
