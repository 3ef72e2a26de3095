package aggregate

import (
	"sort"

	"gridcli/internal/calendar"
	"gridcli/internal/stats"
	"gridcli/pkg/contracts/domain"
)

type fiscalBucket struct {
	label  string
	start  calendar.DayKey // April 1 of the fiscal year
	last   calendar.DayKey // March 31 of the fiscal year
	latest calendar.DayKey // latest day with data
	sum    float64
	count  int
}

// FiscalYearSeries aggregates a series into India fiscal years (April 1
// through March 31, labeled by ending year), in ascending order.
//
// A complete fiscal year is compared against the prior year's full
// aggregate. An incomplete one (latest contributing date before March 31 of
// its end year) is compared over the elapsed portion of both years: the
// prior year restricted to the same start date and elapsed day count.
// Otherwise an in-progress year would be compared unfairly against a
// completed one.
func FiscalYearSeries(s domain.Series, mode CombinationMode) []domain.PeriodAggregate {
	buckets := make(map[string]*fiscalBucket)
	for day, value := range s {
		label := calendar.FiscalYearLabel(day)
		b, ok := buckets[label]
		if !ok {
			b = &fiscalBucket{
				label: label,
				start: calendar.FiscalYearStart(day),
				last:  calendar.FiscalYearLastDay(day),
			}
			buckets[label] = b
		}
		b.sum += value
		b.count++
		if day > b.latest {
			b.latest = day
		}
	}
	if len(buckets) == 0 {
		return nil
	}

	years := make([]*fiscalBucket, 0, len(buckets))
	for _, b := range buckets {
		years = append(years, b)
	}
	sort.Slice(years, func(i, j int) bool { return years[i].start < years[j].start })

	out := make([]domain.PeriodAggregate, 0, len(years))
	for i, b := range years {
		value, _ := mode.combine(b.sum, b.count)

		agg := domain.PeriodAggregate{
			PeriodKey: b.label,
			Label:     b.label,
			Value:     value,
		}

		var prior *fiscalBucket
		if i > 0 && years[i-1].start == calendar.AddYearsSameDay(b.start, -1) {
			prior = years[i-1]
		}
		if prior != nil {
			if v, ok := mode.combine(prior.sum, prior.count); ok {
				agg.PriorPeriodValue = &v
				agg.PriorYearValue = &v
			}
		}

		if b.latest >= b.last {
			// Complete fiscal year: compare full totals.
			agg.PeriodGrowthPct = stats.GrowthPctPtr(agg.Value, agg.PriorPeriodValue)
		} else if prior != nil {
			// In-progress year: restrict the prior year to the same elapsed
			// span before comparing.
			elapsed := calendar.DaysBetween(b.start, b.latest)
			cutoff := calendar.AddDays(prior.start, elapsed)
			if v, ok := rangeValue(s, prior.start, cutoff, mode); ok {
				agg.ComparablePriorPeriodValue = &v
				agg.PeriodGrowthPct = stats.GrowthPctPtr(agg.Value, &v)
			}
		}
		agg.YearGrowthPct = agg.PeriodGrowthPct

		out = append(out, agg)
	}
	return out
}

// rangeValue aggregates the series over [from, to] inclusive. ok is false
// when no day in the range is populated.
func rangeValue(s domain.Series, from, to calendar.DayKey, mode CombinationMode) (float64, bool) {
	var sum float64
	var count int
	for day, value := range s {
		if day >= from && day <= to {
			sum += value
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return mode.combine(sum, count)
}
