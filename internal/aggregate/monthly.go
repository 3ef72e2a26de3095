package aggregate

import (
	"sort"

	"gridcli/internal/calendar"
	"gridcli/internal/stats"
	"gridcli/pkg/contracts/domain"
)

// monthBucket accumulates one calendar month of a series. Per-day partial
// sums are kept so a prior month can be re-aggregated over the same
// day-of-month range as an in-progress current month.
type monthBucket struct {
	sum      float64
	count    int
	maxDay   int
	daySum   map[int]float64
	dayCount map[int]int
}

func newMonthBucket() *monthBucket {
	return &monthBucket{daySum: make(map[int]float64), dayCount: make(map[int]int)}
}

func (b *monthBucket) add(day int, value float64) {
	b.sum += value
	b.count++
	if day > b.maxDay {
		b.maxDay = day
	}
	b.daySum[day] += value
	b.dayCount[day]++
}

// fullValue aggregates the whole month under the mode.
func (b *monthBucket) fullValue(mode CombinationMode) float64 {
	v, _ := mode.combine(b.sum, b.count)
	return v
}

// throughDay re-aggregates the month restricted to days 1..day. ok is false
// when the restricted range holds no data at all, in which case any growth
// built on it is undefined rather than zero.
func (b *monthBucket) throughDay(day int, mode CombinationMode) (float64, bool) {
	var sum float64
	var count int
	for d := 1; d <= day; d++ {
		sum += b.daySum[d]
		count += b.dayCount[d]
	}
	if count == 0 {
		return 0, false
	}
	return mode.combine(sum, count)
}

// buildMonthMap groups a series by calendar month in a single pass.
func buildMonthMap(s domain.Series) map[calendar.MonthKey]*monthBucket {
	buckets := make(map[calendar.MonthKey]*monthBucket)
	for day, value := range s {
		mk := day.Month()
		b, ok := buckets[mk]
		if !ok {
			b = newMonthBucket()
			buckets[mk] = b
		}
		b.add(day.DayOfMonth(), value)
	}
	return buckets
}

// MonthlySeries aggregates a series into calendar months, in ascending
// period order. Under ModeSum the month-over-month and year-over-year growth
// percentages compare against the prior period restricted to the current
// month's populated day range (comparable partial months); under ModeAverage
// they compare against the full prior-period averages.
func MonthlySeries(s domain.Series, mode CombinationMode) []domain.PeriodAggregate {
	buckets := buildMonthMap(s)
	if len(buckets) == 0 {
		return nil
	}

	months := make([]calendar.MonthKey, 0, len(buckets))
	for mk := range buckets {
		months = append(months, mk)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })

	out := make([]domain.PeriodAggregate, 0, len(months))
	for _, mk := range months {
		b := buckets[mk]
		agg := domain.PeriodAggregate{
			PeriodKey: string(mk),
			Label:     mk.Label(),
			Value:     b.fullValue(mode),
		}

		prior := buckets[calendar.AddMonths(mk, -1)]
		priorYear := buckets[calendar.AddMonths(mk, -12)]
		if prior != nil {
			v := prior.fullValue(mode)
			agg.PriorPeriodValue = &v
		}
		if priorYear != nil {
			v := priorYear.fullValue(mode)
			agg.PriorYearValue = &v
		}

		switch mode {
		case ModeSum:
			if prior != nil {
				if v, ok := prior.throughDay(b.maxDay, mode); ok {
					agg.ComparablePriorPeriodValue = &v
				}
			}
			if priorYear != nil {
				if v, ok := priorYear.throughDay(b.maxDay, mode); ok {
					agg.ComparablePriorYearValue = &v
				}
			}
			agg.PeriodGrowthPct = stats.GrowthPctPtr(agg.Value, agg.ComparablePriorPeriodValue)
			agg.YearGrowthPct = stats.GrowthPctPtr(agg.Value, agg.ComparablePriorYearValue)
		default:
			agg.PeriodGrowthPct = stats.GrowthPctPtr(agg.Value, agg.PriorPeriodValue)
			agg.YearGrowthPct = stats.GrowthPctPtr(agg.Value, agg.PriorYearValue)
		}

		out = append(out, agg)
	}
	return out
}
