// Package aggregate implements the time-series aggregation engine: daily,
// weekly, monthly, fiscal-year and rolling-window views over a date-keyed
// series, together with the comparison values each view needs for fair
// growth percentages.
//
// The engine is pure computation. Every function maps explicit inputs to
// outputs, holds no state, and is safe to invoke concurrently for
// independent series. The caller re-runs it on every parameter change.
//
// The central subtlety is "comparable partial period" semantics. A summed
// series (generation, traded value) whose current month only has data
// through day 10 must be compared against days 1-10 of the prior month, not
// the prior month's full total, or the in-progress month shows a spurious
// decline. Averaged series (prices, frequency) compare against full prior
// periods instead, because an average is not sensitive to period
// completeness the same way a sum is. The same idea applies to incomplete
// fiscal years, which are compared over the elapsed day-count of both years.
//
// Rolling windows come in two deliberately separate flavors: calendar-day
// windows for continuous daily series, and trading-day windows for sparse
// series such as exchange prices. Unifying them would silently change the
// denominator and corrupt comparisons, so they remain two functions.
package aggregate
