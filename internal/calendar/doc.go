// Package calendar implements the canonical calendar keys used as join keys
// across all GridPulse series.
//
// A day is represented as a DayKey, the string "YYYY-MM-DD". Because the
// serialization is fixed-width and zero-padded, lexicographic comparison of
// keys is identical to chronological comparison, and keys can be used directly
// as map keys and sort keys.
//
// The package also covers the calendar arithmetic the aggregation engine
// depends on: day and month shifts, Monday-based week starts, same-day year
// shifts with leap-day clamping, and the India fiscal-year convention
// (April 1 through March 31, labeled by the ending calendar year).
package calendar
