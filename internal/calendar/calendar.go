package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayKey is the canonical representation of a calendar day, "YYYY-MM-DD".
// Lexicographic order on DayKeys equals chronological order.
type DayKey string

// MonthKey is the canonical representation of a calendar month, "YYYY-MM".
type MonthKey string

// Spreadsheet serials count days from the 1900 epoch with the Lotus leap-year
// bug baked in, which is why the effective epoch is 1899-12-30.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Bounds of the numeric band treated as a spreadsheet date serial. The band
// covers roughly the years 1954-2119; plain numbers outside it are never
// mistaken for dates.
const (
	minDateSerial = 20000
	maxDateSerial = 80000
)

// NewDayKey builds a key from explicit year, month and day fields, validating
// that they name a real Gregorian date.
func NewDayKey(year, month, day int) (DayKey, error) {
	if month < 1 || month > 12 {
		return "", fmt.Errorf("invalid month %d", month)
	}
	if day < 1 || day > daysInMonth(year, month) {
		return "", fmt.Errorf("invalid day %d for %04d-%02d", day, year, month)
	}
	return DayKey(fmt.Sprintf("%04d-%02d-%02d", year, month, day)), nil
}

// FromTime converts a native time value using its local calendar fields.
// Using Date() instead of a UTC conversion avoids the off-by-one-day error
// for timezones ahead of UTC.
func FromTime(t time.Time) DayKey {
	y, m, d := t.Date()
	return DayKey(fmt.Sprintf("%04d-%02d-%02d", y, int(m), d))
}

// ParseDay parses heterogeneous date notations into a DayKey. Attempts, in
// order: canonical YYYY-MM-DD, DD/MM/YYYY, DD/MM/YY, MM/YYYY, MM/YY,
// DD-MM-YYYY, DD-MM-YY, and a spreadsheet date serial inside the recognized
// numeric band. Month-only notations normalize to day 1 of the month.
func ParseDay(input string) (DayKey, error) {
	return parseDay(input, true)
}

// ParseTextDay is ParseDay without the numeric-serial heuristic. Callers use
// it when a column is known to hold text dates, so a legitimate large number
// can never be misread as a date.
func ParseTextDay(input string) (DayKey, error) {
	return parseDay(input, false)
}

func parseDay(input string, allowSerial bool) (DayKey, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", fmt.Errorf("empty date")
	}

	if len(s) == 10 && s[4] == '-' && s[7] == '-' {
		if k, err := fromParts(s[:4], s[5:7], s[8:10]); err == nil {
			return k, nil
		}
	}

	if parts := strings.Split(s, "/"); len(parts) == 2 || len(parts) == 3 {
		if k, err := fromSeparated(parts); err == nil {
			return k, nil
		}
	}

	// DD-MM-YYYY and DD-MM-YY; the canonical form was already handled above.
	if parts := strings.Split(s, "-"); len(parts) == 3 && len(parts[0]) <= 2 {
		if k, err := fromSeparated(parts); err == nil {
			return k, nil
		}
	}

	if allowSerial {
		if n, err := strconv.ParseFloat(s, 64); err == nil && n > minDateSerial && n < maxDateSerial {
			return FromSerial(n), nil
		}
	}

	return "", fmt.Errorf("unrecognized date notation: %q", input)
}

// FromSerial converts a spreadsheet date serial (days since 1899-12-30).
func FromSerial(serial float64) DayKey {
	return FromTime(serialEpoch.AddDate(0, 0, int(serial)))
}

// fromSeparated handles day-first notations split on "/" or "-". Two parts
// mean a month-only date (MM/YYYY or MM/YY) normalized to day 1.
func fromSeparated(parts []string) (DayKey, error) {
	if len(parts) == 2 {
		month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return "", err
		}
		year, err := parseYear(parts[1])
		if err != nil {
			return "", err
		}
		return NewDayKey(year, month, 1)
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return "", err
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", err
	}
	year, err := parseYear(parts[2])
	if err != nil {
		return "", err
	}
	return NewDayKey(year, month, day)
}

func fromParts(ys, ms, ds string) (DayKey, error) {
	year, err := strconv.Atoi(ys)
	if err != nil {
		return "", err
	}
	month, err := strconv.Atoi(ms)
	if err != nil {
		return "", err
	}
	day, err := strconv.Atoi(ds)
	if err != nil {
		return "", err
	}
	return NewDayKey(year, month, day)
}

// parseYear accepts four-digit years as-is and maps two-digit years into the
// 2000s, matching the source files this dashboard consumes.
func parseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if len(s) <= 2 {
		year += 2000
	}
	return year, nil
}

// Valid reports whether the key holds a well-formed canonical date.
func (k DayKey) Valid() bool {
	_, err := time.Parse("2006-01-02", string(k))
	return err == nil
}

// Time returns the midnight UTC instant for the key. Invalid keys return the
// zero time.
func (k DayKey) Time() time.Time {
	t, err := time.Parse("2006-01-02", string(k))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Year returns the calendar year of the key.
func (k DayKey) Year() int {
	y, _ := strconv.Atoi(string(k)[:4])
	return y
}

// MonthOfYear returns the calendar month (1-12) of the key.
func (k DayKey) MonthOfYear() int {
	m, _ := strconv.Atoi(string(k)[5:7])
	return m
}

// DayOfMonth returns the day of month (1-31) of the key.
func (k DayKey) DayOfMonth() int {
	d, _ := strconv.Atoi(string(k)[8:10])
	return d
}

// Month returns the MonthKey containing this day.
func (k DayKey) Month() MonthKey {
	return MonthKey(string(k)[:7])
}

// AddDays shifts the key by n calendar days (n may be negative).
func AddDays(k DayKey, n int) DayKey {
	return FromTime(k.Time().AddDate(0, 0, n))
}

// DaysBetween returns the number of calendar days from a to b (positive when
// b is after a).
func DaysBetween(a, b DayKey) int {
	return int(b.Time().Sub(a.Time()).Hours() / 24)
}

// StartOfWeek returns the most recent Monday at or before the key.
func StartOfWeek(k DayKey) DayKey {
	t := k.Time()
	shift := (int(t.Weekday()) + 6) % 7
	return FromTime(t.AddDate(0, 0, -shift))
}

// AddYearsSameDay shifts the key by whole years keeping the same month and
// day. When the target day does not exist (leap-day shifts) it clamps to the
// last valid day of the target month.
func AddYearsSameDay(k DayKey, years int) DayKey {
	year := k.Year() + years
	month := k.MonthOfYear()
	day := k.DayOfMonth()
	if max := daysInMonth(year, month); day > max {
		day = max
	}
	key, _ := NewDayKey(year, month, day)
	return key
}

// Year returns the calendar year of the month key.
func (m MonthKey) Year() int {
	y, _ := strconv.Atoi(string(m)[:4])
	return y
}

// MonthOfYear returns the calendar month (1-12) of the month key.
func (m MonthKey) MonthOfYear() int {
	mo, _ := strconv.Atoi(string(m)[5:7])
	return mo
}

// FirstDay returns day 1 of the month.
func (m MonthKey) FirstDay() DayKey {
	return DayKey(string(m) + "-01")
}

// Label renders the month for display, e.g. "Mar 2024".
func (m MonthKey) Label() string {
	return fmt.Sprintf("%s %d", time.Month(m.MonthOfYear()).String()[:3], m.Year())
}

// AddMonths shifts a month key by n months, rolling overflow into the year.
// Negative shifts are supported.
func AddMonths(m MonthKey, n int) MonthKey {
	total := m.Year()*12 + (m.MonthOfYear() - 1) + n
	year := total / 12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}
	return MonthKey(fmt.Sprintf("%04d-%02d", year, month+1))
}

// FiscalYearLabel returns the India fiscal-year label for the key. The fiscal
// year runs April 1 through March 31 and is labeled by its ending calendar
// year: 2024-02-15 is FY24, 2024-05-15 is FY25.
func FiscalYearLabel(k DayKey) string {
	end := FiscalYearEnd(k)
	return fmt.Sprintf("FY%02d", end%100)
}

// FiscalYearEnd returns the calendar year in which the key's fiscal year ends.
func FiscalYearEnd(k DayKey) int {
	if k.MonthOfYear() >= 4 {
		return k.Year() + 1
	}
	return k.Year()
}

// FiscalYearStart returns April 1 of the fiscal year containing the key.
func FiscalYearStart(k DayKey) DayKey {
	key, _ := NewDayKey(FiscalYearEnd(k)-1, 4, 1)
	return key
}

// FiscalYearLastDay returns March 31 of the fiscal year containing the key.
func FiscalYearLastDay(k DayKey) DayKey {
	key, _ := NewDayKey(FiscalYearEnd(k), 3, 31)
	return key
}

func daysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
