package ingest

import (
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gridcli/internal/calendar"
	"gridcli/pkg/contracts/domain"
)

// ParseDelimitedSeries parses comma-delimited text into a single date->value
// series. Column 0 holds the date; the value column is located by matching
// valueColumn against the normalized header, falling back to column index 1
// when there is no header or no match. Rows that fail to parse are collected
// as row-indexed error strings and skipped; the returned error is non-nil
// only when the input holds no rows at all.
func ParseDelimitedSeries(text, valueColumn string) (domain.Series, []string, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return nil, nil, fmt.Errorf("no rows in input")
	}

	series := make(domain.Series)
	var rowErrors []string

	valueIdx := 1
	start := 0

	first, err := splitFields(lines[0])
	if err == nil && len(first) > 0 && strings.Contains(strings.ToLower(first[0]), "date") {
		start = 1
		if idx, ok := locateColumn(first, valueColumn); ok {
			valueIdx = idx
		}
	}

	for i := start; i < len(lines); i++ {
		fields, err := splitFields(lines[i])
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}

		date, err := calendar.ParseDay(fields[0])
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}

		if len(fields) <= valueIdx {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: missing value column %d", i+1, valueIdx))
			continue
		}

		value, err := parseNumber(fields[valueIdx])
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}

		series.Put(date, value)
	}

	return series, rowErrors, nil
}

// splitFields splits one line into comma-separated fields honoring quoted
// fields: embedded commas inside "..." stay in the field and "" is an
// escaped quote.
func splitFields(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	fields, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("malformed row: %w", err)
	}
	return fields, nil
}

// locateColumn matches the caller's logical column name against the header
// by normalized comparison.
func locateColumn(header []string, valueColumn string) (int, bool) {
	want := normalizeHeader(valueColumn)
	if want == "" {
		return 0, false
	}
	for i, h := range header {
		if normalizeHeader(h) == want {
			return i, true
		}
	}
	return 0, false
}

// normalizeHeader canonicalizes a header cell for exact matching: trim,
// lowercase, en/em dashes to hyphens, and all whitespace removed.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer("–", "-", "—", "-").Replace(h)
	return strings.Join(strings.Fields(h), "")
}

// parseNumber parses a locale-free number after stripping
// thousands-separator commas. Non-finite values are rejected.
func parseNumber(s string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty value")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse value %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}
