package ingest

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"gridcli/internal/calendar"
	"gridcli/pkg/contracts/domain"
)

// Options controls workbook ingestion.
type Options struct {
	// SerialDates enables the numeric-band heuristic that treats a bare
	// number in the date column as a spreadsheet date serial. Disable it for
	// workbooks whose first column is known to hold text dates, so a large
	// plain number can never be misread as a date.
	SerialDates bool
}

// DefaultOptions enables serial-date recognition, matching the exports this
// dashboard usually consumes.
func DefaultOptions() Options {
	return Options{SerialDates: true}
}

// SheetSeries is one worksheet parsed into a multi-column dated series.
type SheetSeries struct {
	Name    string
	Columns []string
	// Dates holds every contributing date in ascending order.
	Dates []calendar.DayKey
	// Values maps date -> column name -> value. A date is present only if at
	// least one of its numeric cells parsed.
	Values map[calendar.DayKey]map[string]float64
	// LatestDate anchors rolling calculations scoped to this sheet's data
	// availability.
	LatestDate calendar.DayKey
}

// Column extracts one named column as a single series.
func (ss *SheetSeries) Column(name string) domain.Series {
	out := make(domain.Series)
	for date, row := range ss.Values {
		if v, ok := row[name]; ok {
			out[date] = v
		}
	}
	return out
}

// Workbook is a parsed spreadsheet: the first worksheet is the primary
// metric, an optional second worksheet a companion metric sharing the same
// date universe.
type Workbook struct {
	Primary   *SheetSeries
	Companion *SheetSeries
}

// ParseWorkbook parses spreadsheet bytes with DefaultOptions.
func ParseWorkbook(data []byte) (*Workbook, []string, error) {
	return ParseWorkbookWithOptions(data, DefaultOptions())
}

// ParseWorkbookWithOptions parses the first worksheet as the primary series
// and, when present, the second as a companion. Row-level problems are
// collected as error strings; the returned error is non-nil only when the
// workbook cannot be opened or holds no usable sheet.
func ParseWorkbookWithOptions(data []byte, opts Options) (*Workbook, []string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	var rowErrors []string

	primary, errs, err := parseSheet(f, sheets[0], opts)
	if err != nil {
		return nil, nil, fmt.Errorf("sheet %q: %w", sheets[0], err)
	}
	rowErrors = append(rowErrors, errs...)

	wb := &Workbook{Primary: primary}
	if len(sheets) > 1 {
		companion, errs, err := parseSheet(f, sheets[1], opts)
		if err == nil {
			wb.Companion = companion
			rowErrors = append(rowErrors, errs...)
		} else {
			rowErrors = append(rowErrors, fmt.Sprintf("sheet %q: %v", sheets[1], err))
		}
	}

	return wb, rowErrors, nil
}

func parseSheet(f *excelize.File, name string, opts Options) (*SheetSeries, []string, error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}

	headerIdx := -1
	for i, row := range rows {
		if len(row) > 0 && rowHasContent(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil, nil, fmt.Errorf("no header row")
	}

	// Header names by cell index; the first cell belongs to the date column
	// and empty names are dropped.
	header := rows[headerIdx]
	columns := make(map[int]string)
	var columnOrder []string
	for j := 1; j < len(header); j++ {
		colName := strings.TrimSpace(header[j])
		if colName == "" {
			continue
		}
		columns[j] = colName
		columnOrder = append(columnOrder, colName)
	}
	if len(columns) == 0 {
		return nil, nil, fmt.Errorf("header row names no value columns")
	}

	ss := &SheetSeries{
		Name:    name,
		Columns: columnOrder,
		Values:  make(map[calendar.DayKey]map[string]float64),
	}
	var rowErrors []string

	parseDate := calendar.ParseDay
	if !opts.SerialDates {
		parseDate = calendar.ParseTextDay
	}

	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || !rowHasContent(row) {
			continue
		}

		date, err := parseDate(row[0])
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("sheet %q row %d: %v", name, i+1, err))
			continue
		}

		values := make(map[string]float64)
		for j, colName := range columns {
			if j >= len(row) || strings.TrimSpace(row[j]) == "" {
				continue
			}
			v, err := parseNumber(row[j])
			if err != nil {
				rowErrors = append(rowErrors, fmt.Sprintf("sheet %q row %d column %s: %v", name, i+1, colName, err))
				continue
			}
			values[colName] = v
		}
		if len(values) == 0 {
			continue
		}

		ss.Values[date] = values
	}

	for date := range ss.Values {
		ss.Dates = append(ss.Dates, date)
	}
	sort.Slice(ss.Dates, func(i, j int) bool { return ss.Dates[i] < ss.Dates[j] })
	if len(ss.Dates) > 0 {
		ss.LatestDate = ss.Dates[len(ss.Dates)-1]
	}

	return ss, rowErrors, nil
}

func rowHasContent(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}
