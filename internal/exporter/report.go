package exporter

import (
	"gridcli/pkg/contracts/domain"
)

// PeriodHeaders is the column layout shared by the weekly, monthly, and
// fiscal-year tables.
var PeriodHeaders = []string{
	"Period", "Label", "Value",
	"PriorPeriod", "PriorYear",
	"ComparablePriorPeriod", "ComparablePriorYear",
	"PeriodGrowthPct", "YearGrowthPct",
}

// PeriodRecords renders period aggregates into CSV records. Undefined
// comparisons stay blank.
func PeriodRecords(aggs []domain.PeriodAggregate) [][]string {
	records := make([][]string, 0, len(aggs))
	for _, a := range aggs {
		records = append(records, []string{
			a.PeriodKey,
			a.Label,
			formatFloat(a.Value),
			formatOptional(a.PriorPeriodValue),
			formatOptional(a.PriorYearValue),
			formatOptional(a.ComparablePriorPeriodValue),
			formatOptional(a.ComparablePriorYearValue),
			formatOptional(a.PeriodGrowthPct),
			formatOptional(a.YearGrowthPct),
		})
	}
	return records
}

// RollingHeaders is the column layout for rolling-window tables.
var RollingHeaders = []string{"Date", "WindowValue", "PriorYearWindowValue"}

// RollingRecords renders rolling points into CSV records.
func RollingRecords(points []domain.RollingPoint) [][]string {
	records := make([][]string, 0, len(points))
	for _, p := range points {
		records = append(records, []string{
			string(p.AnchorDate),
			formatOptional(p.WindowValue),
			formatOptional(p.PriorYearWindowValue),
		})
	}
	return records
}

// BandHeaders is the column layout for the control-band table.
var BandHeaders = []string{"Mean", "StdDev", "Minus2", "Minus1", "Plus1", "Plus2"}

// BandRecord renders one control band as a single CSV record.
func BandRecord(b domain.ControlBand) []string {
	return []string{
		formatFloat(b.Mean),
		formatFloat(b.StdDev),
		formatFloat(b.Minus2),
		formatFloat(b.Minus1),
		formatFloat(b.Plus1),
		formatFloat(b.Plus2),
	}
}

// AlignmentHeaders builds the header row for an alignment table: the date
// column followed by one column per series name.
func AlignmentHeaders(names []string) []string {
	headers := make([]string, 0, len(names)+1)
	headers = append(headers, "Date")
	return append(headers, names...)
}

// AlignmentRecords renders aligned rows into CSV records, one column per
// series in the order the rows carry them. Absent values stay blank.
func AlignmentRecords(rows []domain.AlignedRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		record := make([]string, 0, len(row.Cells)+1)
		record = append(record, string(row.Date))
		for _, cell := range row.Cells {
			record = append(record, formatOptional(cell.Value))
		}
		records = append(records, record)
	}
	return records
}
