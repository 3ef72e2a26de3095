// Package align places independently-dated series onto a common date axis
// for a selected window, so a renderer can chart a continuous daily series
// next to a sparser trading-day series row by row.
package align

import (
	"fmt"

	"gridcli/internal/calendar"
	"gridcli/pkg/contracts/domain"
)

// NamedSeries is one input to an alignment window. LagDays shifts the lookup
// date backward for series reported with a delay (a price index published
// two days late): the row still displays the unlagged date, but the value
// shown next to it is the one from LagDays earlier.
type NamedSeries struct {
	Name    string
	Data    domain.Series
	LagDays int
}

// Window produces one row per calendar day in [from, to], each carrying a
// cell per input series. A cell records both the display date and the date
// actually queried, so consumers can always tell them apart.
func Window(series []NamedSeries, from, to calendar.DayKey) ([]domain.AlignedRow, error) {
	if !from.Valid() || !to.Valid() {
		return nil, fmt.Errorf("invalid window bounds %q..%q", from, to)
	}
	if from > to {
		return nil, fmt.Errorf("window start %s is after end %s", from, to)
	}

	rows := make([]domain.AlignedRow, 0, calendar.DaysBetween(from, to)+1)
	for day := from; day <= to; day = calendar.AddDays(day, 1) {
		row := domain.AlignedRow{Date: day, Cells: make([]domain.AlignedCell, 0, len(series))}
		for _, ns := range series {
			query := day
			if ns.LagDays != 0 {
				query = calendar.AddDays(day, -ns.LagDays)
			}
			cell := domain.AlignedCell{
				Series:      ns.Name,
				DisplayDate: day,
				QueryDate:   query,
			}
			if v, ok := ns.Data.Get(query); ok {
				value := v
				cell.Value = &value
			}
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Pairs extracts the aligned (x, y) observations for two series over a
// window, keeping only days where both have a value after lag shifting. The
// result feeds correlation.
func Pairs(x, y NamedSeries, from, to calendar.DayKey) (xs, ys []float64, err error) {
	rows, err := Window([]NamedSeries{x, y}, from, to)
	if err != nil {
		return nil, nil, err
	}
	for _, row := range rows {
		if row.Cells[0].Value == nil || row.Cells[1].Value == nil {
			continue
		}
		xs = append(xs, *row.Cells[0].Value)
		ys = append(ys, *row.Cells[1].Value)
	}
	return xs, ys, nil
}
