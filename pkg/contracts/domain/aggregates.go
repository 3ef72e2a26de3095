package domain

import (
	"gridcli/internal/calendar"
)

// PeriodAggregate is one full calendar period (week, month, or fiscal year)
// of an aggregated series, carrying the comparison values and growth
// percentages a renderer needs for a dual-axis chart. Nil pointers mean "no
// comparison available", a first-class renderable state (an em-dash in the
// dashboard), never zero.
type PeriodAggregate struct {
	// PeriodKey identifies the period: a week's Monday ("2024-03-04"), a
	// month ("2024-03"), or a fiscal-year label ("FY25").
	PeriodKey string `json:"period_key" validate:"required"`
	// Label is the display form of the period, e.g. "Mar 2024".
	Label string `json:"label"`
	Value float64 `json:"value"`

	PriorPeriodValue *float64 `json:"prior_period_value,omitempty"`
	PriorYearValue   *float64 `json:"prior_year_value,omitempty"`
	// ComparablePriorPeriodValue is the prior period's aggregate restricted
	// to the same elapsed sub-range as this (possibly incomplete) period.
	ComparablePriorPeriodValue *float64 `json:"comparable_prior_period_value,omitempty"`
	// ComparablePriorYearValue is the same restriction applied to the period
	// one year back.
	ComparablePriorYearValue *float64 `json:"comparable_prior_year_value,omitempty"`

	// PeriodGrowthPct is period-over-period growth (MoM, WoW, or FY-over-FY).
	PeriodGrowthPct *float64 `json:"period_growth_pct,omitempty"`
	// YearGrowthPct is year-over-year growth against the matching period.
	YearGrowthPct *float64 `json:"year_growth_pct,omitempty"`
}

// RollingPoint is a trailing-window value anchored at one day. WindowValue is
// nil only under average semantics with zero populated days in the window;
// sum semantics yield an explicit zero instead, which keeps chart lines
// continuous.
type RollingPoint struct {
	AnchorDate           calendar.DayKey `json:"anchor_date" validate:"required"`
	WindowValue          *float64        `json:"window_value,omitempty"`
	PriorYearWindowValue *float64        `json:"prior_year_window_value,omitempty"`
}

// ControlBand is the mean +/- k*sigma overlay for a chart, derived from a
// finite observation set. A band is only produced from two or more
// observations.
type ControlBand struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Plus1  float64 `json:"plus1"`
	Plus2  float64 `json:"plus2"`
	Minus1 float64 `json:"minus1"`
	Minus2 float64 `json:"minus2"`
}

// AlignedCell is one series' contribution to an aligned row. DisplayDate is
// the row's date as shown to the user; QueryDate is the date actually looked
// up, which differs when the series carries a reporting lag. Both are part of
// the contract so a renderer can surface the lag.
type AlignedCell struct {
	Series      string          `json:"series"`
	DisplayDate calendar.DayKey `json:"display_date"`
	QueryDate   calendar.DayKey `json:"query_date"`
	Value       *float64        `json:"value,omitempty"`
}

// AlignedRow is one calendar day of a multi-series alignment window.
type AlignedRow struct {
	Date  calendar.DayKey `json:"date"`
	Cells []AlignedCell   `json:"cells"`
}
