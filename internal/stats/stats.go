// Package stats implements the growth and statistical overlay calculations
// shared by every dashboard view: growth percentages against a prior-period
// baseline, mean +/- sigma control bands, and Pearson correlation between two
// aligned series.
//
// Every function degrades to an explicit "undefined" result instead of
// returning NaN, Inf, or a misleading zero: growth against a zero or missing
// baseline is undefined, and statistics over fewer than two observations are
// undefined. Callers render undefined as an absent value.
package stats

import (
	"math"

	"gridcli/pkg/contracts/domain"
)

// VarianceMode selects the variance convention used for control bands. The
// dashboards this engine replaces disagreed between the two; the convention
// is now an explicit parameter and the project default is sample variance.
type VarianceMode string

const (
	// VariancePopulation divides squared deviations by n.
	VariancePopulation VarianceMode = "population"
	// VarianceSample divides squared deviations by n-1.
	VarianceSample VarianceMode = "sample"
)

// DefaultVarianceMode is the project-wide convention.
const DefaultVarianceMode = VarianceSample

// GrowthPct returns (current-previous)/previous*100. The second return is
// false when previous is zero: growth is never computed against a zero
// baseline.
func GrowthPct(current, previous float64) (float64, bool) {
	if previous == 0 {
		return 0, false
	}
	return (current - previous) / previous * 100, true
}

// GrowthPctPtr is GrowthPct over a nullable baseline: a nil or zero previous
// yields nil.
func GrowthPctPtr(current float64, previous *float64) *float64 {
	if previous == nil {
		return nil
	}
	pct, ok := GrowthPct(current, *previous)
	if !ok {
		return nil
	}
	return &pct
}

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// ControlBand derives the mean +/- 1 and 2 sigma overlay from a set of
// observations. It requires at least two observations; otherwise the second
// return is false and no band is rendered.
func ControlBand(observations []float64, mode VarianceMode) (domain.ControlBand, bool) {
	if len(observations) < 2 {
		return domain.ControlBand{}, false
	}

	mean := Mean(observations)
	var sumSq float64
	for _, x := range observations {
		d := x - mean
		sumSq += d * d
	}

	denom := float64(len(observations))
	if mode != VariancePopulation {
		denom = float64(len(observations) - 1)
	}
	sd := math.Sqrt(sumSq / denom)

	return domain.ControlBand{
		Mean:   mean,
		StdDev: sd,
		Plus1:  mean + sd,
		Plus2:  mean + 2*sd,
		Minus1: mean - sd,
		Minus2: mean - 2*sd,
	}, true
}

// PearsonCorrelation computes the product-moment correlation over paired
// observations. Pairs with a non-finite member are dropped. It requires at
// least two surviving pairs and non-zero variance on both sides; the result
// is clamped to [-1, 1] to absorb floating-point overshoot.
func PearsonCorrelation(x, y []float64) (float64, bool) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}

	var xs, ys []float64
	for i := 0; i < n; i++ {
		if !isFinite(x[i]) || !isFinite(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return 0, false
	}

	meanX := Mean(xs)
	meanY := Mean(ys)

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0, false
	}

	r := cov / math.Sqrt(varX*varY)
	if r > 1 {
		r = 1
	}
	if r < -1 {
		r = -1
	}
	return r, true
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
