package aggregate

// CombinationMode fixes how daily values combine into a period value. A
// dashboard configures the mode once per metric; it is never mixed within
// one aggregation run.
type CombinationMode string

const (
	// ModeSum adds the constituent daily values (energy, traded volume).
	ModeSum CombinationMode = "sum"
	// ModeAverage takes the arithmetic mean (prices, plant load factor).
	ModeAverage CombinationMode = "average"
)

// IsValid reports whether the mode is one of the two supported values.
func (m CombinationMode) IsValid() bool {
	return m == ModeSum || m == ModeAverage
}

// combine folds a sum and a populated-day count into a period value under
// the mode. ok is false when no days were populated and the mode is average;
// a summed period with no days is an explicit zero, which keeps chart lines
// continuous, while an averaged one is undefined.
func (m CombinationMode) combine(sum float64, count int) (float64, bool) {
	if count == 0 {
		if m == ModeSum {
			return 0, true
		}
		return 0, false
	}
	if m == ModeAverage {
		return sum / float64(count), true
	}
	return sum, true
}
