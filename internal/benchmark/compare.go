package benchmark

import "fmt"

// Comparison is the change of one averaged metric against a previous run.
type Comparison struct {
	Metric string
	Prev   float64
	Curr   float64
	// DiffPercent is the relative change; zero when Prev is zero.
	DiffPercent float64
}

// Compare matches metrics by label and returns the change for every label
// present in both runs, in current label order.
func Compare(prevLabels []string, prev []float64, currLabels []string, curr []float64) []Comparison {
	prevMap := make(map[string]float64, len(prevLabels))
	for i, l := range prevLabels {
		if i < len(prev) {
			prevMap[l] = prev[i]
		}
	}

	var comparisons []Comparison
	for i, l := range currLabels {
		if i >= len(curr) {
			break
		}
		p, ok := prevMap[l]
		if !ok {
			continue
		}
		comp := Comparison{Metric: l, Prev: p, Curr: curr[i]}
		if p != 0 {
			comp.DiffPercent = (curr[i] - p) / p * 100
		}
		comparisons = append(comparisons, comp)
	}
	return comparisons
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s: %.4f -> %.4f (%+.2f%%)", c.Metric, c.Prev, c.Curr, c.DiffPercent)
}
