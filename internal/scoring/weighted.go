// Package scoring computes per-judge weighted scores from raw criterion scores.
package scoring

import (
	"maps"
	"slices"
	"strconv"

	"github.com/judgeboard/judgeboard/internal/models"
)

// WeightedScore combines raw criterion scores into a single score using the
// percentage weights in weights.
//
// Only criteria present in both maps contribute raw*weight/100. A criterion
// the judge did not score adds nothing, and a scored criterion without a
// weight is ignored. Raw values are not range-checked.
func WeightedScore(raw models.CriterionScores, weights models.CriterionWeights) float64 {
	total := 0.0
	// Fixed summation order keeps results bit-identical between runs.
	for _, criterion := range slices.Sorted(maps.Keys(weights)) {
		score, ok := raw[criterion]
		if !ok {
			continue
		}
		total += score * float64(weights[criterion]) / 100
	}
	return total
}

// Round2 rounds x to two decimal places. The exact binary value of x is
// rounded, with ties going to the even digit, so 80.125 becomes 80.12.
func Round2(x float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	return r
}
