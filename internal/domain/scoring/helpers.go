package scoring

import (
	"math"
	"strconv"
)

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// clampScore bounds a score to [0, 100]. NaN collapses to 0.
func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(0, min(100, v))
}

// finiteOr returns def when v is NaN.
func finiteOr(v, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return v
}

// formatScore renders a score with at least one decimal place: 89 -> "89.0",
// 45.25 -> "45.25".
func formatScore(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
