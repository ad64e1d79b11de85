package exporter

import (
	"math"
	"strconv"

	"github.com/namitajha/Diabetes-data-Namita/internal/dataprocessing"
)

// formatPercent formats a percentage with one decimal place, halves to even
func formatPercent(p float64) string {
	return strconv.FormatFloat(dataprocessing.RoundPercent(p), 'f', 1, 64)
}

// formatFloat formats a float64 value with exactly 2 decimal places.
// NaN is written as an empty cell.
func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}
