package utils

import "strings"

// Serving sizes are stored in grams (solids) or milliliters (liquids).
// Factors convert one unit of the label into that canonical amount.
var servingUnitFactors = map[string]float64{
	"g":          1,
	"gram":       1,
	"ml":         1,
	"milliliter": 1,
	"tablespoon": 15,
	"tbsp":       15,
	"teaspoon":   5,
	"tsp":        5,
	"cup":        240,
	"oz":         28.35,
	"ounce":      28.35,
}

// NormalizeServing converts a serving size to grams/ml. Labels we do not
// know are passed through unchanged: the master data uses free-text units
// and a hard failure here would block logging a meal. Called once at entry
// creation; stored serving sizes are never re-normalized.
func NormalizeServing(value float64, unit string) float64 {
	if unit == "" {
		return value
	}
	if factor, ok := servingUnitFactors[strings.ToLower(strings.TrimSpace(unit))]; ok {
		return value * factor
	}
	return value
}
