package utils

import (
	"math"
	"testing"
)

func TestNormalizeServingKnownConversions(t *testing.T) {
	tests := []struct {
		value float64
		unit  string
		want  float64
	}{
		{2, "tbsp", 30},
		{2, "tablespoon", 30},
		{3, "tsp", 15},
		{3, "teaspoon", 15},
		{1, "cup", 240},
		{1, "oz", 28.35},
		{2, "ounce", 56.7},
	}
	for _, tt := range tests {
		got := NormalizeServing(tt.value, tt.unit)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeServing(%v, %q) = %v, want %v", tt.value, tt.unit, got, tt.want)
		}
	}
}

func TestNormalizeServingCanonicalPassthrough(t *testing.T) {
	for _, unit := range []string{"", "g", "gram", "ml", "milliliter"} {
		if got := NormalizeServing(123.45, unit); got != 123.45 {
			t.Errorf("NormalizeServing(123.45, %q) = %v, want unchanged", unit, got)
		}
	}
}

func TestNormalizeServingCaseInsensitive(t *testing.T) {
	if got := NormalizeServing(2, "TBSP"); got != 30 {
		t.Errorf("NormalizeServing(2, TBSP) = %v, want 30", got)
	}
	if got := NormalizeServing(1, " Cup "); got != 240 {
		t.Errorf("NormalizeServing(1, ' Cup ') = %v, want 240", got)
	}
}

func TestNormalizeServingUnknownUnitPassthrough(t *testing.T) {
	// unknown labels are treated as already canonical, not rejected
	if got := NormalizeServing(50, "slice"); got != 50 {
		t.Errorf("NormalizeServing(50, slice) = %v, want 50", got)
	}
}
