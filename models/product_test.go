package models

import (
	"math"
	"testing"
)

func TestParseLooseDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12.5", 12.5},
		{"12,5", 12.5},
		{" 8 ", 8},
		{"15 g", 15},
		{"15gr", 15},
		{"30 ml", 30},
		{"", 0},
		{"n/a", 0},
		{"-", 0},
	}
	for _, tt := range tests {
		p := Product{Protein: tt.in, Carbohydrate: tt.in}
		if got := p.ProteinValue(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ProteinValue(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got := p.CarbohydrateValue(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("CarbohydrateValue(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidMealType(t *testing.T) {
	for _, mt := range []string{MealBreakfast, MealLunch, MealDinner, MealSnack} {
		if !ValidMealType(mt) {
			t.Errorf("ValidMealType(%q) = false, want true", mt)
		}
	}
	for _, mt := range []string{"", "breakfast", "BRUNCH"} {
		if ValidMealType(mt) {
			t.Errorf("ValidMealType(%q) = true, want false", mt)
		}
	}
}
