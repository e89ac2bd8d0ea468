package models

import (
	"time"

	"gorm.io/gorm"
)

// Meal type values stored on ConsumedProduct.
const (
	MealBreakfast = "BREAKFAST"
	MealLunch     = "LUNCH"
	MealDinner    = "DINNER"
	MealSnack     = "SNACK"
)

// ConsumedProduct is one record of a user eating a quantity of a product.
type ConsumedProduct struct {
	gorm.Model
	UserID    uint `gorm:"index;not null"`
	ProductID uint `gorm:"index;not null"`
	Product   Product

	// Quantity counts servings (or whole items when the product has no
	// reference serving). Must be > 0.
	Quantity float64 `gorm:"not null"`

	// ServingSize is the actual amount consumed, already normalized to
	// grams/ml at creation time. Nil means "one reference serving".
	ServingSize *float64

	// Unit is the label the client sent, kept for display only.
	Unit string `gorm:"size:32"`

	MealType   string    `gorm:"size:16;index;not null"`
	ConsumedAt time.Time `gorm:"index;not null"`
}

func ValidMealType(t string) bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}
