package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Phone     string `gorm:"uniqueIndex;not null"`
	Email     string `gorm:"index"`
	Password  string
	Name      string
	Gender    string
	BirthDate *time.Time

	Height      *float64
	Weight      *float64
	IdealWeight *float64

	ActivityLevel string
	AppetiteMode  string
	WaterIntake   *float64

	SignupComplete bool `gorm:"default:false"`

	// Per-user overrides for the daily intake targets. Nil falls back to
	// the fixed defaults in services.ResolveRecommendedIntake.
	RecommendedDailyCalories        *float64
	RecommendedDailyFat             *float64
	RecommendedDailySugar           *float64
	RecommendedDailySalt            *float64
	RecommendedDailyTransFattyAcids *float64

	Illnesses       []UserIllness
	Allergies       []UserAllergy
	FoodPreferences []UserFoodPreference
}
