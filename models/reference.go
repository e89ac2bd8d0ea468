package models

import "gorm.io/gorm"

// Reference tables backing the signup forms.

type Illness struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;not null"`
	PersianName string
	Levels      []IllnessLevel
}

type IllnessLevel struct {
	gorm.Model
	IllnessID   uint `gorm:"index;not null"`
	Name        string
	PersianName string
}

type Allergy struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;not null"`
	PersianName string
}

type FoodPreference struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;not null"`
	PersianName string
}

type UserIllness struct {
	gorm.Model
	UserID    uint `gorm:"index;not null"`
	IllnessID uint `gorm:"index;not null"`
	Illness   Illness
	Level     string `gorm:"size:32;default:'MEDIUM'"`
}

type UserAllergy struct {
	gorm.Model
	UserID    uint `gorm:"index;not null"`
	AllergyID uint `gorm:"index;not null"`
	Allergy   Allergy
}

type UserFoodPreference struct {
	gorm.Model
	UserID           uint `gorm:"index;not null"`
	FoodPreferenceID uint `gorm:"index;not null"`
	FoodPreference   FoodPreference
}
