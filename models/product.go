package models

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Product is master data; nutrient fields are declared per `Per` grams/ml
// of the product (nil Per means "whole item").
type Product struct {
	gorm.Model
	Barcode            string `gorm:"uniqueIndex;not null"`
	ProductName        string `gorm:"not null;index"`
	Brand              string `gorm:"index"`
	Cluster            string
	ChildCluster       string
	MainDataStatus     int
	ProductDescription string
	Picture            string
	StateOfMatter      *int // 0 = solid (g), 1 = liquid (ml)

	Per             *float64
	Calorie         *float64
	Fat             *float64
	Sugar           *float64
	Salt            *float64
	TransFattyAcids *float64

	// Free-text in the upstream master data ("12.5", "12,5 g", …).
	// Parsed on read; garbage contributes zero rather than failing a request.
	Protein      string
	Carbohydrate string
}

func (p *Product) ProteinValue() float64 {
	return parseLooseDecimal(p.Protein)
}

func (p *Product) CarbohydrateValue() float64 {
	return parseLooseDecimal(p.Carbohydrate)
}

func parseLooseDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	// strip a trailing unit like "g" or "gr"
	s = strings.TrimRight(s, "grml ")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
