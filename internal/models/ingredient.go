package models

import (
	"fmt"
	"strings"
)

// Ingredient macro densities are per 100g
type Ingredient struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatPer100g      float64 `json:"fat_per_100g"`
}

func (i Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("ingredient name cannot be empty")
	}
	if i.CaloriesPer100g < 0 || i.ProteinPer100g < 0 || i.CarbsPer100g < 0 || i.FatPer100g < 0 {
		return fmt.Errorf("ingredient %q: nutrient densities must be non-negative", i.Name)
	}
	return nil
}
