package models

import (
	"fmt"
	"strings"
)

// Macros holds calories (kcal) and protein, carbs and fat (grams)
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Add returns the element-wise sum of m and o
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Carbs:    m.Carbs + o.Carbs,
		Fat:      m.Fat + o.Fat,
	}
}

func (m Macros) validate() error {
	if m.Calories < 0 || m.Protein < 0 || m.Carbs < 0 || m.Fat < 0 {
		return fmt.Errorf("macros must be non-negative")
	}
	return nil
}

// RecipeIngredient is the quantity of one ingredient needed for a full batch
type RecipeIngredient struct {
	IngredientID string  `json:"ingredient_id"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"`
}

// Recipe macros are per serving; ingredient amounts are per batch of Servings servings.
type Recipe struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	PrepTimeMin  int    `json:"prep_time,omitempty"`
	CookTimeMin  int    `json:"cook_time,omitempty"`
	Servings     int    `json:"servings"`
	Macros
	Ingredients []RecipeIngredient `json:"ingredients"`
	CreatedAt   string             `json:"created_at,omitempty"` // RFC3339 timestamp
	DeletedAt   *string            `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

func (r Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("recipe name cannot be empty")
	}
	if err := r.Macros.validate(); err != nil {
		return fmt.Errorf("recipe %q: %w", r.Name, err)
	}
	if r.Servings < 1 {
		return fmt.Errorf("recipe %q: servings must be at least 1", r.Name)
	}
	if r.PrepTimeMin < 0 || r.CookTimeMin < 0 {
		return fmt.Errorf("recipe %q: prep and cook time cannot be negative", r.Name)
	}

	seen := make(map[string]bool, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if ing.IngredientID == "" {
			return fmt.Errorf("recipe %q: ingredient id cannot be empty", r.Name)
		}
		if seen[ing.IngredientID] {
			return fmt.Errorf("recipe %q: ingredient %s listed more than once", r.Name, ing.IngredientID)
		}
		seen[ing.IngredientID] = true
		if ing.Amount <= 0 {
			return fmt.Errorf("recipe %q: ingredient %s amount must be positive", r.Name, ing.IngredientID)
		}
		if strings.TrimSpace(ing.Unit) == "" {
			return fmt.Errorf("recipe %q: ingredient %s unit cannot be empty", r.Name, ing.IngredientID)
		}
	}
	return nil
}

// TotalTimeMin returns prep plus cook time
func (r Recipe) TotalTimeMin() int {
	return r.PrepTimeMin + r.CookTimeMin
}
