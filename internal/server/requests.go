package server

import (
	"github.com/julianstephens/mealplan/internal/models"
)

type ingredientRequest struct {
	Name            string  `json:"name" validate:"required,max=200"`
	CaloriesPer100g float64 `json:"calories_per_100g" validate:"gte=0"`
	ProteinPer100g  float64 `json:"protein_per_100g" validate:"gte=0"`
	CarbsPer100g    float64 `json:"carbs_per_100g" validate:"gte=0"`
	FatPer100g      float64 `json:"fat_per_100g" validate:"gte=0"`
}

func (req ingredientRequest) model() models.Ingredient {
	return models.Ingredient{
		Name:            req.Name,
		CaloriesPer100g: req.CaloriesPer100g,
		ProteinPer100g:  req.ProteinPer100g,
		CarbsPer100g:    req.CarbsPer100g,
		FatPer100g:      req.FatPer100g,
	}
}

type recipeLineRequest struct {
	IngredientID string  `json:"ingredient_id" validate:"required"`
	Amount       float64 `json:"amount" validate:"gt=0"`
	Unit         string  `json:"unit" validate:"required,max=20"`
}

type recipeRequest struct {
	Name         string              `json:"name" validate:"required,max=200"`
	Description  string              `json:"description" validate:"max=2000"`
	Instructions string              `json:"instructions" validate:"max=10000"`
	PrepTimeMin  int                 `json:"prep_time" validate:"gte=0"`
	CookTimeMin  int                 `json:"cook_time" validate:"gte=0"`
	Servings     int                 `json:"servings" validate:"gte=1"`
	Calories     float64             `json:"calories" validate:"gte=0"`
	Protein      float64             `json:"protein" validate:"gte=0"`
	Carbs        float64             `json:"carbs" validate:"gte=0"`
	Fat          float64             `json:"fat" validate:"gte=0"`
	Ingredients  []recipeLineRequest `json:"ingredients" validate:"dive"`
}

func (req recipeRequest) model() models.Recipe {
	r := models.Recipe{
		Name:         req.Name,
		Description:  req.Description,
		Instructions: req.Instructions,
		PrepTimeMin:  req.PrepTimeMin,
		CookTimeMin:  req.CookTimeMin,
		Servings:     req.Servings,
		Macros:       models.Macros{Calories: req.Calories, Protein: req.Protein, Carbs: req.Carbs, Fat: req.Fat},
	}
	for _, line := range req.Ingredients {
		r.Ingredients = append(r.Ingredients, models.RecipeIngredient{
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
			Unit:         line.Unit,
		})
	}
	return r
}

// planRequest fields left out fall back to the stored settings
type planRequest struct {
	Name             string   `json:"name" validate:"required,max=200"`
	DailyCalories    *float64 `json:"daily_calories" validate:"omitempty,gt=0"`
	DailyProtein     *float64 `json:"daily_protein" validate:"omitempty,gt=0"`
	MinCarbs         *float64 `json:"min_carbs" validate:"omitempty,gte=0"`
	MaxCarbs         *float64 `json:"max_carbs" validate:"omitempty,gte=0"`
	MinFat           *float64 `json:"min_fat" validate:"omitempty,gte=0"`
	MaxFat           *float64 `json:"max_fat" validate:"omitempty,gte=0"`
	NumPeople        *int     `json:"num_people" validate:"omitempty,gte=1,lte=100"`
	ErrorMargin      *float64 `json:"error_margin" validate:"omitempty,gte=0,lte=0.5"`
	MaxRepeatingDays *int     `json:"max_repeating_days" validate:"omitempty,gte=1,lte=3"`
	AllowCheatMeal   *bool    `json:"allow_cheat_meal"`
}

func (req planRequest) overrides() models.ConstraintOverrides {
	return models.ConstraintOverrides{
		DailyCalories:    req.DailyCalories,
		DailyProtein:     req.DailyProtein,
		MinCarbs:         req.MinCarbs,
		MaxCarbs:         req.MaxCarbs,
		MinFat:           req.MinFat,
		MaxFat:           req.MaxFat,
		NumPeople:        req.NumPeople,
		ErrorMargin:      req.ErrorMargin,
		MaxRepeatingDays: req.MaxRepeatingDays,
		AllowCheatMeal:   req.AllowCheatMeal,
	}
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
