package models

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mealplan/internal/constants"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealTypes lists meal types in emission order
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// ParseMealType parses a meal type name, ignoring case and surrounding space
func ParseMealType(s string) (MealType, error) {
	mt := MealType(strings.ToLower(strings.TrimSpace(s)))
	switch mt {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return mt, nil
	}
	return "", fmt.Errorf("invalid meal type: %s (use breakfast, lunch, dinner, or snack)", s)
}

type PlanConstraints struct {
	DailyCalories    float64 `json:"daily_calories"`
	DailyProtein     float64 `json:"daily_protein"`
	MinCarbs         float64 `json:"min_carbs"`
	MaxCarbs         float64 `json:"max_carbs"`
	MinFat           float64 `json:"min_fat"`
	MaxFat           float64 `json:"max_fat"`
	NumPeople        int     `json:"num_people"`
	ErrorMargin      float64 `json:"error_margin"`
	MaxRepeatingDays int     `json:"max_repeating_days"`
	AllowCheatMeal   bool    `json:"allow_cheat_meal"`
}

// Validate reports the first constraint outside its supported range
func (c PlanConstraints) Validate() error {
	if c.DailyCalories <= 0 {
		return fmt.Errorf("daily_calories must be positive")
	}
	if c.DailyProtein <= 0 {
		return fmt.Errorf("daily_protein must be positive")
	}
	if c.MinCarbs < 0 || c.MaxCarbs < 0 {
		return fmt.Errorf("carb limits cannot be negative")
	}
	if c.MinCarbs > c.MaxCarbs {
		return fmt.Errorf("min_carbs (%g) must not exceed max_carbs (%g)", c.MinCarbs, c.MaxCarbs)
	}
	if c.MinFat < 0 || c.MaxFat < 0 {
		return fmt.Errorf("fat limits cannot be negative")
	}
	if c.MinFat > c.MaxFat {
		return fmt.Errorf("min_fat (%g) must not exceed max_fat (%g)", c.MinFat, c.MaxFat)
	}
	if c.NumPeople < 1 {
		return fmt.Errorf("num_people must be at least 1")
	}
	if c.ErrorMargin < 0 || c.ErrorMargin > 0.5 {
		return fmt.Errorf("error_margin must be between 0 and 0.5")
	}
	if c.MaxRepeatingDays < 1 || c.MaxRepeatingDays > 3 {
		return fmt.Errorf("max_repeating_days must be between 1 and 3")
	}
	return nil
}

// SlotAssignment places one recipe in one (day, meal type) slot.
// Cheat marks the day 7 lunch override.
type SlotAssignment struct {
	Day      int      `json:"day"`
	MealType MealType `json:"meal_type"`
	RecipeID string   `json:"recipe_id"`
	Cheat    bool     `json:"cheat,omitempty"`
}

type MealPlan struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Constraints PlanConstraints  `json:"constraints"`
	Seed        *uint64          `json:"seed,omitempty"`
	Assignments []SlotAssignment `json:"assignments"`
	CreatedAt   string           `json:"created_at"`           // RFC3339 timestamp
	DeletedAt   *string          `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// RecipeIDs returns the distinct recipe ids used by the plan in first-use order
func (p MealPlan) RecipeIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, a := range p.Assignments {
		if !seen[a.RecipeID] {
			seen[a.RecipeID] = true
			ids = append(ids, a.RecipeID)
		}
	}
	return ids
}

type DaySummary struct {
	Day       int     `json:"day"`
	DayName   string  `json:"day_name"`
	Breakfast *Recipe `json:"breakfast"`
	Lunch     *Recipe `json:"lunch"`
	Dinner    *Recipe `json:"dinner"`
	Snack     *Recipe `json:"snack"`
	Totals    Macros  `json:"totals"`
}

// Meal returns the recipe assigned to the given meal type, or nil
func (d DaySummary) Meal(mt MealType) *Recipe {
	switch mt {
	case MealBreakfast:
		return d.Breakfast
	case MealLunch:
		return d.Lunch
	case MealDinner:
		return d.Dinner
	case MealSnack:
		return d.Snack
	}
	return nil
}

// SetMeal stores r in the slot for mt
func (d *DaySummary) SetMeal(mt MealType, r *Recipe) {
	switch mt {
	case MealBreakfast:
		d.Breakfast = r
	case MealLunch:
		d.Lunch = r
	case MealDinner:
		d.Dinner = r
	case MealSnack:
		d.Snack = r
	}
}

type PlanSummary struct {
	Days   [constants.DaysPerWeek]DaySummary `json:"days"`
	Totals Macros                            `json:"totals"`
}

type GroceryItem struct {
	IngredientID   string  `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	TotalAmount    float64 `json:"total_amount"`
	Unit           string  `json:"unit"`
}

// DayName returns the weekday name for day 1..7
func DayName(day int) string {
	if day < 1 || day > constants.DaysPerWeek {
		return fmt.Sprintf("Day %d", day)
	}
	return constants.DayNames[day]
}

// ConstraintOverrides holds caller-supplied constraint fields; nil fields keep the base value
type ConstraintOverrides struct {
	DailyCalories    *float64
	DailyProtein     *float64
	MinCarbs         *float64
	MaxCarbs         *float64
	MinFat           *float64
	MaxFat           *float64
	NumPeople        *int
	ErrorMargin      *float64
	MaxRepeatingDays *int
	AllowCheatMeal   *bool
}

// Apply returns base with the overrides set. A new calorie target also resets the
// carb and fat ceilings unless those are overridden too.
func (o ConstraintOverrides) Apply(base PlanConstraints) PlanConstraints {
	c := base
	if o.DailyCalories != nil {
		c.DailyCalories = *o.DailyCalories
		c.MaxCarbs = c.DailyCalories / 4
		c.MaxFat = c.DailyCalories / 9
	}
	setFloat := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	setFloat(&c.DailyProtein, o.DailyProtein)
	setFloat(&c.MinCarbs, o.MinCarbs)
	setFloat(&c.MaxCarbs, o.MaxCarbs)
	setFloat(&c.MinFat, o.MinFat)
	setFloat(&c.MaxFat, o.MaxFat)
	setFloat(&c.ErrorMargin, o.ErrorMargin)
	if o.NumPeople != nil {
		c.NumPeople = *o.NumPeople
	}
	if o.MaxRepeatingDays != nil {
		c.MaxRepeatingDays = *o.MaxRepeatingDays
	}
	if o.AllowCheatMeal != nil {
		c.AllowCheatMeal = *o.AllowCheatMeal
	}
	return c
}
