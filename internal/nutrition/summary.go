package nutrition

import (
	"errors"
	"fmt"

	"github.com/julianstephens/mealplan/internal/constants"
	"github.com/julianstephens/mealplan/internal/models"
)

var (
	ErrUnknownRecipe = errors.New("unknown recipe")
	ErrInvalidDay    = errors.New("day out of range")
)

// Summarize resolves each assignment to its recipe and totals per-serving macros by
// day and across the week. Days 1..7 are always present, even when empty.
func Summarize(assignments []models.SlotAssignment, recipes []models.Recipe) (models.PlanSummary, error) {
	byID := make(map[string]*models.Recipe, len(recipes))
	for i := range recipes {
		byID[recipes[i].ID] = &recipes[i]
	}

	var summary models.PlanSummary
	for i := range summary.Days {
		day := i + 1
		summary.Days[i] = models.DaySummary{Day: day, DayName: models.DayName(day)}
	}

	for _, a := range assignments {
		if a.Day < 1 || a.Day > constants.DaysPerWeek {
			return models.PlanSummary{}, fmt.Errorf("%w: %d", ErrInvalidDay, a.Day)
		}
		r, ok := byID[a.RecipeID]
		if !ok {
			return models.PlanSummary{}, fmt.Errorf("%w: %s (day %d %s)", ErrUnknownRecipe, a.RecipeID, a.Day, a.MealType)
		}

		ds := &summary.Days[a.Day-1]
		ds.SetMeal(a.MealType, r)
		ds.Totals = ds.Totals.Add(r.Macros)
	}

	for _, ds := range summary.Days {
		summary.Totals = summary.Totals.Add(ds.Totals)
	}

	return summary, nil
}
