package planner

import (
	"math/rand/v2"

	"github.com/julianstephens/mealplan/internal/constants"
	"github.com/julianstephens/mealplan/internal/models"
)

// SelectCheatMeal picks a recipe above 40% of the daily calories, or any recipe
// when none qualify. Returns nil for an empty catalog.
func SelectCheatMeal(catalog []models.Recipe, dailyCalories float64, rng *rand.Rand) *models.Recipe {
	if len(catalog) == 0 {
		return nil
	}

	var candidates []models.Recipe
	for _, r := range catalog {
		if r.Calories > dailyCalories*constants.CheatMinFraction {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		candidates = catalog
	}

	pick := candidates[rng.IntN(len(candidates))]
	return &pick
}
