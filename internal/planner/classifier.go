package planner

import (
	"math/rand/v2"

	"github.com/julianstephens/mealplan/internal/constants"
	"github.com/julianstephens/mealplan/internal/models"
)

// Pools holds the candidate recipes for each meal type. A recipe may sit in several pools.
type Pools map[models.MealType][]models.Recipe

// InBand reports whether a recipe's per-serving calories fit the meal type's band
func InBand(mt models.MealType, calories, dailyCalories float64) bool {
	switch mt {
	case models.MealBreakfast:
		return calories < dailyCalories*constants.BreakfastMaxFraction
	case models.MealLunch:
		return calories >= dailyCalories*constants.LunchMinFraction && calories <= dailyCalories*constants.LunchMaxFraction
	case models.MealDinner:
		return calories >= dailyCalories*constants.DinnerMinFraction && calories <= dailyCalories*constants.DinnerMaxFraction
	case models.MealSnack:
		return calories < dailyCalories*constants.SnackMaxFraction
	}
	return false
}

// Classify buckets the catalog by calorie band and backfills any pool holding fewer
// than seven recipes with random catalog recipes not already in it.
func Classify(catalog []models.Recipe, dailyCalories float64, rng *rand.Rand) (Pools, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}

	pools := make(Pools, len(models.MealTypes))
	for _, mt := range models.MealTypes {
		inPool := make(map[string]bool)
		var pool []models.Recipe
		for _, r := range catalog {
			if inPool[r.ID] || !InBand(mt, r.Calories, dailyCalories) {
				continue
			}
			inPool[r.ID] = true
			pool = append(pool, r)
		}

		if len(pool) < constants.MinPoolSize {
			pool = backfill(pool, inPool, catalog, rng)
		}
		pools[mt] = pool
	}

	return pools, nil
}

func backfill(pool []models.Recipe, inPool map[string]bool, catalog []models.Recipe, rng *rand.Rand) []models.Recipe {
	var candidates []models.Recipe
	for _, r := range catalog {
		if inPool[r.ID] {
			continue
		}
		// guards against duplicate ids in the catalog itself
		inPool[r.ID] = true
		candidates = append(candidates, r)
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	need := constants.MinPoolSize - len(pool)
	if need > len(candidates) {
		need = len(candidates)
	}
	return append(pool, candidates[:need]...)
}
