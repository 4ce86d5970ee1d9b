package planner

import (
	"math/rand/v2"

	"github.com/julianstephens/mealplan/internal/constants"
	"github.com/julianstephens/mealplan/internal/models"
)

// Assigner owns the used-recipe sets for a single generation run. It must not be
// shared between runs.
type Assigner struct {
	pools Pools
	used  map[models.MealType]map[string]bool
	rng   *rand.Rand
}

func NewAssigner(pools Pools, rng *rand.Rand) *Assigner {
	used := make(map[models.MealType]map[string]bool, len(models.MealTypes))
	for _, mt := range models.MealTypes {
		used[mt] = make(map[string]bool)
	}
	return &Assigner{
		pools: pools,
		used:  used,
		rng:   rng,
	}
}

// Pick chooses an unused recipe from the meal type's pool and marks it used
func (a *Assigner) Pick(mt models.MealType) (models.Recipe, error) {
	pool := a.pools[mt]
	used := a.used[mt]

	var available []models.Recipe
	for _, r := range pool {
		if !used[r.ID] {
			available = append(available, r)
		}
	}
	if len(available) == 0 {
		return models.Recipe{}, &InsufficientRecipesError{
			MealType: mt,
			PoolSize: len(pool),
			Used:     len(used),
		}
	}

	pick := available[a.rng.IntN(len(available))]
	used[pick.ID] = true
	return pick, nil
}

// Assign emits one assignment per (day, meal type) in group, day, meal-type order.
// When cheat is non-nil it replaces lunch on day 7 only.
func (a *Assigner) Assign(groups [][]int, cheat *models.Recipe) ([]models.SlotAssignment, error) {
	assignments := make([]models.SlotAssignment, 0, constants.DaysPerWeek*len(models.MealTypes))

	for _, group := range groups {
		picks := make(map[models.MealType]models.Recipe, len(models.MealTypes))
		for _, mt := range models.MealTypes {
			r, err := a.Pick(mt)
			if err != nil {
				return nil, err
			}
			picks[mt] = r
		}

		for _, day := range group {
			for _, mt := range models.MealTypes {
				slot := models.SlotAssignment{
					Day:      day,
					MealType: mt,
					RecipeID: picks[mt].ID,
				}
				if cheat != nil && day == constants.CheatMealDay && mt == models.MealLunch {
					slot.RecipeID = cheat.ID
					slot.Cheat = true
				}
				assignments = append(assignments, slot)
			}
		}
	}

	return assignments, nil
}
