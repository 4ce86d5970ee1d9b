package grocery

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/mealplan/internal/models"
)

var (
	ErrUnknownRecipe     = errors.New("unknown recipe")
	ErrUnknownIngredient = errors.New("unknown ingredient")
)

type itemKey struct {
	ingredientID string
	unit         string
}

// BuildList totals every ingredient needed to cook the plan for numPeople. Amounts are
// scaled from the recipe's batch size and summed per (ingredient, unit); units are never
// converted. The result is sorted by ingredient name then unit.
func BuildList(assignments []models.SlotAssignment, recipes []models.Recipe, ingredients []models.Ingredient, numPeople int) ([]models.GroceryItem, error) {
	recipeByID := make(map[string]*models.Recipe, len(recipes))
	for i := range recipes {
		recipeByID[recipes[i].ID] = &recipes[i]
	}
	nameByID := make(map[string]string, len(ingredients))
	for _, ing := range ingredients {
		nameByID[ing.ID] = ing.Name
	}

	totals := make(map[itemKey]*models.GroceryItem)
	for _, a := range assignments {
		r, ok := recipeByID[a.RecipeID]
		if !ok {
			return nil, fmt.Errorf("%w: %s (day %d %s)", ErrUnknownRecipe, a.RecipeID, a.Day, a.MealType)
		}

		servings := float64(r.Servings)
		if r.Servings <= 0 {
			servings = 1
		}

		for _, line := range r.Ingredients {
			name, ok := nameByID[line.IngredientID]
			if !ok {
				return nil, fmt.Errorf("%w: %s in recipe %q", ErrUnknownIngredient, line.IngredientID, r.Name)
			}

			key := itemKey{ingredientID: line.IngredientID, unit: line.Unit}
			item, ok := totals[key]
			if !ok {
				item = &models.GroceryItem{
					IngredientID:   line.IngredientID,
					IngredientName: name,
					Unit:           line.Unit,
				}
				totals[key] = item
			}
			item.TotalAmount += line.Amount * float64(numPeople) / servings
		}
	}

	items := make([]models.GroceryItem, 0, len(totals))
	for _, item := range totals {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		ni, nj := strings.ToLower(items[i].IngredientName), strings.ToLower(items[j].IngredientName)
		if ni != nj {
			return ni < nj
		}
		if items[i].Unit != items[j].Unit {
			return items[i].Unit < items[j].Unit
		}
		return items[i].IngredientID < items[j].IngredientID
	})

	return items, nil
}
