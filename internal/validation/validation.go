package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/nutrition"
	"github.com/julianstephens/mealplan/internal/planner"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateRecipeName ConflictType = "duplicate_recipe_name"
	ConflictUnknownIngredient   ConflictType = "unknown_ingredient"
	ConflictInvalidRecipe       ConflictType = "invalid_recipe"
	ConflictInvalidIngredient   ConflictType = "invalid_ingredient"
	ConflictCatalogTooSmall     ConflictType = "catalog_too_small"
	ConflictCaloriesOutOfRange  ConflictType = "calories_out_of_range"
	ConflictProteinBelowTarget  ConflictType = "protein_below_target"
	ConflictCarbsOutOfRange     ConflictType = "carbs_out_of_range"
	ConflictFatOutOfRange       ConflictType = "fat_out_of_range"
	ConflictUnresolvedPlan      ConflictType = "unresolved_plan"
)

// Conflict represents a detected problem in the catalog or a plan
type Conflict struct {
	Type        ConflictType
	Description string
	Day         int      // 1..7 for plan conflicts, 0 otherwise
	Items       []string // Recipe or ingredient names involved
	RecipeIDs   []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		if conflict.Day > 0 {
			fmt.Fprintf(&b, "- [%s] %s\n", models.DayName(conflict.Day), conflict.Description)
			continue
		}
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks catalogs and generated plans
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateCatalog checks active recipes and ingredients. maxRepeatingDays sizes the
// smallest catalog that can fill every day group; pass 0 to skip that check.
func (v *Validator) ValidateCatalog(recipes []models.Recipe, ingredients []models.Ingredient, maxRepeatingDays int) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	known := make(map[string]bool, len(ingredients))
	for _, ing := range ingredients {
		known[ing.ID] = true
		if err := ing.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidIngredient,
				Description: fmt.Sprintf("Ingredient \"%s\" is invalid: %v", ing.Name, err),
				Items:       []string{ing.Name},
			})
		}
	}

	nameCount := make(map[string][]string)
	active := 0
	for _, r := range recipes {
		if r.DeletedAt != nil {
			continue
		}
		active++
		if r.Name != "" {
			key := strings.ToLower(r.Name)
			nameCount[key] = append(nameCount[key], r.ID)
		}

		if err := r.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidRecipe,
				Description: fmt.Sprintf("Recipe \"%s\" is invalid: %v", r.Name, err),
				Items:       []string{r.Name},
				RecipeIDs:   []string{r.ID},
			})
		}

		for _, line := range r.Ingredients {
			if !known[line.IngredientID] {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictUnknownIngredient,
					Description: fmt.Sprintf("Recipe \"%s\" references unknown ingredient %s", r.Name, line.IngredientID),
					Items:       []string{r.Name},
					RecipeIDs:   []string{r.ID},
				})
			}
		}
	}

	// map iteration order is random, keep reports stable
	names := make([]string, 0, len(nameCount))
	for name := range nameCount {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ids := nameCount[name]
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateRecipeName,
				Description: fmt.Sprintf("Duplicate recipe name: \"%s\" (IDs: %v)", name, ids),
				Items:       []string{name},
				RecipeIDs:   ids,
			})
		}
	}

	if maxRepeatingDays > 0 {
		if groups, err := planner.DayPatterns(maxRepeatingDays); err == nil && active < len(groups) {
			desc := fmt.Sprintf("Catalog has %d active recipes but max_repeating_days=%d needs at least %d",
				active, maxRepeatingDays, len(groups))
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictCatalogTooSmall,
				Description: desc,
			})
		}
	}

	return result
}

// ValidatePlan compares each day's totals against the plan's targets, widened by the
// error margin. Conflicts are warnings and never block a plan.
func (v *Validator) ValidatePlan(plan models.MealPlan, recipes []models.Recipe) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	summary, err := nutrition.Summarize(plan.Assignments, recipes)
	if err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictUnresolvedPlan,
			Description: fmt.Sprintf("Plan \"%s\" cannot be summarized: %v", plan.Name, err),
		})
		return result
	}

	c := plan.Constraints
	margin := c.ErrorMargin
	calLow, calHigh := c.DailyCalories*(1-margin), c.DailyCalories*(1+margin)
	proteinLow := c.DailyProtein * (1 - margin)

	for _, ds := range summary.Days {
		t := ds.Totals
		if t.Calories < calLow || t.Calories > calHigh {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictCaloriesOutOfRange,
				Day:         ds.Day,
				Description: fmt.Sprintf("%.0f kcal is outside %.0f-%.0f kcal", t.Calories, calLow, calHigh),
			})
		}
		if t.Protein < proteinLow {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictProteinBelowTarget,
				Day:         ds.Day,
				Description: fmt.Sprintf("%.1fg protein is below %.1fg", t.Protein, proteinLow),
			})
		}
		if t.Carbs < c.MinCarbs || t.Carbs > c.MaxCarbs {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictCarbsOutOfRange,
				Day:         ds.Day,
				Description: fmt.Sprintf("%.1fg carbs is outside %.1f-%.1fg", t.Carbs, c.MinCarbs, c.MaxCarbs),
			})
		}
		if t.Fat < c.MinFat || t.Fat > c.MaxFat {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFatOutOfRange,
				Day:         ds.Day,
				Description: fmt.Sprintf("%.1fg fat is outside %.1f-%.1fg", t.Fat, c.MinFat, c.MaxFat),
			})
		}
	}

	return result
}
