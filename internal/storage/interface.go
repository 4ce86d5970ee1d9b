package storage

import (
	"github.com/julianstephens/mealplan/internal/migration"
	"github.com/julianstephens/mealplan/internal/models"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Schema
	Migrate(logFn func(string)) (int, error)
	SchemaStatus() (migration.Status, error)

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Ingredients
	AddIngredient(models.Ingredient) error
	GetIngredient(id string) (models.Ingredient, error)
	GetIngredientByName(name string) (models.Ingredient, error)
	GetAllIngredients() ([]models.Ingredient, error)

	// Recipes. Ingredient lines are loaded with the recipe.
	AddRecipe(models.Recipe) error
	UpdateRecipe(models.Recipe) error
	GetRecipe(id string) (models.Recipe, error)
	GetAllRecipes() ([]models.Recipe, error)
	ListRecipes(skip, limit int) ([]models.Recipe, error)
	// GetRecipesByIDs includes soft-deleted recipes so saved plans stay resolvable
	GetRecipesByIDs(ids []string) ([]models.Recipe, error)
	DeleteRecipe(id string) error
	RestoreRecipe(id string) error

	// Plans. Assignments are written and read with the plan.
	SavePlan(models.MealPlan) error
	GetPlan(id string) (models.MealPlan, error)
	ListPlans(skip, limit int) ([]models.MealPlan, error)
	DeletePlan(id string) error
	RestorePlan(id string) error

	// IsRetryable reports whether err is a transient lock or serialization failure
	IsRetryable(err error) bool

	// Utils
	GetConfigPath() string
}
