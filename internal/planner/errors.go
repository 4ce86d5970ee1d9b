package planner

import (
	"errors"
	"fmt"

	"github.com/julianstephens/mealplan/internal/models"
)

var (
	// ErrEmptyCatalog is returned when there are no recipes to plan from
	ErrEmptyCatalog = errors.New("recipe catalog is empty")
	// ErrInsufficientRecipes matches any *InsufficientRecipesError
	ErrInsufficientRecipes = errors.New("insufficient recipes")
	// ErrInvalidConfiguration matches any *InvalidConfigurationError
	ErrInvalidConfiguration = errors.New("invalid plan configuration")
)

// InsufficientRecipesError reports a meal-type pool with no unused recipe left.
// Widen the catalog or lower max_repeating_days.
type InsufficientRecipesError struct {
	MealType models.MealType
	PoolSize int
	Used     int
}

func (e *InsufficientRecipesError) Error() string {
	return fmt.Sprintf("insufficient recipes for %s: all %d candidates already used (%d picked); add recipes or lower max_repeating_days",
		e.MealType, e.PoolSize, e.Used)
}

func (e *InsufficientRecipesError) Is(target error) bool {
	return target == ErrInsufficientRecipes
}

// InvalidConfigurationError wraps a constraint outside its supported range
type InvalidConfigurationError struct {
	Err error
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid plan configuration: %v", e.Err)
}

func (e *InvalidConfigurationError) Unwrap() error {
	return e.Err
}

func (e *InvalidConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}
