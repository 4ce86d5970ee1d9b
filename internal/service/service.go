// Package service ties the planner, storage and reporting packages together. The CLI,
// TUI and HTTP server all go through it.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/mealplan/internal/constants"
	"github.com/julianstephens/mealplan/internal/grocery"
	"github.com/julianstephens/mealplan/internal/logger"
	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/nutrition"
	"github.com/julianstephens/mealplan/internal/planner"
	"github.com/julianstephens/mealplan/internal/storage"
	"github.com/julianstephens/mealplan/internal/validation"
)

// ErrInvalidInput marks caller mistakes such as a negative skip or an invalid recipe
var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	store     storage.Provider
	planner   *planner.Planner
	validator *validation.Validator
	retry     storage.RetryConfig
	now       func() time.Time
}

type Option func(*Service)

func WithRetryConfig(cfg storage.RetryConfig) Option {
	return func(s *Service) { s.retry = cfg }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(store storage.Provider, p *planner.Planner, opts ...Option) *Service {
	s := &Service{
		store:     store,
		planner:   p,
		validator: validation.New(),
		retry:     storage.DefaultRetryConfig(store),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultConstraints returns plan constraints from the stored settings
func (s *Service) DefaultConstraints(ctx context.Context) (models.PlanConstraints, error) {
	if err := ctx.Err(); err != nil {
		return models.PlanConstraints{}, err
	}
	settings, err := s.store.GetSettings()
	if err != nil {
		return models.PlanConstraints{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings.DefaultConstraints(), nil
}

// PlanView is a stored plan with its nutrition summary and target conflicts.
// Summary is nil when a referenced recipe no longer exists.
type PlanView struct {
	Plan      models.MealPlan       `json:"plan"`
	Summary   *models.PlanSummary   `json:"summary,omitempty"`
	Conflicts []validation.Conflict `json:"conflicts"`
}

func (s *Service) CreatePlan(ctx context.Context, name string, c models.PlanConstraints) (models.MealPlan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.MealPlan{}, &planner.InvalidConfigurationError{Err: errors.New("plan name cannot be empty")}
	}
	if err := ctx.Err(); err != nil {
		return models.MealPlan{}, err
	}

	recipes, err := s.store.GetAllRecipes()
	if err != nil {
		return models.MealPlan{}, fmt.Errorf("failed to load recipes: %w", err)
	}

	start := s.now()
	// each plan runs on its own seed so the stored value regenerates it
	seed := s.planner.NextSeed()
	assignments, err := planner.NewSeeded(seed).Generate(recipes, c)
	if err != nil {
		return models.MealPlan{}, err
	}

	plan := models.MealPlan{
		ID:          uuid.New().String(),
		Name:        name,
		Constraints: c,
		Seed:        &seed,
		Assignments: assignments,
		CreatedAt:   start.UTC().Format(constants.TimestampFormat),
	}
	if err := storage.WithRetry(ctx, s.retry, func() error { return s.store.SavePlan(plan) }); err != nil {
		return models.MealPlan{}, fmt.Errorf("failed to save plan: %w", err)
	}

	logger.Info("Meal plan created", "id", plan.ID, "name", plan.Name, "recipes", len(recipes), "elapsed", time.Since(start))
	return plan, nil
}

func (s *Service) GetPlanView(ctx context.Context, id string) (PlanView, error) {
	if err := ctx.Err(); err != nil {
		return PlanView{}, err
	}

	plan, err := s.store.GetPlan(id)
	if err != nil {
		return PlanView{}, err
	}
	recipes, err := s.store.GetRecipesByIDs(plan.RecipeIDs())
	if err != nil {
		return PlanView{}, fmt.Errorf("failed to load plan recipes: %w", err)
	}

	view := PlanView{Plan: plan}
	if summary, err := nutrition.Summarize(plan.Assignments, recipes); err == nil {
		view.Summary = &summary
	} else {
		logger.Warn("Plan cannot be summarized", "id", id, "error", err)
	}
	view.Conflicts = s.validator.ValidatePlan(plan, recipes).Conflicts
	return view, nil
}

func (s *Service) ListPlans(ctx context.Context, skip, limit int) ([]models.MealPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	skip, limit, err := page(skip, limit)
	if err != nil {
		return nil, err
	}
	return s.store.ListPlans(skip, limit)
}

func (s *Service) GroceryList(ctx context.Context, id string) ([]models.GroceryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plan, err := s.store.GetPlan(id)
	if err != nil {
		return nil, err
	}
	recipes, err := s.store.GetRecipesByIDs(plan.RecipeIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to load plan recipes: %w", err)
	}
	ingredients, err := s.store.GetAllIngredients()
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredients: %w", err)
	}
	return grocery.BuildList(plan.Assignments, recipes, ingredients, plan.Constraints.NumPeople)
}

func (s *Service) DeletePlan(ctx context.Context, id string) error {
	return storage.WithRetry(ctx, s.retry, func() error { return s.store.DeletePlan(id) })
}

func (s *Service) RestorePlan(ctx context.Context, id string) error {
	return storage.WithRetry(ctx, s.retry, func() error { return s.store.RestorePlan(id) })
}

// page applies the default limit and rejects negative values
func page(skip, limit int) (int, int, error) {
	if skip < 0 {
		return 0, 0, fmt.Errorf("%w: skip must not be negative", ErrInvalidInput)
	}
	if limit < 0 {
		return 0, 0, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	if limit == 0 {
		limit = constants.DefaultListLimit
	}
	return skip, limit, nil
}
