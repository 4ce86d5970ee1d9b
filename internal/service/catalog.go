package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/storage"
	"github.com/julianstephens/mealplan/internal/validation"
)

// AddIngredient assigns an id when missing. Names are unique ignoring case.
func (s *Service) AddIngredient(ctx context.Context, ing models.Ingredient) (models.Ingredient, error) {
	ing.Name = strings.TrimSpace(ing.Name)
	if err := ing.Validate(); err != nil {
		return models.Ingredient{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if existing, err := s.store.GetIngredientByName(ing.Name); err == nil && existing.ID != ing.ID {
		return models.Ingredient{}, fmt.Errorf("%w: ingredient %q already exists (id %s)", ErrInvalidInput, existing.Name, existing.ID)
	} else if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return models.Ingredient{}, err
	}

	if ing.ID == "" {
		ing.ID = uuid.New().String()
	}
	if err := storage.WithRetry(ctx, s.retry, func() error { return s.store.AddIngredient(ing) }); err != nil {
		return models.Ingredient{}, err
	}
	return ing, nil
}

func (s *Service) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetAllIngredients()
}

// AddRecipe validates the recipe and checks that every ingredient line resolves
func (s *Service) AddRecipe(ctx context.Context, r models.Recipe) (models.Recipe, error) {
	r.Name = strings.TrimSpace(r.Name)
	if err := r.Validate(); err != nil {
		return models.Recipe{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, line := range r.Ingredients {
		if _, err := s.store.GetIngredient(line.IngredientID); errors.Is(err, storage.ErrNotFound) {
			return models.Recipe{}, fmt.Errorf("%w: recipe %q references unknown ingredient %s", ErrInvalidInput, r.Name, line.IngredientID)
		} else if err != nil {
			return models.Recipe{}, err
		}
	}

	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.CreatedAt = ""
	r.DeletedAt = nil
	if err := storage.WithRetry(ctx, s.retry, func() error { return s.store.AddRecipe(r) }); err != nil {
		return models.Recipe{}, err
	}
	return s.store.GetRecipe(r.ID)
}

func (s *Service) GetRecipe(ctx context.Context, id string) (models.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return models.Recipe{}, err
	}
	return s.store.GetRecipe(id)
}

func (s *Service) ListRecipes(ctx context.Context, skip, limit int) ([]models.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	skip, limit, err := page(skip, limit)
	if err != nil {
		return nil, err
	}
	return s.store.ListRecipes(skip, limit)
}

func (s *Service) DeleteRecipe(ctx context.Context, id string) error {
	return storage.WithRetry(ctx, s.retry, func() error { return s.store.DeleteRecipe(id) })
}

func (s *Service) RestoreRecipe(ctx context.Context, id string) error {
	return storage.WithRetry(ctx, s.retry, func() error { return s.store.RestoreRecipe(id) })
}

// ValidateCatalog checks the active catalog against the given repetition setting
func (s *Service) ValidateCatalog(ctx context.Context, maxRepeatingDays int) (validation.ValidationResult, error) {
	if err := ctx.Err(); err != nil {
		return validation.ValidationResult{}, err
	}
	recipes, err := s.store.GetAllRecipes()
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to load recipes: %w", err)
	}
	ingredients, err := s.store.GetAllIngredients()
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to load ingredients: %w", err)
	}
	return s.validator.ValidateCatalog(recipes, ingredients, maxRepeatingDays), nil
}
