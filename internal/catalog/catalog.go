// Package catalog reads recipe catalogs from JSON and loads them into storage.
//
// A catalog file lists ingredients and recipes. Recipe ingredient lines refer to
// ingredients by name (case-insensitive) or id, so hand-written files need no ids:
//
//	{
//	  "ingredients": [{"name": "Oats", "calories_per_100g": 389, "protein_per_100g": 16.9}],
//	  "recipes": [{
//	    "name": "Porridge", "servings": 2, "calories": 320, "protein": 12, "carbs": 50, "fat": 7,
//	    "ingredients": [{"ingredient": "Oats", "amount": 100, "unit": "g"}]
//	  }]
//	}
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/mealplan/internal/logger"
	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/storage"
)

type File struct {
	Ingredients []models.Ingredient `json:"ingredients"`
	Recipes     []Recipe            `json:"recipes"`
}

type Recipe struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	PrepTimeMin  int    `json:"prep_time,omitempty"`
	CookTimeMin  int    `json:"cook_time,omitempty"`
	Servings     int    `json:"servings"`
	models.Macros
	Ingredients []Line `json:"ingredients"`
}

// Line names an ingredient by name or id
type Line struct {
	Ingredient string  `json:"ingredient"`
	Amount     float64 `json:"amount"`
	Unit       string  `json:"unit"`
}

// Result counts what an import changed. Skipped lists recipes whose name already exists.
type Result struct {
	IngredientsAdded int
	IngredientsKept  int
	RecipesAdded     int
	Skipped          []string
}

func Parse(r io.Reader) (File, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var f File
	if err := dec.Decode(&f); err != nil {
		return File{}, fmt.Errorf("invalid catalog: %w", err)
	}
	if len(f.Ingredients) == 0 && len(f.Recipes) == 0 {
		return File{}, errors.New("invalid catalog: no ingredients or recipes")
	}
	return f, nil
}

func ReadFile(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer fh.Close()
	return Parse(fh)
}

type Importer struct {
	store storage.Provider
	retry storage.RetryConfig
}

func NewImporter(store storage.Provider, retry storage.RetryConfig) *Importer {
	return &Importer{store: store, retry: retry}
}

// Import adds the file's ingredients and recipes. Ingredients whose name already
// exists are reused, and recipes whose name already exists are skipped, so
// importing the same file twice is a no-op.
func (im *Importer) Import(ctx context.Context, f File) (Result, error) {
	var res Result

	existing, err := im.store.GetAllIngredients()
	if err != nil {
		return res, fmt.Errorf("failed to load ingredients: %w", err)
	}
	refs := newResolver(existing)

	for _, ing := range f.Ingredients {
		if err := ing.Validate(); err != nil {
			return res, err
		}
		if _, ok := refs.byName[strings.ToLower(ing.Name)]; ok {
			res.IngredientsKept++
			continue
		}
		if ing.ID == "" {
			ing.ID = uuid.New().String()
		}
		if err := storage.WithRetry(ctx, im.retry, func() error { return im.store.AddIngredient(ing) }); err != nil {
			return res, err
		}
		refs.add(ing)
		res.IngredientsAdded++
	}

	recipes, err := im.store.GetAllRecipes()
	if err != nil {
		return res, fmt.Errorf("failed to load recipes: %w", err)
	}
	names := make(map[string]bool, len(recipes))
	for _, r := range recipes {
		names[strings.ToLower(r.Name)] = true
	}

	for _, cr := range f.Recipes {
		key := strings.ToLower(strings.TrimSpace(cr.Name))
		if names[key] {
			res.Skipped = append(res.Skipped, cr.Name)
			continue
		}

		r, err := refs.recipe(cr)
		if err != nil {
			return res, err
		}
		if err := r.Validate(); err != nil {
			return res, err
		}
		if err := storage.WithRetry(ctx, im.retry, func() error { return im.store.AddRecipe(r) }); err != nil {
			return res, err
		}
		names[key] = true
		res.RecipesAdded++
	}

	logger.Info("Catalog imported",
		"ingredients_added", res.IngredientsAdded,
		"recipes_added", res.RecipesAdded,
		"skipped", len(res.Skipped),
	)
	return res, nil
}

type resolver struct {
	byID   map[string]models.Ingredient
	byName map[string]models.Ingredient
}

func newResolver(ingredients []models.Ingredient) *resolver {
	r := &resolver{
		byID:   make(map[string]models.Ingredient, len(ingredients)),
		byName: make(map[string]models.Ingredient, len(ingredients)),
	}
	for _, ing := range ingredients {
		r.add(ing)
	}
	return r
}

func (r *resolver) add(ing models.Ingredient) {
	r.byID[ing.ID] = ing
	r.byName[strings.ToLower(ing.Name)] = ing
}

func (r *resolver) lookup(ref string) (models.Ingredient, bool) {
	if ing, ok := r.byID[ref]; ok {
		return ing, true
	}
	ing, ok := r.byName[strings.ToLower(strings.TrimSpace(ref))]
	return ing, ok
}

func (r *resolver) recipe(cr Recipe) (models.Recipe, error) {
	out := models.Recipe{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(cr.Name),
		Description:  cr.Description,
		Instructions: cr.Instructions,
		PrepTimeMin:  cr.PrepTimeMin,
		CookTimeMin:  cr.CookTimeMin,
		Servings:     cr.Servings,
		Macros:       cr.Macros,
	}
	for _, line := range cr.Ingredients {
		ing, ok := r.lookup(line.Ingredient)
		if !ok {
			return models.Recipe{}, fmt.Errorf("recipe %q: unknown ingredient %q", cr.Name, line.Ingredient)
		}
		out.Ingredients = append(out.Ingredients, models.RecipeIngredient{
			IngredientID: ing.ID,
			Amount:       line.Amount,
			Unit:         line.Unit,
		})
	}
	return out, nil
}
