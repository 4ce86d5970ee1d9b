package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/storage"
)

const ingredientColumns = "id, name, calories_per_100g, protein_per_100g, carbs_per_100g, fat_per_100g"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIngredient(row rowScanner) (models.Ingredient, error) {
	var ing models.Ingredient
	err := row.Scan(&ing.ID, &ing.Name, &ing.CaloriesPer100g, &ing.ProteinPer100g, &ing.CarbsPer100g, &ing.FatPer100g)
	return ing, err
}

func (s *Store) AddIngredient(ing models.Ingredient) error {
	_, err := s.db.Exec(`
		INSERT INTO ingredients (`+ingredientColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			calories_per_100g = EXCLUDED.calories_per_100g,
			protein_per_100g = EXCLUDED.protein_per_100g,
			carbs_per_100g = EXCLUDED.carbs_per_100g,
			fat_per_100g = EXCLUDED.fat_per_100g`,
		ing.ID, ing.Name, ing.CaloriesPer100g, ing.ProteinPer100g, ing.CarbsPer100g, ing.FatPer100g,
	)
	if err != nil {
		return fmt.Errorf("failed to save ingredient %q: %w", ing.Name, err)
	}
	return nil
}

func (s *Store) GetIngredient(id string) (models.Ingredient, error) {
	ing, err := scanIngredient(s.db.QueryRow("SELECT "+ingredientColumns+" FROM ingredients WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ingredient{}, fmt.Errorf("ingredient %s: %w", id, storage.ErrNotFound)
	}
	return ing, err
}

func (s *Store) GetIngredientByName(name string) (models.Ingredient, error) {
	ing, err := scanIngredient(s.db.QueryRow("SELECT "+ingredientColumns+" FROM ingredients WHERE LOWER(name) = LOWER($1)", name))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ingredient{}, fmt.Errorf("ingredient %q: %w", name, storage.ErrNotFound)
	}
	return ing, err
}

func (s *Store) GetAllIngredients() ([]models.Ingredient, error) {
	rows, err := s.db.Query("SELECT " + ingredientColumns + " FROM ingredients ORDER BY LOWER(name)")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []models.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}
