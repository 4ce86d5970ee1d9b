package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/mealplan/internal/constants"
	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/storage"
)

const recipeColumns = `id, name, description, instructions, prep_time_min, cook_time_min, servings,
		calories, protein, carbs, fat, created_at, deleted_at`

func scanRecipe(row rowScanner) (models.Recipe, error) {
	var r models.Recipe
	var deletedAt sql.NullString
	err := row.Scan(
		&r.ID, &r.Name, &r.Description, &r.Instructions, &r.PrepTimeMin, &r.CookTimeMin, &r.Servings,
		&r.Calories, &r.Protein, &r.Carbs, &r.Fat, &r.CreatedAt, &deletedAt,
	)
	if err != nil {
		return models.Recipe{}, err
	}
	if deletedAt.Valid {
		r.DeletedAt = &deletedAt.String
	}
	return r, nil
}

func (s *Store) AddRecipe(r models.Recipe) error {
	if r.DeletedAt != nil {
		return fmt.Errorf("cannot add a recipe with deleted_at set")
	}
	if r.CreatedAt == "" {
		r.CreatedAt = time.Now().UTC().Format(constants.TimestampFormat)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO recipes (`+recipeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULL)`,
		r.ID, r.Name, r.Description, r.Instructions, r.PrepTimeMin, r.CookTimeMin, r.Servings,
		r.Calories, r.Protein, r.Carbs, r.Fat, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert recipe %q: %w", r.Name, err)
	}

	if err := writeRecipeIngredients(tx, r); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) UpdateRecipe(r models.Recipe) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE recipes SET name = $1, description = $2, instructions = $3, prep_time_min = $4, cook_time_min = $5,
			servings = $6, calories = $7, protein = $8, carbs = $9, fat = $10
		WHERE id = $11 AND deleted_at IS NULL`,
		r.Name, r.Description, r.Instructions, r.PrepTimeMin, r.CookTimeMin,
		r.Servings, r.Calories, r.Protein, r.Carbs, r.Fat, r.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update recipe %q: %w", r.Name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("recipe %s: %w", r.ID, storage.ErrNotFound)
	}

	if _, err := tx.Exec("DELETE FROM recipe_ingredients WHERE recipe_id = $1", r.ID); err != nil {
		return err
	}
	if err := writeRecipeIngredients(tx, r); err != nil {
		return err
	}
	return tx.Commit()
}

func writeRecipeIngredients(tx *sql.Tx, r models.Recipe) error {
	if len(r.Ingredients) == 0 {
		return nil
	}

	stmt, err := tx.Prepare("INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount, unit, position) VALUES ($1, $2, $3, $4, $5)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, line := range r.Ingredients {
		if _, err := stmt.Exec(r.ID, line.IngredientID, line.Amount, line.Unit, i); err != nil {
			return fmt.Errorf("failed to add ingredient %s to recipe %q: %w", line.IngredientID, r.Name, err)
		}
	}
	return nil
}

// loadRecipeIngredients fetches all lines for the given recipes in one query
func (s *Store) loadRecipeIngredients(recipes []models.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	ids := make([]string, len(recipes))
	index := make(map[string]int, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
		index[r.ID] = i
	}

	rows, err := s.db.Query(`
		SELECT recipe_id, ingredient_id, amount, unit FROM recipe_ingredients
		WHERE recipe_id = ANY($1)
		ORDER BY recipe_id, position`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID string
		var line models.RecipeIngredient
		if err := rows.Scan(&recipeID, &line.IngredientID, &line.Amount, &line.Unit); err != nil {
			return err
		}
		i := index[recipeID]
		recipes[i].Ingredients = append(recipes[i].Ingredients, line)
	}
	return rows.Err()
}

func (s *Store) queryRecipes(query string, args ...any) ([]models.Recipe, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		recipes = append(recipes, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadRecipeIngredients(recipes); err != nil {
		return nil, fmt.Errorf("failed to load recipe ingredients: %w", err)
	}
	return recipes, nil
}

func (s *Store) GetRecipe(id string) (models.Recipe, error) {
	recipes, err := s.queryRecipes("SELECT "+recipeColumns+" FROM recipes WHERE id = $1 AND deleted_at IS NULL", id)
	if err != nil {
		return models.Recipe{}, err
	}
	if len(recipes) == 0 {
		return models.Recipe{}, fmt.Errorf("recipe %s: %w", id, storage.ErrNotFound)
	}
	return recipes[0], nil
}

func (s *Store) GetAllRecipes() ([]models.Recipe, error) {
	return s.queryRecipes("SELECT " + recipeColumns + " FROM recipes WHERE deleted_at IS NULL ORDER BY created_at, id")
}

func (s *Store) ListRecipes(skip, limit int) ([]models.Recipe, error) {
	return s.queryRecipes(
		"SELECT "+recipeColumns+" FROM recipes WHERE deleted_at IS NULL ORDER BY LOWER(name), id LIMIT $1 OFFSET $2",
		limit, skip,
	)
}

func (s *Store) GetRecipesByIDs(ids []string) ([]models.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.queryRecipes("SELECT "+recipeColumns+" FROM recipes WHERE id = ANY($1)", pq.Array(ids))
}

func (s *Store) DeleteRecipe(id string) error {
	now := time.Now().UTC().Format(constants.TimestampFormat)
	res, err := s.db.Exec("UPDATE recipes SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL", now, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	return s.stateError("recipes", "recipe", id, storage.ErrAlreadyDeleted)
}

func (s *Store) RestoreRecipe(id string) error {
	res, err := s.db.Exec("UPDATE recipes SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	return s.stateError("recipes", "recipe", id, storage.ErrNotDeleted)
}

// stateError distinguishes a missing row from one already in the requested state
func (s *Store) stateError(table, kind, id string, stateErr error) error {
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM "+table+" WHERE id = $1", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check %s existence: %w", kind, err)
	}
	return fmt.Errorf("%s %s: %w", kind, id, stateErr)
}
