package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)`,
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
		UPDATE recipes SET name = ?, description = ?, instructions = ?, prep_time_min = ?, cook_time_min = ?,
			servings = ?, calories = ?, protein = ?, carbs = ?, fat = ?
		WHERE id = ? AND deleted_at IS NULL`,
		r.Name, r.Description, r.Instructions, r.PrepTimeMin, r.CookTimeMin,
		r.Servings, r.Calories, r.Protein, r.Carbs, r.Fat, r.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update recipe %q: %w", r.Name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("recipe %s: %w", r.ID, storage.ErrNotFound)
	}

	if _, err := tx.Exec("DELETE FROM recipe_ingredients WHERE recipe_id = ?", r.ID); err != nil {
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

	stmt, err := tx.Prepare("INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount, unit, position) VALUES (?, ?, ?, ?, ?)")
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

func (s *Store) loadRecipeIngredients(recipes []models.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	stmt, err := s.db.Prepare("SELECT ingredient_id, amount, unit FROM recipe_ingredients WHERE recipe_id = ? ORDER BY position")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range recipes {
		rows, err := stmt.Query(recipes[i].ID)
		if err != nil {
			return err
		}
		var lines []models.RecipeIngredient
		for rows.Next() {
			var line models.RecipeIngredient
			if err := rows.Scan(&line.IngredientID, &line.Amount, &line.Unit); err != nil {
				rows.Close()
				return err
			}
			lines = append(lines, line)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		recipes[i].Ingredients = lines
	}
	return nil
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
	r, err := scanRecipe(s.db.QueryRow("SELECT "+recipeColumns+" FROM recipes WHERE id = ? AND deleted_at IS NULL", id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Recipe{}, fmt.Errorf("recipe %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Recipe{}, err
	}

	one := []models.Recipe{r}
	if err := s.loadRecipeIngredients(one); err != nil {
		return models.Recipe{}, fmt.Errorf("failed to load recipe ingredients: %w", err)
	}
	return one[0], nil
}

// GetAllRecipes returns active recipes in creation order, which keeps seeded plans reproducible
func (s *Store) GetAllRecipes() ([]models.Recipe, error) {
	return s.queryRecipes("SELECT " + recipeColumns + " FROM recipes WHERE deleted_at IS NULL ORDER BY created_at, id")
}

func (s *Store) ListRecipes(skip, limit int) ([]models.Recipe, error) {
	return s.queryRecipes(
		"SELECT "+recipeColumns+" FROM recipes WHERE deleted_at IS NULL ORDER BY name COLLATE NOCASE, id LIMIT ? OFFSET ?",
		limit, skip,
	)
}

func (s *Store) GetRecipesByIDs(ids []string) ([]models.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return s.queryRecipes("SELECT "+recipeColumns+" FROM recipes WHERE id IN ("+placeholders+")", args...)
}

func (s *Store) DeleteRecipe(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM recipes WHERE id = ?", id).Scan(&deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("recipe %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check recipe existence: %w", err)
	}
	if deletedAt.Valid {
		return fmt.Errorf("recipe %s: %w", id, storage.ErrAlreadyDeleted)
	}

	now := time.Now().UTC().Format(constants.TimestampFormat)
	_, err = s.db.Exec("UPDATE recipes SET deleted_at = ? WHERE id = ?", now, id)
	return err
}

func (s *Store) RestoreRecipe(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM recipes WHERE id = ?", id).Scan(&deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("recipe %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check recipe existence: %w", err)
	}
	if !deletedAt.Valid {
		return fmt.Errorf("recipe %s: %w", id, storage.ErrNotDeleted)
	}

	_, err = s.db.Exec("UPDATE recipes SET deleted_at = NULL WHERE id = ?", id)
	return err
}
