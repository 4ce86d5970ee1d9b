package postgres

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/mealplan/internal/constants"
	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/storage"
)

const planColumns = `id, name, daily_calories, daily_protein, min_carbs, max_carbs, min_fat, max_fat,
		num_people, error_margin, max_repeating_days, allow_cheat_meal, seed, created_at, deleted_at`

func scanPlan(row rowScanner) (models.MealPlan, error) {
	var p models.MealPlan
	var seed, deletedAt sql.NullString
	c := &p.Constraints
	err := row.Scan(
		&p.ID, &p.Name, &c.DailyCalories, &c.DailyProtein, &c.MinCarbs, &c.MaxCarbs, &c.MinFat, &c.MaxFat,
		&c.NumPeople, &c.ErrorMargin, &c.MaxRepeatingDays, &c.AllowCheatMeal, &seed, &p.CreatedAt, &deletedAt,
	)
	if err != nil {
		return models.MealPlan{}, err
	}
	if seed.Valid {
		v, err := strconv.ParseUint(seed.String, 10, 64)
		if err != nil {
			return models.MealPlan{}, fmt.Errorf("plan %s has invalid seed %q: %w", p.ID, seed.String, err)
		}
		p.Seed = &v
	}
	if deletedAt.Valid {
		p.DeletedAt = &deletedAt.String
	}
	return p, nil
}

func (s *Store) SavePlan(plan models.MealPlan) error {
	if plan.DeletedAt != nil {
		return fmt.Errorf("cannot save a plan with deleted_at set; use DeletePlan to soft-delete or RestorePlan to restore")
	}
	if plan.CreatedAt == "" {
		plan.CreatedAt = time.Now().UTC().Format(constants.TimestampFormat)
	}

	var seed sql.NullString
	if plan.Seed != nil {
		seed = sql.NullString{String: strconv.FormatUint(*plan.Seed, 10), Valid: true}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	c := plan.Constraints
	_, err = tx.Exec(`
		INSERT INTO meal_plans (`+planColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NULL)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			daily_calories = EXCLUDED.daily_calories,
			daily_protein = EXCLUDED.daily_protein,
			min_carbs = EXCLUDED.min_carbs,
			max_carbs = EXCLUDED.max_carbs,
			min_fat = EXCLUDED.min_fat,
			max_fat = EXCLUDED.max_fat,
			num_people = EXCLUDED.num_people,
			error_margin = EXCLUDED.error_margin,
			max_repeating_days = EXCLUDED.max_repeating_days,
			allow_cheat_meal = EXCLUDED.allow_cheat_meal,
			seed = EXCLUDED.seed`,
		plan.ID, plan.Name, c.DailyCalories, c.DailyProtein, c.MinCarbs, c.MaxCarbs, c.MinFat, c.MaxFat,
		c.NumPeople, c.ErrorMargin, c.MaxRepeatingDays, c.AllowCheatMeal, seed, plan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save plan %q: %w", plan.Name, err)
	}

	if _, err := tx.Exec("DELETE FROM plan_assignments WHERE plan_id = $1", plan.ID); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO plan_assignments (plan_id, day, meal_type, recipe_id, is_cheat) VALUES ($1, $2, $3, $4, $5)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range plan.Assignments {
		if _, err := stmt.Exec(plan.ID, a.Day, string(a.MealType), a.RecipeID, a.Cheat); err != nil {
			return fmt.Errorf("failed to save assignment day %d %s: %w", a.Day, a.MealType, err)
		}
	}

	return tx.Commit()
}

func (s *Store) loadAssignments(plans []models.MealPlan) error {
	if len(plans) == 0 {
		return nil
	}

	ids := make([]string, len(plans))
	index := make(map[string]int, len(plans))
	for i, p := range plans {
		ids[i] = p.ID
		index[p.ID] = i
	}

	rows, err := s.db.Query(`
		SELECT plan_id, day, meal_type, recipe_id, is_cheat FROM plan_assignments
		WHERE plan_id = ANY($1)
		ORDER BY plan_id, day, CASE meal_type
			WHEN 'breakfast' THEN 1 WHEN 'lunch' THEN 2 WHEN 'dinner' THEN 3 ELSE 4 END`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var planID, mealType string
		var a models.SlotAssignment
		if err := rows.Scan(&planID, &a.Day, &mealType, &a.RecipeID, &a.Cheat); err != nil {
			return err
		}
		a.MealType = models.MealType(mealType)
		i := index[planID]
		plans[i].Assignments = append(plans[i].Assignments, a)
	}
	return rows.Err()
}

func (s *Store) queryPlans(query string, args ...any) ([]models.MealPlan, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}

	var plans []models.MealPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		plans = append(plans, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadAssignments(plans); err != nil {
		return nil, fmt.Errorf("failed to load plan assignments: %w", err)
	}
	return plans, nil
}

func (s *Store) GetPlan(id string) (models.MealPlan, error) {
	plans, err := s.queryPlans("SELECT "+planColumns+" FROM meal_plans WHERE id = $1 AND deleted_at IS NULL", id)
	if err != nil {
		return models.MealPlan{}, err
	}
	if len(plans) == 0 {
		return models.MealPlan{}, fmt.Errorf("meal plan %s: %w", id, storage.ErrNotFound)
	}
	return plans[0], nil
}

func (s *Store) ListPlans(skip, limit int) ([]models.MealPlan, error) {
	return s.queryPlans(
		"SELECT "+planColumns+" FROM meal_plans WHERE deleted_at IS NULL ORDER BY created_at DESC, id LIMIT $1 OFFSET $2",
		limit, skip,
	)
}

func (s *Store) DeletePlan(id string) error {
	now := time.Now().UTC().Format(constants.TimestampFormat)
	res, err := s.db.Exec("UPDATE meal_plans SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL", now, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	return s.stateError("meal_plans", "meal plan", id, storage.ErrAlreadyDeleted)
}

func (s *Store) RestorePlan(id string) error {
	res, err := s.db.Exec("UPDATE meal_plans SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	return s.stateError("meal_plans", "meal plan", id, storage.ErrNotDeleted)
}
