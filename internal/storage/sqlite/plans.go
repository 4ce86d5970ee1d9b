package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

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

// SavePlan writes the plan and replaces its assignments in one transaction
func (s *Store) SavePlan(plan models.MealPlan) error {
	// use DeletePlan/RestorePlan to change deletion state
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			daily_calories = excluded.daily_calories,
			daily_protein = excluded.daily_protein,
			min_carbs = excluded.min_carbs,
			max_carbs = excluded.max_carbs,
			min_fat = excluded.min_fat,
			max_fat = excluded.max_fat,
			num_people = excluded.num_people,
			error_margin = excluded.error_margin,
			max_repeating_days = excluded.max_repeating_days,
			allow_cheat_meal = excluded.allow_cheat_meal,
			seed = excluded.seed`,
		plan.ID, plan.Name, c.DailyCalories, c.DailyProtein, c.MinCarbs, c.MaxCarbs, c.MinFat, c.MaxFat,
		c.NumPeople, c.ErrorMargin, c.MaxRepeatingDays, c.AllowCheatMeal, seed, plan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save plan %q: %w", plan.Name, err)
	}

	if _, err := tx.Exec("DELETE FROM plan_assignments WHERE plan_id = ?", plan.ID); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO plan_assignments (plan_id, day, meal_type, recipe_id, is_cheat) VALUES (?, ?, ?, ?, ?)")
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

	stmt, err := s.db.Prepare(`
		SELECT day, meal_type, recipe_id, is_cheat FROM plan_assignments
		WHERE plan_id = ?
		ORDER BY day, CASE meal_type
			WHEN 'breakfast' THEN 1 WHEN 'lunch' THEN 2 WHEN 'dinner' THEN 3 ELSE 4 END`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range plans {
		rows, err := stmt.Query(plans[i].ID)
		if err != nil {
			return err
		}
		var assignments []models.SlotAssignment
		for rows.Next() {
			var a models.SlotAssignment
			var mealType string
			if err := rows.Scan(&a.Day, &mealType, &a.RecipeID, &a.Cheat); err != nil {
				rows.Close()
				return err
			}
			a.MealType = models.MealType(mealType)
			assignments = append(assignments, a)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		plans[i].Assignments = assignments
	}
	return nil
}

func (s *Store) GetPlan(id string) (models.MealPlan, error) {
	p, err := scanPlan(s.db.QueryRow("SELECT "+planColumns+" FROM meal_plans WHERE id = ? AND deleted_at IS NULL", id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.MealPlan{}, fmt.Errorf("meal plan %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.MealPlan{}, err
	}

	one := []models.MealPlan{p}
	if err := s.loadAssignments(one); err != nil {
		return models.MealPlan{}, fmt.Errorf("failed to load plan assignments: %w", err)
	}
	return one[0], nil
}

// ListPlans returns active plans, newest first
func (s *Store) ListPlans(skip, limit int) ([]models.MealPlan, error) {
	rows, err := s.db.Query(
		"SELECT "+planColumns+" FROM meal_plans WHERE deleted_at IS NULL ORDER BY created_at DESC, id LIMIT ? OFFSET ?",
		limit, skip,
	)
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

func (s *Store) DeletePlan(id string) error {
	now := time.Now().UTC().Format(constants.TimestampFormat)
	res, err := s.db.Exec("UPDATE meal_plans SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", now, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	return s.planStateError(id, storage.ErrAlreadyDeleted)
}

func (s *Store) RestorePlan(id string) error {
	res, err := s.db.Exec("UPDATE meal_plans SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	return s.planStateError(id, storage.ErrNotDeleted)
}

// planStateError distinguishes a missing plan from one already in the requested state
func (s *Store) planStateError(id string, stateErr error) error {
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM meal_plans WHERE id = ?", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("meal plan %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check plan existence: %w", err)
	}
	return fmt.Errorf("meal plan %s: %w", id, stateErr)
}
