package postgres

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/mealplan/internal/constants"
	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/storage"
)

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}
	if len(values) == 0 {
		return models.Settings{}, fmt.Errorf("settings: %w", storage.ErrNotFound)
	}

	settings := models.DefaultSettings()
	ints := map[string]*int{
		constants.SettingDefaultNumPeople:        &settings.DefaultNumPeople,
		constants.SettingDefaultMaxRepeatingDays: &settings.DefaultMaxRepeatingDays,
		constants.SettingDBMaxRetries:            &settings.DBMaxRetries,
		constants.SettingDBRetryDelayMs:          &settings.DBRetryDelayMs,
	}
	floats := map[string]*float64{
		constants.SettingDefaultErrorMargin:   &settings.DefaultErrorMargin,
		constants.SettingDefaultDailyCalories: &settings.DefaultDailyCalories,
		constants.SettingDefaultDailyProtein:  &settings.DefaultDailyProtein,
	}

	for key, value := range values {
		var err error
		if dst, ok := ints[key]; ok {
			*dst, err = strconv.Atoi(value)
		} else if dst, ok := floats[key]; ok {
			*dst, err = strconv.ParseFloat(value, 64)
		} else if key == constants.SettingDefaultAllowCheatMeal {
			settings.DefaultAllowCheatMeal, err = strconv.ParseBool(value)
		}
		if err != nil {
			return models.Settings{}, fmt.Errorf("parsing %s: %w", key, err)
		}
	}

	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	values := map[string]string{
		constants.SettingDefaultNumPeople:        strconv.Itoa(settings.DefaultNumPeople),
		constants.SettingDefaultErrorMargin:      strconv.FormatFloat(settings.DefaultErrorMargin, 'g', -1, 64),
		constants.SettingDefaultMaxRepeatingDays: strconv.Itoa(settings.DefaultMaxRepeatingDays),
		constants.SettingDefaultAllowCheatMeal:   strconv.FormatBool(settings.DefaultAllowCheatMeal),
		constants.SettingDefaultDailyCalories:    strconv.FormatFloat(settings.DefaultDailyCalories, 'g', -1, 64),
		constants.SettingDefaultDailyProtein:     strconv.FormatFloat(settings.DefaultDailyProtein, 'g', -1, 64),
		constants.SettingDBMaxRetries:            strconv.Itoa(settings.DBMaxRetries),
		constants.SettingDBRetryDelayMs:          strconv.Itoa(settings.DBRetryDelayMs),
	}
	for key, value := range values {
		if _, err := stmt.Exec(key, value); err != nil {
			return fmt.Errorf("saving %s: %w", key, err)
		}
	}

	return tx.Commit()
}
