package sqlite

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

	settings := models.DefaultSettings()
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		if err := applySetting(&settings, key, value); err != nil {
			return models.Settings{}, err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings: %w", storage.ErrNotFound)
	}

	return settings, nil
}

func applySetting(settings *models.Settings, key, value string) error {
	var err error
	switch key {
	case constants.SettingDefaultNumPeople:
		_, err = fmt.Sscanf(value, "%d", &settings.DefaultNumPeople)
	case constants.SettingDefaultErrorMargin:
		settings.DefaultErrorMargin, err = strconv.ParseFloat(value, 64)
	case constants.SettingDefaultMaxRepeatingDays:
		_, err = fmt.Sscanf(value, "%d", &settings.DefaultMaxRepeatingDays)
	case constants.SettingDefaultAllowCheatMeal:
		settings.DefaultAllowCheatMeal = value == "true"
	case constants.SettingDefaultDailyCalories:
		settings.DefaultDailyCalories, err = strconv.ParseFloat(value, 64)
	case constants.SettingDefaultDailyProtein:
		settings.DefaultDailyProtein, err = strconv.ParseFloat(value, 64)
	case constants.SettingDBMaxRetries:
		_, err = fmt.Sscanf(value, "%d", &settings.DBMaxRetries)
	case constants.SettingDBRetryDelayMs:
		_, err = fmt.Sscanf(value, "%d", &settings.DBRetryDelayMs)
	}
	if err != nil {
		return fmt.Errorf("parsing %s: %w", key, err)
	}
	return nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, kv := range [][2]string{
		{constants.SettingDefaultNumPeople, strconv.Itoa(settings.DefaultNumPeople)},
		{constants.SettingDefaultErrorMargin, strconv.FormatFloat(settings.DefaultErrorMargin, 'g', -1, 64)},
		{constants.SettingDefaultMaxRepeatingDays, strconv.Itoa(settings.DefaultMaxRepeatingDays)},
		{constants.SettingDefaultAllowCheatMeal, strconv.FormatBool(settings.DefaultAllowCheatMeal)},
		{constants.SettingDefaultDailyCalories, strconv.FormatFloat(settings.DefaultDailyCalories, 'g', -1, 64)},
		{constants.SettingDefaultDailyProtein, strconv.FormatFloat(settings.DefaultDailyProtein, 'g', -1, 64)},
		{constants.SettingDBMaxRetries, strconv.Itoa(settings.DBMaxRetries)},
		{constants.SettingDBRetryDelayMs, strconv.Itoa(settings.DBRetryDelayMs)},
	} {
		if _, err := stmt.Exec(kv[0], kv[1]); err != nil {
			return fmt.Errorf("saving %s: %w", kv[0], err)
		}
	}

	return tx.Commit()
}
