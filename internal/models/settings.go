package models

import (
	"time"

	"github.com/julianstephens/mealplan/internal/constants"
)

// Settings holds defaults for new plans and storage retry knobs
type Settings struct {
	DefaultNumPeople        int     `json:"default_num_people"`
	DefaultErrorMargin      float64 `json:"default_error_margin"`
	DefaultMaxRepeatingDays int     `json:"default_max_repeating_days"`
	DefaultAllowCheatMeal   bool    `json:"default_allow_cheat_meal"`
	DefaultDailyCalories    float64 `json:"default_daily_calories"`
	DefaultDailyProtein     float64 `json:"default_daily_protein"`
	DBMaxRetries            int     `json:"db_max_retries"`
	DBRetryDelayMs          int     `json:"db_retry_delay_ms"`
}

// DefaultSettings returns the settings written by init
func DefaultSettings() Settings {
	return Settings{
		DefaultNumPeople:        constants.DefaultNumPeople,
		DefaultErrorMargin:      constants.DefaultErrorMargin,
		DefaultMaxRepeatingDays: constants.DefaultMaxRepeatingDays,
		DefaultAllowCheatMeal:   constants.DefaultAllowCheatMeal,
		DefaultDailyCalories:    constants.DefaultDailyCalories,
		DefaultDailyProtein:     constants.DefaultDailyProtein,
		DBMaxRetries:            constants.DefaultMaxRetries,
		DBRetryDelayMs:          constants.DefaultDBRetryDelayMs,
	}
}

// DefaultConstraints builds plan constraints from the stored defaults.
// Carb and fat ceilings default to the full calorie budget expressed in grams.
func (s Settings) DefaultConstraints() PlanConstraints {
	return PlanConstraints{
		DailyCalories:    s.DefaultDailyCalories,
		DailyProtein:     s.DefaultDailyProtein,
		MinCarbs:         0,
		MaxCarbs:         s.DefaultDailyCalories / 4,
		MinFat:           0,
		MaxFat:           s.DefaultDailyCalories / 9,
		NumPeople:        s.DefaultNumPeople,
		ErrorMargin:      s.DefaultErrorMargin,
		MaxRepeatingDays: s.DefaultMaxRepeatingDays,
		AllowCheatMeal:   s.DefaultAllowCheatMeal,
	}
}

// RetryDelay returns the initial storage retry delay
func (s Settings) RetryDelay() time.Duration {
	if s.DBRetryDelayMs <= 0 {
		return constants.DefaultRetryDelay
	}
	return time.Duration(s.DBRetryDelayMs) * time.Millisecond
}
