package constants

const (
	// Plan defaults
	SettingDefaultNumPeople        = "default_num_people"
	SettingDefaultErrorMargin      = "default_error_margin"
	SettingDefaultMaxRepeatingDays = "default_max_repeating_days"
	SettingDefaultAllowCheatMeal   = "default_allow_cheat_meal"
	SettingDefaultDailyCalories    = "default_daily_calories"
	SettingDefaultDailyProtein     = "default_daily_protein"

	// Storage
	SettingDBMaxRetries   = "db_max_retries"
	SettingDBRetryDelayMs = "db_retry_delay_ms"

	// Default Settings Values
	DefaultNumPeople        = 1
	DefaultErrorMargin      = 0.1
	DefaultMaxRepeatingDays = 2
	DefaultAllowCheatMeal   = false
	DefaultDailyCalories    = 2000.0
	DefaultDailyProtein     = 100.0
	DefaultDBRetryDelayMs   = 500
)
