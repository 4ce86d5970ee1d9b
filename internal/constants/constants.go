package constants

import "time"

const (
	AppName            = "mealplan"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/mealplan/mealplan.db"
	Version            = "v0.1.0"

	// EnvDBConnection overrides --config when set
	EnvDBConnection = "MEALPLAN_DB_CONNECTION"

	// TimestampFormat is used for created_at and deleted_at columns
	TimestampFormat = time.RFC3339

	// Week shape
	DaysPerWeek  = 7
	MinPoolSize  = 7
	CheatMealDay = 7

	// Calorie bands as fractions of the daily target
	BreakfastMaxFraction = 0.30
	LunchMinFraction     = 0.25
	LunchMaxFraction     = 0.40
	DinnerMinFraction    = 0.20
	DinnerMaxFraction    = 0.35
	SnackMaxFraction     = 0.15
	CheatMinFraction     = 0.40

	// Listing
	DefaultListLimit = 100

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "mealplan-"
	BackupFileSuffix = ".db"

	// Retry constants
	DefaultMaxRetries   = 3
	DefaultRetryDelay   = 500 * time.Millisecond
	DefaultMaxRetryWait = 5 * time.Second

	// Server constants
	DefaultServeAddr      = ":8080"
	ServerReadTimeout     = 30 * time.Second
	ServerWriteTimeout    = 30 * time.Second
	ServerIdleTimeout     = 60 * time.Second
	ServerShutdownTimeout = 10 * time.Second
	ServerRequestTimeout  = 30 * time.Second
	MetricsNamespace      = "mealplan"
)

// DayNames maps day numbers 1..7 to names (index 0 is unused)
var DayNames = [...]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
