package settings

import (
	"fmt"

	"github.com/julianstephens/mealplan/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	DefaultNumPeople        *int     `help:"Default number of people a plan feeds."`
	DefaultErrorMargin      *float64 `help:"Default tolerance around daily targets (0 to 0.5)."`
	DefaultMaxRepeatingDays *int     `help:"Default number of consecutive days a meal repeats (1 to 3)."`
	DefaultAllowCheatMeal   *bool    `help:"Allow a cheat meal on day 7 by default."`
	DefaultDailyCalories    *float64 `help:"Default daily calorie target."`
	DefaultDailyProtein     *float64 `help:"Default daily protein target in grams."`
	DBMaxRetries            *int     `help:"Attempts for storage writes that hit a locked database." name:"db-max-retries"`
	DBRetryDelayMs          *int     `help:"Initial delay between storage retries in milliseconds." name:"db-retry-delay-ms"`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Plan Defaults:")
		fmt.Printf("  Num People:            %d\n", settings.DefaultNumPeople)
		fmt.Printf("  Error Margin:          %g\n", settings.DefaultErrorMargin)
		fmt.Printf("  Max Repeating Days:    %d\n", settings.DefaultMaxRepeatingDays)
		fmt.Printf("  Allow Cheat Meal:      %v\n", settings.DefaultAllowCheatMeal)
		fmt.Printf("  Daily Calories:        %g kcal\n", settings.DefaultDailyCalories)
		fmt.Printf("  Daily Protein:         %g g\n", settings.DefaultDailyProtein)
		fmt.Println("\nStorage:")
		fmt.Printf("  Max Retries:           %d\n", settings.DBMaxRetries)
		fmt.Printf("  Retry Delay:           %d ms\n", settings.DBRetryDelayMs)
		return nil
	}

	updated := false
	if c.DefaultNumPeople != nil {
		settings.DefaultNumPeople = *c.DefaultNumPeople
		updated = true
	}
	if c.DefaultErrorMargin != nil {
		settings.DefaultErrorMargin = *c.DefaultErrorMargin
		updated = true
	}
	if c.DefaultMaxRepeatingDays != nil {
		settings.DefaultMaxRepeatingDays = *c.DefaultMaxRepeatingDays
		updated = true
	}
	if c.DefaultAllowCheatMeal != nil {
		settings.DefaultAllowCheatMeal = *c.DefaultAllowCheatMeal
		updated = true
	}
	if c.DefaultDailyCalories != nil {
		settings.DefaultDailyCalories = *c.DefaultDailyCalories
		updated = true
	}
	if c.DefaultDailyProtein != nil {
		settings.DefaultDailyProtein = *c.DefaultDailyProtein
		updated = true
	}
	if c.DBMaxRetries != nil {
		if *c.DBMaxRetries < 1 {
			return fmt.Errorf("db-max-retries must be at least 1")
		}
		settings.DBMaxRetries = *c.DBMaxRetries
		updated = true
	}
	if c.DBRetryDelayMs != nil {
		if *c.DBRetryDelayMs < 0 {
			return fmt.Errorf("db-retry-delay-ms cannot be negative")
		}
		settings.DBRetryDelayMs = *c.DBRetryDelayMs
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	// defaults must still produce a plannable configuration
	if err := settings.DefaultConstraints().Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
