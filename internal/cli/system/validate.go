package system

import (
	"fmt"

	"github.com/julianstephens/mealplan/internal/cli"
	"github.com/julianstephens/mealplan/internal/validation"
)

type ValidateCmd struct {
	MaxRepeatingDays int    `help:"Repeat window to check pool sizes against (defaults to the stored setting)."`
	Plan             string `help:"Also check a saved plan against its targets."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	days := cmd.MaxRepeatingDays
	if days == 0 {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		days = settings.DefaultMaxRepeatingDays
	}

	fmt.Println("Validating catalog...")
	result, err := ctx.Service.ValidateCatalog(ctx.Context(), days)
	if err != nil {
		return err
	}

	if cmd.Plan != "" {
		fmt.Println("Validating plan...")
		view, err := ctx.Service.GetPlanView(ctx.Context(), cmd.Plan)
		if err != nil {
			return fmt.Errorf("failed to load plan: %w", err)
		}
		result = validation.ValidationResult{Conflicts: append(result.Conflicts, view.Conflicts...)}
	}

	// conflicts are warnings, not failures
	fmt.Println()
	fmt.Println(result.FormatReport())
	return nil
}
