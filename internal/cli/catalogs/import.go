package catalogs

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mealplan/internal/catalog"
	"github.com/julianstephens/mealplan/internal/cli"
	"github.com/julianstephens/mealplan/internal/storage"
)

type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"JSON catalog file with ingredients and recipes."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	f, err := catalog.ReadFile(c.File)
	if err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	// imports write many rows, so take a snapshot first
	ctx.PerformAutomaticBackup()

	importer := catalog.NewImporter(ctx.Store, storage.RetryConfigFromSettings(ctx.Store, settings))
	res, err := importer.Import(ctx.Context(), f)
	if err != nil {
		return fmt.Errorf("import failed after %d recipes: %w", res.RecipesAdded, err)
	}

	fmt.Printf("✓ Imported %d ingredients (%d already present) and %d recipes\n",
		res.IngredientsAdded, res.IngredientsKept, res.RecipesAdded)
	if len(res.Skipped) > 0 {
		fmt.Printf("  Skipped existing recipes: %s\n", strings.Join(res.Skipped, ", "))
	}

	if ctx.Service != nil {
		result, err := ctx.Service.ValidateCatalog(ctx.Context(), settings.DefaultMaxRepeatingDays)
		if err != nil {
			return err
		}
		if result.HasConflicts() {
			fmt.Println()
			fmt.Print(cli.WarnStyle.Render(result.FormatReport()))
			fmt.Println()
		}
	}
	return nil
}
