package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/mealplan/internal/cli"
	"github.com/julianstephens/mealplan/internal/storage"
)

type DebugCmd struct {
	DBPath     DebugDBPathCmd     `cmd:"" help:"Show database path."`
	DumpPlan   DebugDumpPlanCmd   `cmd:"" help:"Dump a plan with its summary as JSON."`
	DumpRecipe DebugDumpRecipeCmd `cmd:"" help:"Dump recipe data as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	// machine-readable
	return printJSON(map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpPlanCmd struct {
	ID string `arg:"" help:"ID of the plan to dump."`
}

func (cmd *DebugDumpPlanCmd) Run(ctx *cli.Context) error {
	view, err := ctx.Service.GetPlanView(ctx.Context(), cmd.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("plan not found: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get plan: %w", err)
	}
	return printJSON(view)
}

type DebugDumpRecipeCmd struct {
	ID string `arg:"" help:"ID of the recipe to dump."`
}

func (cmd *DebugDumpRecipeCmd) Run(ctx *cli.Context) error {
	recipe, err := ctx.Service.GetRecipe(ctx.Context(), cmd.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("recipe not found: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get recipe: %w", err)
	}
	return printJSON(recipe)
}

func printJSON(v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
