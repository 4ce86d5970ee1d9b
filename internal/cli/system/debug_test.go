package system

import (
	"fmt"
	"strings"
	"testing"

	"github.com/julianstephens/mealplan/internal/models"
)

func TestDebugDBPathCmd(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	cmd := &DebugDBPathCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("debug db-path command failed: %v", err)
	}
}

func TestDebugDumpRecipeCmd(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	r, err := ctx.Service.AddRecipe(ctx.Context(), models.Recipe{
		Name:     "Toast",
		Servings: 1,
		Macros:   models.Macros{Calories: 200, Protein: 8, Carbs: 30, Fat: 5},
	})
	if err != nil {
		t.Fatalf("AddRecipe() failed: %v", err)
	}

	if err := (&DebugDumpRecipeCmd{ID: r.ID}).Run(ctx); err != nil {
		t.Errorf("debug dump-recipe command failed: %v", err)
	}

	err = (&DebugDumpRecipeCmd{ID: "non-existent"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "recipe not found") {
		t.Errorf("expected recipe not found, got %v", err)
	}
}

func TestDebugDumpPlanCmd(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	for i := 0; i < 8; i++ {
		_, err := ctx.Service.AddRecipe(ctx.Context(), models.Recipe{
			Name:     fmt.Sprintf("Dish %d", i),
			Servings: 1,
			Macros:   models.Macros{Calories: float64(200 + i*100), Protein: 20, Carbs: 40, Fat: 10},
		})
		if err != nil {
			t.Fatalf("AddRecipe(%d) failed: %v", i, err)
		}
	}
	c, err := ctx.Service.DefaultConstraints(ctx.Context())
	if err != nil {
		t.Fatalf("DefaultConstraints() failed: %v", err)
	}
	plan, err := ctx.Service.CreatePlan(ctx.Context(), "Week", c)
	if err != nil {
		t.Fatalf("CreatePlan() failed: %v", err)
	}

	if err := (&DebugDumpPlanCmd{ID: plan.ID}).Run(ctx); err != nil {
		t.Errorf("debug dump-plan command failed: %v", err)
	}

	err = (&DebugDumpPlanCmd{ID: "non-existent"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "plan not found") {
		t.Errorf("expected plan not found, got %v", err)
	}
}
