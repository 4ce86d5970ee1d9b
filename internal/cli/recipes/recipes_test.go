package recipes

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/mealplan/internal/cli"
	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/planner"
	"github.com/julianstephens/mealplan/internal/service"
	"github.com/julianstephens/mealplan/internal/storage"
	"github.com/julianstephens/mealplan/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, ing := range []models.Ingredient{
		{ID: "ing-rice", Name: "Rice", CaloriesPer100g: 130},
		{ID: "ing-beans", Name: "Black Beans", CaloriesPer100g: 132},
	} {
		if err := store.AddIngredient(ing); err != nil {
			t.Fatalf("AddIngredient() failed: %v", err)
		}
	}
	return &cli.Context{Store: store, Service: service.New(store, planner.NewSeeded(1))}
}

func TestParseIngredientLine(t *testing.T) {
	tests := []struct {
		input   string
		want    Line
		wantErr bool
	}{
		{input: "ing-rice:100:g", want: Line{Ref: "ing-rice", Amount: 100, Unit: "g"}},
		{input: "Black Beans:0.5:can", want: Line{Ref: "Black Beans", Amount: 0.5, Unit: "can"}},
		{input: "Sauce: Hot:2:tbsp", want: Line{Ref: "Sauce: Hot", Amount: 2, Unit: "tbsp"}},
		{input: " rice : 200 : g ", want: Line{Ref: "rice", Amount: 200, Unit: "g"}},
		{input: "rice", wantErr: true},
		{input: "rice:100", wantErr: true},
		{input: "rice:lots:g", wantErr: true},
		{input: "rice:0:g", wantErr: true},
		{input: "rice:-5:g", wantErr: true},
		{input: ":100:g", wantErr: true},
		{input: "rice:100:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseIngredientLine(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIngredientLine(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseIngredientLine(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRecipeAddCmd(t *testing.T) {
	ctx := setupTestDB(t)

	cmd := &RecipeAddCmd{
		Name:       "Rice and Beans",
		Servings:   2,
		Calories:   450,
		Protein:    18,
		Ingredient: []string{"ing-rice:150:g", "black beans:1:can"},
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("recipe add failed: %v", err)
	}

	recipes, err := ctx.Store.GetAllRecipes()
	if err != nil {
		t.Fatalf("GetAllRecipes() failed: %v", err)
	}
	if len(recipes) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(recipes))
	}
	got := recipes[0]
	if len(got.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredient lines, got %d", len(got.Ingredients))
	}
	if got.Ingredients[1].IngredientID != "ing-beans" {
		t.Errorf("name reference resolved to %q, want ing-beans", got.Ingredients[1].IngredientID)
	}

	if err := (&RecipeShowCmd{ID: got.ID}).Run(ctx); err != nil {
		t.Errorf("recipe show failed: %v", err)
	}
	if err := (&RecipeListCmd{}).Run(ctx); err != nil {
		t.Errorf("recipe list failed: %v", err)
	}
}

func TestRecipeAddCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		cmd  RecipeAddCmd
	}{
		{name: "unknown ingredient", cmd: RecipeAddCmd{Name: "Toast", Servings: 1, Calories: 200, Ingredient: []string{"bread:2:slice"}}},
		{name: "malformed line", cmd: RecipeAddCmd{Name: "Toast", Servings: 1, Calories: 200, Ingredient: []string{"ing-rice"}}},
		{name: "duplicate ingredient", cmd: RecipeAddCmd{Name: "Toast", Servings: 1, Calories: 200, Ingredient: []string{"ing-rice:1:g", "Rice:2:g"}}},
		{name: "no servings", cmd: RecipeAddCmd{Name: "Toast", Calories: 200}},
		{name: "blank name", cmd: RecipeAddCmd{Name: "  ", Servings: 1, Calories: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setupTestDB(t)
			if err := tt.cmd.Run(ctx); err == nil {
				t.Fatal("expected an error")
			}
			recipes, err := ctx.Store.GetAllRecipes()
			if err != nil {
				t.Fatalf("GetAllRecipes() failed: %v", err)
			}
			if len(recipes) != 0 {
				t.Errorf("expected no recipes after a failed add, got %d", len(recipes))
			}
		})
	}
}

func TestRecipeDeleteAndRestore(t *testing.T) {
	ctx := setupTestDB(t)

	added, err := ctx.Service.AddRecipe(ctx.Context(), models.Recipe{Name: "Oats", Servings: 1, Macros: models.Macros{Calories: 300}})
	if err != nil {
		t.Fatalf("AddRecipe() failed: %v", err)
	}

	if err := (&RecipeDeleteCmd{ID: added.ID}).Run(ctx); err != nil {
		t.Fatalf("recipe delete failed: %v", err)
	}
	if err := (&RecipeShowCmd{ID: added.ID}).Run(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("show after delete = %v, want ErrNotFound", err)
	}
	if err := (&RecipeDeleteCmd{ID: added.ID}).Run(ctx); !errors.Is(err, storage.ErrAlreadyDeleted) {
		t.Errorf("second delete = %v, want ErrAlreadyDeleted", err)
	}

	if err := (&RecipeRestoreCmd{ID: added.ID}).Run(ctx); err != nil {
		t.Fatalf("recipe restore failed: %v", err)
	}
	if err := (&RecipeShowCmd{ID: added.ID}).Run(ctx); err != nil {
		t.Errorf("show after restore failed: %v", err)
	}
}
