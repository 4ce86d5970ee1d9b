package recipes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/mealplan/internal/cli"
	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/storage"
)

// Line is one parsed --ingredient flag
type Line struct {
	Ref    string
	Amount float64
	Unit   string
}

// ParseIngredientLine parses "ref:amount:unit". The ref is an ingredient id or name
// and may itself contain colons; amount and unit are taken from the right.
func ParseIngredientLine(s string) (Line, error) {
	unitIdx := strings.LastIndex(s, ":")
	if unitIdx < 0 {
		return Line{}, fmt.Errorf("invalid ingredient %q, use ingredient:amount:unit", s)
	}
	amountIdx := strings.LastIndex(s[:unitIdx], ":")
	if amountIdx < 0 {
		return Line{}, fmt.Errorf("invalid ingredient %q, use ingredient:amount:unit", s)
	}

	line := Line{
		Ref:  strings.TrimSpace(s[:amountIdx]),
		Unit: strings.TrimSpace(s[unitIdx+1:]),
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(s[amountIdx+1:unitIdx]), 64)
	if err != nil {
		return Line{}, fmt.Errorf("invalid amount in ingredient %q: %w", s, err)
	}
	line.Amount = amount

	if line.Ref == "" {
		return Line{}, fmt.Errorf("ingredient %q is missing a name or id", s)
	}
	if line.Unit == "" {
		return Line{}, fmt.Errorf("ingredient %q is missing a unit", s)
	}
	if line.Amount <= 0 {
		return Line{}, fmt.Errorf("ingredient %q amount must be positive", s)
	}
	return line, nil
}

// resolveIngredient looks ref up as an id first, then as a name
func resolveIngredient(store storage.Provider, ref string) (models.Ingredient, error) {
	ing, err := store.GetIngredient(ref)
	if err == nil {
		return ing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.Ingredient{}, err
	}
	ing, err = store.GetIngredientByName(ref)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Ingredient{}, fmt.Errorf("unknown ingredient %q (add it with 'mealplan ingredient add')", ref)
	}
	return ing, err
}

type RecipeAddCmd struct {
	Name         string   `arg:"" help:"Recipe name."`
	Servings     int      `short:"s" help:"Servings one batch makes." default:"1"`
	Calories     float64  `short:"c" help:"Calories per serving." required:""`
	Protein      float64  `short:"p" help:"Protein grams per serving."`
	Carbs        float64  `help:"Carbohydrate grams per serving."`
	Fat          float64  `help:"Fat grams per serving."`
	Prep         int      `help:"Prep time in minutes."`
	Cook         int      `help:"Cook time in minutes."`
	Description  string   `short:"d" help:"Short description."`
	Instructions string   `help:"Cooking instructions."`
	Ingredient   []string `short:"i" help:"Ingredient line as ingredient:amount:unit (repeatable). Amounts are per batch." sep:"none"`
}

func (c *RecipeAddCmd) Run(ctx *cli.Context) error {
	recipe := models.Recipe{
		Name:         c.Name,
		Description:  c.Description,
		Instructions: c.Instructions,
		PrepTimeMin:  c.Prep,
		CookTimeMin:  c.Cook,
		Servings:     c.Servings,
		Macros: models.Macros{
			Calories: c.Calories,
			Protein:  c.Protein,
			Carbs:    c.Carbs,
			Fat:      c.Fat,
		},
	}

	for _, raw := range c.Ingredient {
		line, err := ParseIngredientLine(raw)
		if err != nil {
			return err
		}
		ing, err := resolveIngredient(ctx.Store, line.Ref)
		if err != nil {
			return err
		}
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			IngredientID: ing.ID,
			Amount:       line.Amount,
			Unit:         line.Unit,
		})
	}

	added, err := ctx.Service.AddRecipe(ctx.Context(), recipe)
	if err != nil {
		return err
	}

	fmt.Printf("Added recipe: %s (id %s)\n", added.Name, added.ID)
	return nil
}

type RecipeListCmd struct {
	Skip  int `help:"Number of recipes to skip."`
	Limit int `help:"Maximum number of recipes to show." default:"${list_limit}"`
}

func (c *RecipeListCmd) Run(ctx *cli.Context) error {
	recipes, err := ctx.Service.ListRecipes(ctx.Context(), c.Skip, c.Limit)
	if err != nil {
		return err
	}
	if len(recipes) == 0 {
		fmt.Println("No recipes found")
		return nil
	}

	fmt.Println("Recipes (per serving):")
	for _, r := range recipes {
		fmt.Printf("  %s  %s - %s\n", r.ID, r.Name, cli.FormatMacros(r.Macros))
	}
	return nil
}

type RecipeShowCmd struct {
	ID string `arg:"" help:"Recipe id."`
}

func (c *RecipeShowCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Service.GetRecipe(ctx.Context(), c.ID)
	if err != nil {
		return err
	}

	fmt.Println(cli.HeadingStyle.Render(r.Name))
	if r.Description != "" {
		fmt.Println(r.Description)
	}
	fmt.Printf("\nServings: %d", r.Servings)
	if r.TotalTimeMin() > 0 {
		fmt.Printf("  Time: %dm (prep %dm, cook %dm)", r.TotalTimeMin(), r.PrepTimeMin, r.CookTimeMin)
	}
	fmt.Printf("\nPer serving: %s\n", cli.FormatMacros(r.Macros))

	if len(r.Ingredients) > 0 {
		fmt.Println("\nIngredients:")
		for _, line := range r.Ingredients {
			name := line.IngredientID
			if ing, err := ctx.Store.GetIngredient(line.IngredientID); err == nil {
				name = ing.Name
			}
			fmt.Printf("  - %s %s\n", cli.FormatAmount(line.Amount, line.Unit), name)
		}
	}
	if r.Instructions != "" {
		fmt.Printf("\nInstructions:\n%s\n", r.Instructions)
	}
	return nil
}

type RecipeDeleteCmd struct {
	ID string `arg:"" help:"Recipe id."`
}

func (c *RecipeDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Service.DeleteRecipe(ctx.Context(), c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted recipe %s (saved plans keep it; restore with 'mealplan recipe restore')\n", c.ID)
	return nil
}

type RecipeRestoreCmd struct {
	ID string `arg:"" help:"Recipe id."`
}

func (c *RecipeRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Service.RestoreRecipe(ctx.Context(), c.ID); err != nil {
		return err
	}
	fmt.Printf("Restored recipe %s\n", c.ID)
	return nil
}
