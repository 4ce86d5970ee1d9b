package ingredients

import (
	"fmt"

	"github.com/julianstephens/mealplan/internal/cli"
	"github.com/julianstephens/mealplan/internal/models"
)

type IngredientAddCmd struct {
	Name     string  `arg:"" help:"Ingredient name."`
	Calories float64 `help:"Calories per 100g."`
	Protein  float64 `help:"Protein grams per 100g."`
	Carbs    float64 `help:"Carbohydrate grams per 100g."`
	Fat      float64 `help:"Fat grams per 100g."`
}

func (c *IngredientAddCmd) Run(ctx *cli.Context) error {
	ing, err := ctx.Service.AddIngredient(ctx.Context(), models.Ingredient{
		Name:            c.Name,
		CaloriesPer100g: c.Calories,
		ProteinPer100g:  c.Protein,
		CarbsPer100g:    c.Carbs,
		FatPer100g:      c.Fat,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added ingredient: %s (id %s)\n", ing.Name, ing.ID)
	return nil
}

type IngredientListCmd struct{}

func (c *IngredientListCmd) Run(ctx *cli.Context) error {
	ingredients, err := ctx.Service.ListIngredients(ctx.Context())
	if err != nil {
		return err
	}
	if len(ingredients) == 0 {
		fmt.Println("No ingredients found")
		return nil
	}

	fmt.Println("Ingredients (per 100g):")
	for _, ing := range ingredients {
		fmt.Printf("  %s  %s - %s\n", ing.ID, ing.Name, cli.FormatMacros(models.Macros{
			Calories: ing.CaloriesPer100g,
			Protein:  ing.ProteinPer100g,
			Carbs:    ing.CarbsPer100g,
			Fat:      ing.FatPer100g,
		}))
	}
	return nil
}
