package plans

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mealplan/internal/cli"
	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/tui/forms"
)

type PlanCreateCmd struct {
	Name             string   `arg:"" optional:"" help:"Plan name."`
	Calories         *float64 `short:"c" help:"Daily calorie target (defaults to the stored setting)."`
	Protein          *float64 `short:"p" help:"Daily protein target in grams."`
	MinCarbs         *float64 `help:"Minimum daily carbs in grams."`
	MaxCarbs         *float64 `help:"Maximum daily carbs in grams (defaults to calories / 4)."`
	MinFat           *float64 `help:"Minimum daily fat in grams."`
	MaxFat           *float64 `help:"Maximum daily fat in grams (defaults to calories / 9)."`
	People           *int     `short:"n" help:"Number of people to shop for."`
	ErrorMargin      *float64 `help:"Tolerance around the daily targets (0 to 0.5)."`
	MaxRepeatingDays *int     `short:"r" name:"max-repeating-days" help:"Consecutive days a meal may repeat (1 to 3)."`
	CheatMeal        *bool    `name:"cheat-meal" help:"Allow a cheat meal for day 7 lunch."`
	Interactive      bool     `short:"I" help:"Fill in the plan with an interactive form."`
}

func (c *PlanCreateCmd) overrides() models.ConstraintOverrides {
	return models.ConstraintOverrides{
		DailyCalories:    c.Calories,
		DailyProtein:     c.Protein,
		MinCarbs:         c.MinCarbs,
		MaxCarbs:         c.MaxCarbs,
		MinFat:           c.MinFat,
		MaxFat:           c.MaxFat,
		NumPeople:        c.People,
		ErrorMargin:      c.ErrorMargin,
		MaxRepeatingDays: c.MaxRepeatingDays,
		AllowCheatMeal:   c.CheatMeal,
	}
}

func (c *PlanCreateCmd) Run(ctx *cli.Context) error {
	defaults, err := ctx.Service.DefaultConstraints(ctx.Context())
	if err != nil {
		return err
	}
	name := c.Name
	constraints := c.overrides().Apply(defaults)

	if c.Interactive {
		fm := forms.NewPlanFormModel(name, constraints)
		if err := forms.NewPlanForm(fm).Run(); err != nil {
			return fmt.Errorf("plan form cancelled: %w", err)
		}
		name = fm.Name
		if constraints, err = fm.Constraints(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("a plan name is required (pass NAME or use --interactive)")
	}

	ctx.PerformAutomaticBackup()

	plan, err := ctx.Service.CreatePlan(ctx.Context(), name, constraints)
	if err != nil {
		return err
	}

	view, err := ctx.Service.GetPlanView(ctx.Context(), plan.ID)
	if err != nil {
		return err
	}
	fmt.Print(renderPlan(view))
	fmt.Printf("\n✓ Saved plan %q. Shopping list: mealplan plan grocery %s\n", plan.Name, plan.ID)
	return nil
}

type PlanListCmd struct {
	Skip  int `help:"Number of plans to skip."`
	Limit int `help:"Maximum number of plans to show." default:"${list_limit}"`
}

func (c *PlanListCmd) Run(ctx *cli.Context) error {
	plans, err := ctx.Service.ListPlans(ctx.Context(), c.Skip, c.Limit)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		fmt.Println("No meal plans found")
		return nil
	}

	fmt.Println("Meal plans (newest first):")
	for _, p := range plans {
		fmt.Printf("  %s  %s  %s\n", p.ID, p.Name, cli.MutedStyle.Render(p.CreatedAt))
	}
	return nil
}

type PlanShowCmd struct {
	ID string `arg:"" help:"Plan id."`
}

func (c *PlanShowCmd) Run(ctx *cli.Context) error {
	view, err := ctx.Service.GetPlanView(ctx.Context(), c.ID)
	if err != nil {
		return err
	}
	fmt.Print(renderPlan(view))
	return nil
}

type PlanGroceryCmd struct {
	ID string `arg:"" help:"Plan id."`
}

func (c *PlanGroceryCmd) Run(ctx *cli.Context) error {
	items, err := ctx.Service.GroceryList(ctx.Context(), c.ID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("This plan needs no ingredients.")
		return nil
	}

	fmt.Println("Grocery list:")
	for _, item := range items {
		fmt.Printf("  - %s %s\n", cli.FormatAmount(item.TotalAmount, item.Unit), item.IngredientName)
	}
	return nil
}

type PlanDeleteCmd struct {
	ID  string `arg:"" help:"Plan id."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *PlanDeleteCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete plan %s?", c.ID))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}
	if err := ctx.Service.DeletePlan(ctx.Context(), c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted plan %s (restore with 'mealplan plan restore %s')\n", c.ID, c.ID)
	return nil
}

type PlanRestoreCmd struct {
	ID string `arg:"" help:"Plan id."`
}

func (c *PlanRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Service.RestorePlan(ctx.Context(), c.ID); err != nil {
		return err
	}
	fmt.Printf("Restored plan %s\n", c.ID)
	return nil
}
