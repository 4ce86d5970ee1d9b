package plans

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mealplan/internal/cli"
	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/service"
)

var mealLabels = map[models.MealType]string{
	models.MealBreakfast: "Breakfast",
	models.MealLunch:     "Lunch",
	models.MealDinner:    "Dinner",
	models.MealSnack:     "Snack",
}

func formatConstraints(c models.PlanConstraints) string {
	people := "person"
	if c.NumPeople != 1 {
		people = "people"
	}
	cheat := ""
	if c.AllowCheatMeal {
		cheat = ", cheat meal allowed"
	}
	return fmt.Sprintf("%.0f kcal, %.0fg protein, ±%.0f%%, %d %s, repeat %dd%s",
		c.DailyCalories, c.DailyProtein, c.ErrorMargin*100, c.NumPeople, people, c.MaxRepeatingDays, cheat)
}

// renderPlan writes the week day by day. Without a summary only recipe ids can be shown.
func renderPlan(view service.PlanView) string {
	var b strings.Builder
	p := view.Plan

	fmt.Fprintf(&b, "%s  %s\n", cli.HeadingStyle.Render(p.Name), cli.MutedStyle.Render(p.ID))
	fmt.Fprintf(&b, "Created %s", p.CreatedAt)
	if p.Seed != nil {
		fmt.Fprintf(&b, "  Seed %d", *p.Seed)
	}
	fmt.Fprintf(&b, "\nTargets: %s\n", formatConstraints(p.Constraints))

	cheats := make(map[int]bool)
	for _, a := range p.Assignments {
		if a.Cheat {
			cheats[a.Day] = true
		}
	}

	if view.Summary == nil {
		b.WriteString("\n" + cli.WarnStyle.Render("Some recipes in this plan no longer exist; showing recipe ids.") + "\n")
		for _, a := range p.Assignments {
			fmt.Fprintf(&b, "  %-9s %-10s %s\n", models.DayName(a.Day), mealLabels[a.MealType], a.RecipeID)
		}
		return b.String()
	}

	for _, day := range view.Summary.Days {
		fmt.Fprintf(&b, "\n%-10s %s\n", day.DayName, cli.MutedStyle.Render(cli.FormatMacros(day.Totals)))
		for _, mt := range models.MealTypes {
			r := day.Meal(mt)
			if r == nil {
				continue
			}
			marker := ""
			if mt == models.MealLunch && cheats[day.Day] {
				marker = " ★ cheat meal"
			}
			fmt.Fprintf(&b, "  %-10s %s (%.0f kcal)%s\n", mealLabels[mt], r.Name, r.Calories, marker)
		}
	}
	fmt.Fprintf(&b, "\nWeek total: %s\n", cli.FormatMacros(view.Summary.Totals))

	if len(view.Conflicts) > 0 {
		b.WriteString("\n" + cli.WarnStyle.Render("⚠️  Targets missed:") + "\n")
		for _, c := range view.Conflicts {
			if c.Day > 0 {
				fmt.Fprintf(&b, "  - [%s] %s\n", models.DayName(c.Day), c.Description)
				continue
			}
			fmt.Fprintf(&b, "  - %s\n", c.Description)
		}
	}
	return b.String()
}
