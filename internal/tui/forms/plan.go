package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mealplan/internal/models"
)

// PlanFormModel holds the plan form's field values as text, the way huh inputs edit them
type PlanFormModel struct {
	Name             string
	DailyCalories    string
	DailyProtein     string
	MinCarbs         string
	MaxCarbs         string
	MinFat           string
	MaxFat           string
	NumPeople        string
	ErrorMargin      string
	MaxRepeatingDays int
	AllowCheatMeal   bool
}

// NewPlanFormModel prefills the form from c
func NewPlanFormModel(name string, c models.PlanConstraints) *PlanFormModel {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return &PlanFormModel{
		Name:             name,
		DailyCalories:    f(c.DailyCalories),
		DailyProtein:     f(c.DailyProtein),
		MinCarbs:         f(c.MinCarbs),
		MaxCarbs:         f(c.MaxCarbs),
		MinFat:           f(c.MinFat),
		MaxFat:           f(c.MaxFat),
		NumPeople:        strconv.Itoa(c.NumPeople),
		ErrorMargin:      f(c.ErrorMargin),
		MaxRepeatingDays: c.MaxRepeatingDays,
		AllowCheatMeal:   c.AllowCheatMeal,
	}
}

// Constraints converts the form back into plan constraints and validates them
func (fm *PlanFormModel) Constraints() (models.PlanConstraints, error) {
	var c models.PlanConstraints
	var err error

	floats := []struct {
		label string
		src   string
		dst   *float64
	}{
		{"daily calories", fm.DailyCalories, &c.DailyCalories},
		{"daily protein", fm.DailyProtein, &c.DailyProtein},
		{"min carbs", fm.MinCarbs, &c.MinCarbs},
		{"max carbs", fm.MaxCarbs, &c.MaxCarbs},
		{"min fat", fm.MinFat, &c.MinFat},
		{"max fat", fm.MaxFat, &c.MaxFat},
		{"error margin", fm.ErrorMargin, &c.ErrorMargin},
	}
	for _, fl := range floats {
		if *fl.dst, err = strconv.ParseFloat(strings.TrimSpace(fl.src), 64); err != nil {
			return models.PlanConstraints{}, fmt.Errorf("%s must be a number", fl.label)
		}
	}
	if c.NumPeople, err = strconv.Atoi(strings.TrimSpace(fm.NumPeople)); err != nil {
		return models.PlanConstraints{}, fmt.Errorf("people must be a whole number")
	}
	c.MaxRepeatingDays = fm.MaxRepeatingDays
	c.AllowCheatMeal = fm.AllowCheatMeal

	if err := c.Validate(); err != nil {
		return models.PlanConstraints{}, err
	}
	return c, nil
}

func number(floor float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		if v < floor {
			return fmt.Errorf("must be at least %g", floor)
		}
		return nil
	}
}

// NewPlanForm builds the huh form used by 'plan create --interactive' and the TUI
func NewPlanForm(fm *PlanFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Plan name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Daily calories (kcal)").
				Value(&fm.DailyCalories).
				Validate(number(1)),
			huh.NewInput().
				Title("Daily protein (g)").
				Value(&fm.DailyProtein).
				Validate(number(1)),
			huh.NewInput().
				Title("People").
				Value(&fm.NumPeople).
				Validate(func(s string) error {
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || i < 1 {
						return fmt.Errorf("people must be a whole number of at least 1")
					}
					return nil
				}),
		).Title("Targets"),
		huh.NewGroup(
			huh.NewInput().
				Title("Carbs min (g)").
				Value(&fm.MinCarbs).
				Validate(number(0)),
			huh.NewInput().
				Title("Carbs max (g)").
				Value(&fm.MaxCarbs).
				Validate(number(0)),
			huh.NewInput().
				Title("Fat min (g)").
				Value(&fm.MinFat).
				Validate(number(0)),
			huh.NewInput().
				Title("Fat max (g)").
				Value(&fm.MaxFat).
				Validate(number(0)),
			huh.NewInput().
				Title("Error margin").
				Description("Tolerance around the daily targets, 0 to 0.5").
				Value(&fm.ErrorMargin).
				Validate(number(0)),
		).Title("Macros"),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Repeat meals for").
				Options(
					huh.NewOption("1 day (fresh every day)", 1),
					huh.NewOption("2 days", 2),
					huh.NewOption("3 days", 3),
				).
				Value(&fm.MaxRepeatingDays),
			huh.NewConfirm().
				Title("Allow a cheat meal on Sunday lunch?").
				Value(&fm.AllowCheatMeal),
		).Title("Variety"),
	).WithTheme(huh.ThemeDracula())
}
