package week

import (
	"strings"
	"testing"

	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/service"
	"github.com/julianstephens/mealplan/internal/validation"
)

func sampleView() service.PlanView {
	oats := &models.Recipe{Name: "Overnight Oats", Macros: models.Macros{Calories: 400}}
	pizza := &models.Recipe{Name: "Pizza", Macros: models.Macros{Calories: 1100}}

	var summary models.PlanSummary
	for i := range summary.Days {
		summary.Days[i] = models.DaySummary{Day: i + 1, DayName: models.DayName(i + 1), Breakfast: oats, Lunch: oats}
	}
	summary.Days[6].Lunch = pizza

	return service.PlanView{
		Plan: models.MealPlan{
			Name:        "Week 1",
			Assignments: []models.SlotAssignment{{Day: 7, MealType: models.MealLunch, Cheat: true}},
		},
		Summary:   &summary,
		Conflicts: []validation.Conflict{{Day: 3, Description: "protein below target"}},
	}
}

func TestRender(t *testing.T) {
	out := Render(sampleView())

	for _, want := range []string{"Week 1", "Monday", "Sunday", "Overnight Oats", "Pizza", "★ cheat", "Wednesday: protein below target"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	if strings.Count(out, "★ cheat") != 1 {
		t.Error("only the Sunday lunch should be marked")
	}
}

func TestRender_MissingRecipes(t *testing.T) {
	v := sampleView()
	v.Summary = nil
	out := Render(v)
	if !strings.Contains(out, "no longer exist") {
		t.Errorf("expected missing recipe notice, got %q", out)
	}
}

func TestModel_View(t *testing.T) {
	m := New(80, 40)
	if !strings.Contains(m.View(), "No plan selected") {
		t.Error("empty model should prompt to open a plan")
	}

	m.SetView(sampleView())
	if !strings.Contains(m.View(), "Monday") {
		t.Error("view should show the week")
	}

	m.Clear()
	if m.Plan != nil {
		t.Error("Clear should drop the plan")
	}
}
