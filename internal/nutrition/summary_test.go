package nutrition

import (
	"errors"
	"testing"

	"github.com/julianstephens/mealplan/internal/models"
)

func testRecipes() []models.Recipe {
	return []models.Recipe{
		{ID: "oats", Name: "Oats", Servings: 1, Macros: models.Macros{Calories: 300, Protein: 10, Carbs: 50, Fat: 6}},
		{ID: "salad", Name: "Salad", Servings: 2, Macros: models.Macros{Calories: 600, Protein: 30, Carbs: 40, Fat: 20}},
		{ID: "stew", Name: "Stew", Servings: 4, Macros: models.Macros{Calories: 500, Protein: 35, Carbs: 30, Fat: 18}},
		{ID: "apple", Name: "Apple", Servings: 1, Macros: models.Macros{Calories: 150, Protein: 1, Carbs: 25, Fat: 0.5}},
	}
}

func fullWeek() []models.SlotAssignment {
	var out []models.SlotAssignment
	for day := 1; day <= 7; day++ {
		out = append(out,
			models.SlotAssignment{Day: day, MealType: models.MealBreakfast, RecipeID: "oats"},
			models.SlotAssignment{Day: day, MealType: models.MealLunch, RecipeID: "salad"},
			models.SlotAssignment{Day: day, MealType: models.MealDinner, RecipeID: "stew"},
			models.SlotAssignment{Day: day, MealType: models.MealSnack, RecipeID: "apple"},
		)
	}
	return out
}

func TestSummarize_FullWeek(t *testing.T) {
	summary, err := Summarize(fullWeek(), testRecipes())
	if err != nil {
		t.Fatalf("Summarize() returned error: %v", err)
	}

	wantDay := models.Macros{Calories: 1550, Protein: 76, Carbs: 145, Fat: 44.5}
	for i, ds := range summary.Days {
		if ds.Day != i+1 {
			t.Errorf("Days[%d].Day = %d, want %d", i, ds.Day, i+1)
		}
		if ds.Totals != wantDay {
			t.Errorf("day %d totals = %+v, want %+v", ds.Day, ds.Totals, wantDay)
		}
		if ds.Breakfast == nil || ds.Breakfast.ID != "oats" {
			t.Errorf("day %d breakfast = %v, want oats", ds.Day, ds.Breakfast)
		}
		if ds.Snack == nil || ds.Snack.ID != "apple" {
			t.Errorf("day %d snack = %v, want apple", ds.Day, ds.Snack)
		}
	}

	if summary.Days[0].DayName != "Monday" || summary.Days[6].DayName != "Sunday" {
		t.Errorf("day names = %q..%q, want Monday..Sunday", summary.Days[0].DayName, summary.Days[6].DayName)
	}

	wantTotal := models.Macros{Calories: 1550 * 7, Protein: 76 * 7, Carbs: 145 * 7, Fat: 44.5 * 7}
	if summary.Totals != wantTotal {
		t.Errorf("plan totals = %+v, want %+v", summary.Totals, wantTotal)
	}
}

func TestSummarize_PlanTotalEqualsSumOfDays(t *testing.T) {
	assignments := []models.SlotAssignment{
		{Day: 1, MealType: models.MealBreakfast, RecipeID: "oats"},
		{Day: 3, MealType: models.MealLunch, RecipeID: "salad"},
		{Day: 7, MealType: models.MealDinner, RecipeID: "stew"},
		{Day: 7, MealType: models.MealSnack, RecipeID: "apple"},
	}
	summary, err := Summarize(assignments, testRecipes())
	if err != nil {
		t.Fatalf("Summarize() returned error: %v", err)
	}

	var sum models.Macros
	for _, ds := range summary.Days {
		sum = sum.Add(ds.Totals)
	}
	if sum != summary.Totals {
		t.Errorf("sum of days = %+v, plan totals = %+v", sum, summary.Totals)
	}
	if summary.Totals.Calories != 1550 {
		t.Errorf("plan calories = %v, want 1550", summary.Totals.Calories)
	}
}

func TestSummarize_EmptyDaysPresent(t *testing.T) {
	summary, err := Summarize([]models.SlotAssignment{{Day: 2, MealType: models.MealLunch, RecipeID: "salad"}}, testRecipes())
	if err != nil {
		t.Fatalf("Summarize() returned error: %v", err)
	}

	for _, day := range []int{1, 3, 4, 5, 6, 7} {
		ds := summary.Days[day-1]
		if ds.Day != day {
			t.Errorf("Days[%d].Day = %d, want %d", day-1, ds.Day, day)
		}
		if ds.Totals != (models.Macros{}) {
			t.Errorf("day %d totals = %+v, want zero", day, ds.Totals)
		}
		for _, mt := range models.MealTypes {
			if ds.Meal(mt) != nil {
				t.Errorf("day %d %s = %v, want nil", day, mt, ds.Meal(mt))
			}
		}
	}
	if summary.Days[1].Lunch == nil {
		t.Error("day 2 lunch missing")
	}
}

func TestSummarize_NoAssignments(t *testing.T) {
	summary, err := Summarize(nil, nil)
	if err != nil {
		t.Fatalf("Summarize() returned error: %v", err)
	}
	if len(summary.Days) != 7 {
		t.Errorf("len(Days) = %d, want 7", len(summary.Days))
	}
	if summary.Totals != (models.Macros{}) {
		t.Errorf("plan totals = %+v, want zero", summary.Totals)
	}
}

func TestSummarize_Errors(t *testing.T) {
	tests := []struct {
		name       string
		assignment models.SlotAssignment
		want       error
	}{
		{"unknown recipe", models.SlotAssignment{Day: 1, MealType: models.MealLunch, RecipeID: "ghost"}, ErrUnknownRecipe},
		{"day zero", models.SlotAssignment{Day: 0, MealType: models.MealLunch, RecipeID: "oats"}, ErrInvalidDay},
		{"day eight", models.SlotAssignment{Day: 8, MealType: models.MealLunch, RecipeID: "oats"}, ErrInvalidDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Summarize([]models.SlotAssignment{tt.assignment}, testRecipes())
			if !errors.Is(err, tt.want) {
				t.Errorf("Summarize() error = %v, want %v", err, tt.want)
			}
		})
	}
}
