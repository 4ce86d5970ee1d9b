package planner

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/julianstephens/mealplan/internal/models"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func recipe(id string, calories float64) models.Recipe {
	return models.Recipe{
		ID:       id,
		Name:     id,
		Servings: 1,
		Macros:   models.Macros{Calories: calories, Protein: calories / 20, Carbs: calories / 8, Fat: calories / 30},
	}
}

// makeCatalog builds n recipes with calories spread between 100 and 1000
func makeCatalog(n int) []models.Recipe {
	catalog := make([]models.Recipe, n)
	for i := 0; i < n; i++ {
		catalog[i] = recipe(fmt.Sprintf("r%02d", i), 100+float64(i)*900/float64(n))
	}
	return catalog
}

func constraints(maxRepeatingDays int, cheat bool) models.PlanConstraints {
	return models.PlanConstraints{
		DailyCalories:    2000,
		DailyProtein:     100,
		MinCarbs:         0,
		MaxCarbs:         500,
		MinFat:           0,
		MaxFat:           200,
		NumPeople:        2,
		ErrorMargin:      0.1,
		MaxRepeatingDays: maxRepeatingDays,
		AllowCheatMeal:   cheat,
	}
}

type slotKey struct {
	day int
	mt  models.MealType
}

func groupIndex(groups [][]int) map[int]int {
	idx := make(map[int]int)
	for gi, g := range groups {
		for _, d := range g {
			idx[d] = gi
		}
	}
	return idx
}

func TestGenerate_CoversEverySlotOnce(t *testing.T) {
	for _, mrd := range []int{1, 2, 3} {
		for _, cheat := range []bool{false, true} {
			t.Run(fmt.Sprintf("mrd=%d/cheat=%v", mrd, cheat), func(t *testing.T) {
				p := NewSeeded(42)
				assignments, err := p.Generate(makeCatalog(20), constraints(mrd, cheat))
				if err != nil {
					t.Fatalf("Generate() returned error: %v", err)
				}
				if len(assignments) != 28 {
					t.Fatalf("Generate() returned %d assignments, want 28", len(assignments))
				}

				seen := make(map[slotKey]bool)
				for _, a := range assignments {
					if a.Day < 1 || a.Day > 7 {
						t.Errorf("assignment has day %d outside 1..7", a.Day)
					}
					k := slotKey{a.Day, a.MealType}
					if seen[k] {
						t.Errorf("duplicate assignment for day %d %s", a.Day, a.MealType)
					}
					seen[k] = true
				}
				for day := 1; day <= 7; day++ {
					for _, mt := range models.MealTypes {
						if !seen[slotKey{day, mt}] {
							t.Errorf("missing assignment for day %d %s", day, mt)
						}
					}
				}
			})
		}
	}
}

func TestGenerate_EmissionOrder(t *testing.T) {
	p := NewSeeded(7)
	assignments, err := p.Generate(makeCatalog(20), constraints(3, false))
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}

	i := 0
	for day := 1; day <= 7; day++ {
		for _, mt := range models.MealTypes {
			if assignments[i].Day != day || assignments[i].MealType != mt {
				t.Fatalf("assignment %d = (%d, %s), want (%d, %s)", i, assignments[i].Day, assignments[i].MealType, day, mt)
			}
			i++
		}
	}
}

func TestGenerate_UniqueWithinMealTypeAcrossGroups(t *testing.T) {
	for _, mrd := range []int{1, 2, 3} {
		t.Run(fmt.Sprintf("mrd=%d", mrd), func(t *testing.T) {
			groups, _ := DayPatterns(mrd)
			gidx := groupIndex(groups)

			p := NewSeeded(uint64(mrd) * 11)
			assignments, err := p.Generate(makeCatalog(12), constraints(mrd, false))
			if err != nil {
				t.Fatalf("Generate() returned error: %v", err)
			}

			// recipe per (group, meal type) must be constant inside a group
			// and distinct across groups for the same meal type
			perGroup := make(map[models.MealType]map[int]string)
			for _, a := range assignments {
				if perGroup[a.MealType] == nil {
					perGroup[a.MealType] = make(map[int]string)
				}
				g := gidx[a.Day]
				if prev, ok := perGroup[a.MealType][g]; ok && prev != a.RecipeID {
					t.Errorf("group %d %s uses %s and %s", g, a.MealType, prev, a.RecipeID)
				}
				perGroup[a.MealType][g] = a.RecipeID
			}
			for mt, byGroup := range perGroup {
				used := make(map[string]int)
				for g, id := range byGroup {
					if other, ok := used[id]; ok {
						t.Errorf("%s recipe %s reused in groups %d and %d", mt, id, other, g)
					}
					used[id] = g
				}
			}
		})
	}
}

func TestGenerate_CheatMealOverridesSundayLunch(t *testing.T) {
	// nine lunch-band recipes keep the lunch pool free of backfill
	var catalog []models.Recipe
	for i := 0; i < 9; i++ {
		catalog = append(catalog, recipe(fmt.Sprintf("lunch-%d", i), 520+float64(i)*20))
	}
	for i := 0; i < 8; i++ {
		catalog = append(catalog, recipe(fmt.Sprintf("small-%d", i), 120+float64(i)*10))
	}
	feast := recipe("feast", 1400)
	catalog = append(catalog, feast)

	for _, mrd := range []int{1, 2, 3} {
		t.Run(fmt.Sprintf("mrd=%d", mrd), func(t *testing.T) {
			p := NewSeeded(99)
			assignments, err := p.Generate(catalog, constraints(mrd, true))
			if err != nil {
				t.Fatalf("Generate() returned error: %v", err)
			}

			cheats := 0
			for _, a := range assignments {
				if a.Cheat {
					cheats++
					if a.Day != 7 || a.MealType != models.MealLunch {
						t.Errorf("cheat flag set on day %d %s, want day 7 lunch", a.Day, a.MealType)
					}
				}
				if a.Day == 7 && a.MealType == models.MealLunch {
					if a.RecipeID != feast.ID {
						t.Errorf("day 7 lunch = %s, want %s", a.RecipeID, feast.ID)
					}
					continue
				}
				if a.MealType == models.MealLunch && a.RecipeID == feast.ID {
					t.Errorf("cheat recipe leaked into day %d lunch", a.Day)
				}
			}
			if cheats != 1 {
				t.Errorf("found %d cheat assignments, want 1", cheats)
			}
		})
	}
}

func TestGenerate_NoCheatWhenDisabled(t *testing.T) {
	p := NewSeeded(5)
	assignments, err := p.Generate(makeCatalog(20), constraints(2, false))
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}
	for _, a := range assignments {
		if a.Cheat {
			t.Errorf("unexpected cheat assignment on day %d %s", a.Day, a.MealType)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	catalog := makeCatalog(15)
	first, err := NewSeeded(1234).Generate(catalog, constraints(2, true))
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}
	second, err := NewSeeded(1234).Generate(catalog, constraints(2, true))
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Generate() with the same seed and catalog produced different plans")
	}
}

func TestNextSeed(t *testing.T) {
	a, b := NewSeeded(77), NewSeeded(77)
	seen := make(map[uint64]bool)
	for i := 0; i < 5; i++ {
		sa, sb := a.NextSeed(), b.NextSeed()
		if sa != sb {
			t.Errorf("draw %d: %d != %d for the same master seed", i, sa, sb)
		}
		if seen[sa] {
			t.Errorf("draw %d repeated seed %d", i, sa)
		}
		seen[sa] = true
	}
}

func TestGenerate_FourRecipeScenario(t *testing.T) {
	catalog := []models.Recipe{
		recipe("B", 300),
		recipe("L", 600),
		recipe("D", 500),
		recipe("S", 150),
	}

	p := NewSeeded(2024)
	assignments, err := p.Generate(catalog, constraints(2, false))
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}
	if len(assignments) != 28 {
		t.Fatalf("Generate() returned %d assignments, want 28", len(assignments))
	}

	byDay := make(map[int]map[models.MealType]string)
	for _, a := range assignments {
		if byDay[a.Day] == nil {
			byDay[a.Day] = make(map[models.MealType]string)
		}
		byDay[a.Day][a.MealType] = a.RecipeID
	}

	// paired days share every pick
	for _, pair := range [][2]int{{1, 2}, {3, 4}, {5, 6}} {
		if !reflect.DeepEqual(byDay[pair[0]], byDay[pair[1]]) {
			t.Errorf("days %d and %d differ: %v vs %v", pair[0], pair[1], byDay[pair[0]], byDay[pair[1]])
		}
	}

	// four groups over four-recipe pools use every recipe once per meal type
	for _, mt := range models.MealTypes {
		used := make(map[string]bool)
		for _, day := range []int{1, 3, 5, 7} {
			id := byDay[day][mt]
			if used[id] {
				t.Errorf("%s recipe %s repeated across groups", mt, id)
			}
			used[id] = true
		}
		if len(used) != 4 {
			t.Errorf("%s used %d distinct recipes, want 4", mt, len(used))
		}
	}
}

func TestGenerate_SingleRecipeIsInsufficient(t *testing.T) {
	catalog := []models.Recipe{recipe("only", 500)}

	for _, mrd := range []int{1, 2, 3} {
		t.Run(fmt.Sprintf("mrd=%d", mrd), func(t *testing.T) {
			_, err := NewSeeded(1).Generate(catalog, constraints(mrd, false))
			if err == nil {
				t.Fatal("Generate() expected error, got nil")
			}
			if errors.Is(err, ErrEmptyCatalog) {
				t.Errorf("Generate() error = %v, must not be ErrEmptyCatalog", err)
			}
			if !errors.Is(err, ErrInsufficientRecipes) {
				t.Errorf("Generate() error = %v, want ErrInsufficientRecipes", err)
			}
			var insufficient *InsufficientRecipesError
			if !errors.As(err, &insufficient) {
				t.Fatalf("Generate() error type = %T, want *InsufficientRecipesError", err)
			}
			if insufficient.MealType != models.MealBreakfast {
				t.Errorf("exhausted meal type = %s, want breakfast", insufficient.MealType)
			}
		})
	}
}

func TestGenerate_EmptyCatalog(t *testing.T) {
	_, err := NewSeeded(1).Generate(nil, constraints(2, false))
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("Generate() error = %v, want ErrEmptyCatalog", err)
	}
}

func TestGenerate_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *models.PlanConstraints)
	}{
		{"max repeating days 4", func(c *models.PlanConstraints) { c.MaxRepeatingDays = 4 }},
		{"max repeating days 0", func(c *models.PlanConstraints) { c.MaxRepeatingDays = 0 }},
		{"zero calories", func(c *models.PlanConstraints) { c.DailyCalories = 0 }},
		{"margin too wide", func(c *models.PlanConstraints) { c.ErrorMargin = 0.9 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := constraints(2, false)
			tt.mutate(&c)
			_, err := NewSeeded(1).Generate(makeCatalog(10), c)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("Generate() error = %v, want ErrInvalidConfiguration", err)
			}
			var cfgErr *InvalidConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("Generate() error type = %T, want *InvalidConfigurationError", err)
			}
		})
	}
}

func TestDayPatterns(t *testing.T) {
	tests := []struct {
		mrd  int
		want [][]int
	}{
		{1, [][]int{{1}, {2}, {3}, {4}, {5}, {6}, {7}}},
		{2, [][]int{{1, 2}, {3, 4}, {5, 6}, {7}}},
		{3, [][]int{{1, 2, 3}, {4, 5, 6}, {7}}},
	}

	for _, tt := range tests {
		got, err := DayPatterns(tt.mrd)
		if err != nil {
			t.Fatalf("DayPatterns(%d) returned error: %v", tt.mrd, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("DayPatterns(%d) = %v, want %v", tt.mrd, got, tt.want)
		}

		days := make(map[int]int)
		for _, g := range got {
			if len(g) > tt.mrd {
				t.Errorf("DayPatterns(%d) group %v larger than %d", tt.mrd, g, tt.mrd)
			}
			for _, d := range g {
				days[d]++
			}
		}
		for d := 1; d <= 7; d++ {
			if days[d] != 1 {
				t.Errorf("DayPatterns(%d) covers day %d %d times", tt.mrd, d, days[d])
			}
		}
	}

	for _, bad := range []int{0, 4, -1} {
		if _, err := DayPatterns(bad); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("DayPatterns(%d) error = %v, want ErrInvalidConfiguration", bad, err)
		}
	}
}

func TestDayPatterns_ReturnsCopy(t *testing.T) {
	got, _ := DayPatterns(2)
	got[0][0] = 99
	again, _ := DayPatterns(2)
	if again[0][0] != 1 {
		t.Error("mutating DayPatterns result changed the shared table")
	}
}

func TestClassify_Bands(t *testing.T) {
	// daily 2000: breakfast <600, lunch 500..800, dinner 400..700, snack <300
	catalog := []models.Recipe{
		recipe("tiny", 200),
		recipe("mid", 500),
		recipe("big", 750),
	}
	for i := 0; i < 10; i++ {
		catalog = append(catalog, recipe(fmt.Sprintf("filler-%d", i), 450))
	}

	pools, err := Classify(catalog, 2000, testRNG(1))
	if err != nil {
		t.Fatalf("Classify() returned error: %v", err)
	}

	contains := func(mt models.MealType, id string) bool {
		for _, r := range pools[mt] {
			if r.ID == id {
				return true
			}
		}
		return false
	}

	if !contains(models.MealBreakfast, "tiny") || !contains(models.MealBreakfast, "mid") || contains(models.MealBreakfast, "big") {
		t.Errorf("breakfast pool membership wrong: %v", ids(pools[models.MealBreakfast]))
	}
	if !contains(models.MealLunch, "mid") || !contains(models.MealLunch, "big") {
		t.Errorf("lunch pool membership wrong: %v", ids(pools[models.MealLunch]))
	}
	if !contains(models.MealDinner, "mid") || contains(models.MealDinner, "big") {
		t.Errorf("dinner pool membership wrong: %v", ids(pools[models.MealDinner]))
	}
	if !contains(models.MealSnack, "tiny") {
		t.Errorf("snack pool missing tiny: %v", ids(pools[models.MealSnack]))
	}
}

func TestClassify_BandEdges(t *testing.T) {
	tests := []struct {
		mt       models.MealType
		calories float64
		want     bool
	}{
		{models.MealBreakfast, 599.99, true},
		{models.MealBreakfast, 600, false},
		{models.MealLunch, 500, true},
		{models.MealLunch, 800, true},
		{models.MealLunch, 800.01, false},
		{models.MealDinner, 400, true},
		{models.MealDinner, 700, true},
		{models.MealDinner, 399, false},
		{models.MealSnack, 299, true},
		{models.MealSnack, 300, false},
	}
	for _, tt := range tests {
		if got := InBand(tt.mt, tt.calories, 2000); got != tt.want {
			t.Errorf("InBand(%s, %v) = %v, want %v", tt.mt, tt.calories, got, tt.want)
		}
	}
}

func TestClassify_BackfillsToSeven(t *testing.T) {
	// all snack-sized, so lunch and dinner pools start empty
	var catalog []models.Recipe
	for i := 0; i < 10; i++ {
		catalog = append(catalog, recipe(fmt.Sprintf("s%d", i), 100))
	}

	pools, err := Classify(catalog, 2000, testRNG(3))
	if err != nil {
		t.Fatalf("Classify() returned error: %v", err)
	}

	if got := len(pools[models.MealLunch]); got != 7 {
		t.Errorf("lunch pool size = %d, want 7", got)
	}
	if got := len(pools[models.MealDinner]); got != 7 {
		t.Errorf("dinner pool size = %d, want 7", got)
	}
	// already populated pools are left alone
	if got := len(pools[models.MealSnack]); got != 10 {
		t.Errorf("snack pool size = %d, want 10", got)
	}
	for mt, pool := range pools {
		seen := make(map[string]bool)
		for _, r := range pool {
			if seen[r.ID] {
				t.Errorf("%s pool contains %s twice", mt, r.ID)
			}
			seen[r.ID] = true
		}
	}
}

func TestClassify_BackfillStopsWhenCatalogExhausted(t *testing.T) {
	catalog := []models.Recipe{recipe("a", 100), recipe("b", 700), recipe("c", 900)}

	pools, err := Classify(catalog, 2000, testRNG(9))
	if err != nil {
		t.Fatalf("Classify() returned error: %v", err)
	}
	for _, mt := range models.MealTypes {
		if got := len(pools[mt]); got != 3 {
			t.Errorf("%s pool size = %d, want 3", mt, got)
		}
	}
}

func TestClassify_EmptyCatalog(t *testing.T) {
	if _, err := Classify(nil, 2000, testRNG(1)); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("Classify() error = %v, want ErrEmptyCatalog", err)
	}
}

func TestSelectCheatMeal(t *testing.T) {
	rng := testRNG(4)

	catalog := []models.Recipe{recipe("light", 300), recipe("heavy", 900), recipe("medium", 700)}
	for i := 0; i < 20; i++ {
		got := SelectCheatMeal(catalog, 2000, rng)
		if got == nil || got.ID != "heavy" {
			t.Fatalf("SelectCheatMeal() = %v, want heavy", got)
		}
	}

	// nothing above 800 kcal falls back to the whole catalog
	light := []models.Recipe{recipe("a", 100), recipe("b", 200)}
	if got := SelectCheatMeal(light, 2000, rng); got == nil {
		t.Error("SelectCheatMeal() = nil, want fallback recipe")
	}

	if got := SelectCheatMeal(nil, 2000, rng); got != nil {
		t.Errorf("SelectCheatMeal(nil) = %v, want nil", got)
	}
}

func TestAssigner_PickExhaustsPool(t *testing.T) {
	pools := Pools{models.MealSnack: {recipe("a", 100), recipe("b", 120)}}
	a := NewAssigner(pools, testRNG(8))

	first, err := a.Pick(models.MealSnack)
	if err != nil {
		t.Fatalf("Pick() returned error: %v", err)
	}
	second, err := a.Pick(models.MealSnack)
	if err != nil {
		t.Fatalf("Pick() returned error: %v", err)
	}
	if first.ID == second.ID {
		t.Errorf("Pick() returned %s twice", first.ID)
	}

	_, err = a.Pick(models.MealSnack)
	var insufficient *InsufficientRecipesError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Pick() error = %v, want *InsufficientRecipesError", err)
	}
	if insufficient.PoolSize != 2 || insufficient.Used != 2 {
		t.Errorf("InsufficientRecipesError = %+v, want PoolSize 2 Used 2", insufficient)
	}
}

func TestAssigner_MealTypesTrackedSeparately(t *testing.T) {
	shared := recipe("shared", 400)
	pools := Pools{
		models.MealBreakfast: {shared},
		models.MealLunch:     {shared},
	}
	a := NewAssigner(pools, testRNG(2))
	if _, err := a.Pick(models.MealBreakfast); err != nil {
		t.Fatalf("Pick(breakfast) returned error: %v", err)
	}
	if _, err := a.Pick(models.MealLunch); err != nil {
		t.Errorf("Pick(lunch) returned error after breakfast used the same recipe: %v", err)
	}
}

func ids(rs []models.Recipe) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}
