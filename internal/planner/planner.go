package planner

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/julianstephens/mealplan/internal/logger"
	"github.com/julianstephens/mealplan/internal/models"
)

// Planner generates weekly meal plans. Its random source is guarded by a mutex so
// one Planner can serve concurrent callers; every run gets its own Assigner.
type Planner struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a planner drawing from src
func New(src rand.Source) *Planner {
	return &Planner{rng: rand.New(src)}
}

// NewSeeded creates a planner whose output is reproducible for a given seed and catalog order
func NewSeeded(seed uint64) *Planner {
	return New(rand.NewPCG(seed, seed))
}

// NewUnseeded creates a planner seeded from the clock
func NewUnseeded() *Planner {
	return NewSeeded(uint64(time.Now().UnixNano()))
}

// NextSeed draws a seed for one plan. NewSeeded(seed).Generate over the same catalog
// and constraints reproduces that plan.
func (p *Planner) NextSeed() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Uint64()
}

// Generate assigns a recipe to each of the 28 weekly slots
func (p *Planner) Generate(catalog []models.Recipe, c models.PlanConstraints) ([]models.SlotAssignment, error) {
	if err := c.Validate(); err != nil {
		return nil, &InvalidConfigurationError{Err: err}
	}
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}

	groups, err := DayPatterns(c.MaxRepeatingDays)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	pools, err := Classify(catalog, c.DailyCalories, p.rng)
	if err != nil {
		return nil, err
	}

	var cheat *models.Recipe
	if c.AllowCheatMeal {
		cheat = SelectCheatMeal(catalog, c.DailyCalories, p.rng)
	}

	logger.Debug("Generating meal plan",
		"recipes", len(catalog),
		"groups", len(groups),
		"breakfast_pool", len(pools[models.MealBreakfast]),
		"lunch_pool", len(pools[models.MealLunch]),
		"dinner_pool", len(pools[models.MealDinner]),
		"snack_pool", len(pools[models.MealSnack]),
		"cheat", cheat != nil,
	)

	return NewAssigner(pools, p.rng).Assign(groups, cheat)
}
