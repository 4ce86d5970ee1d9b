package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/mealplan/internal/backup"
	"github.com/julianstephens/mealplan/internal/cli"
	"github.com/julianstephens/mealplan/internal/constants"
	"github.com/julianstephens/mealplan/internal/storage/sqlite"
)

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(ctx *cli.Context) error
	needsDB  bool // skipped when the database is unreachable
	warnOnly bool // reported without failing the run
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Settings readable", run: checkSettings, needsDB: true},
	{name: "Recipe ingredients", run: checkRecipeIngredients, needsDB: true},
	{name: "Plan completeness", run: checkPlanCompleteness, needsDB: true},
	{name: "Catalog validation", run: checkCatalog, needsDB: true, warnOnly: true},
	{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone() }},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	st, err := ctx.Store.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema status: %w", err)
	}
	if st.Current > st.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	st, err := ctx.Store.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema status: %w", err)
	}
	if !st.UpToDate() {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'mealplan migrate')", st.Current, st.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'mealplan backup create'")
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return nil
}

func checkRecipeIngredients(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}
	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	var orphaned int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM recipe_ingredients ri
		LEFT JOIN ingredients i ON ri.ingredient_id = i.id
		WHERE i.id IS NULL
	`).Scan(&orphaned)
	if err != nil {
		return fmt.Errorf("failed to check recipe ingredients: %w", err)
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d recipe ingredient lines referencing missing ingredients", orphaned)
	}
	return nil
}

func checkPlanCompleteness(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}
	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	var incomplete int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM meal_plans p
		WHERE (SELECT COUNT(*) FROM plan_assignments a WHERE a.plan_id = p.id) != ?
	`, constants.DaysPerWeek*4).Scan(&incomplete)
	if err != nil {
		return fmt.Errorf("failed to check plan assignments: %w", err)
	}
	if incomplete > 0 {
		return fmt.Errorf("found %d meal plans without a full week of assignments", incomplete)
	}
	return nil
}

func checkCatalog(ctx *cli.Context) error {
	if ctx.Service == nil {
		return nil
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	result, err := ctx.Service.ValidateCatalog(ctx.Context(), settings.DefaultMaxRepeatingDays)
	if err != nil {
		return err
	}
	if result.HasConflicts() {
		return fmt.Errorf("%d catalog conflicts found (run 'mealplan validate' for details)", len(result.Conflicts))
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
