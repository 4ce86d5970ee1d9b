package settings

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/mealplan/internal/cli"
	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return &cli.Context{Store: store}, cleanup
}

func TestSettingsCmd_List(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{List: true}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	people := 4
	calories := 2400.0
	cheat := true
	cmd := &SettingsCmd{
		DefaultNumPeople:      &people,
		DefaultDailyCalories:  &calories,
		DefaultAllowCheatMeal: &cheat,
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	got, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}
	want := models.DefaultSettings()
	want.DefaultNumPeople = 4
	want.DefaultDailyCalories = 2400
	want.DefaultAllowCheatMeal = true
	if got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
}

func TestSettingsCmd_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{name: "zero people", cmd: SettingsCmd{DefaultNumPeople: intPtr(0)}},
		{name: "margin above half", cmd: SettingsCmd{DefaultErrorMargin: floatPtr(0.6)}},
		{name: "repeat window too long", cmd: SettingsCmd{DefaultMaxRepeatingDays: intPtr(4)}},
		{name: "no calories", cmd: SettingsCmd{DefaultDailyCalories: floatPtr(0)}},
		{name: "zero retries", cmd: SettingsCmd{DBMaxRetries: intPtr(0)}},
		{name: "negative delay", cmd: SettingsCmd{DBRetryDelayMs: intPtr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cleanup := setupTestDB(t)
			defer cleanup()

			if err := tt.cmd.Run(ctx); err == nil {
				t.Fatal("expected an error")
			}
			got, err := ctx.Store.GetSettings()
			if err != nil {
				t.Fatalf("GetSettings() failed: %v", err)
			}
			if got != models.DefaultSettings() {
				t.Errorf("settings changed after a rejected update: %+v", got)
			}
		})
	}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
