package migration

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) (*sql.DB, func()) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	return db, func() { db.Close() }
}

func migrationFS(files map[string]string) fstest.MapFS {
	mfs := fstest.MapFS{}
	for name, content := range files {
		mfs[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return mfs
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	if err := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name = ?", name).Scan(&count); err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	return count > 0
}

func TestGetCurrentVersion_FreshDatabase(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, migrationFS(nil), DriverSQLite)
	version, err := runner.GetCurrentVersion(context.Background())
	if err != nil {
		t.Fatalf("GetCurrentVersion() returned error: %v", err)
	}
	if version != 0 {
		t.Errorf("GetCurrentVersion() = %d, want 0", version)
	}

	if err := runner.SetVersion(context.Background(), 4); err != nil {
		t.Fatalf("SetVersion() returned error: %v", err)
	}
	version, _ = runner.GetCurrentVersion(context.Background())
	if version != 4 {
		t.Errorf("GetCurrentVersion() after SetVersion(4) = %d, want 4", version)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	runner := NewRunner(nil, migrationFS(map[string]string{
		"002_plans.sql":   "CREATE TABLE meal_plans (id TEXT);",
		"001_recipes.sql": "CREATE TABLE recipes (id TEXT);",
		"README.md":       "ignored",
	}), DriverSQLite)

	migrations, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles() returned error: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("ReadMigrationFiles() returned %d migrations, want 2", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "recipes" {
		t.Errorf("migrations[0] = %d %s, want 1 recipes", migrations[0].Version, migrations[0].Name)
	}
	if migrations[1].Version != 2 || migrations[1].Name != "plans" {
		t.Errorf("migrations[1] = %d %s, want 2 plans", migrations[1].Version, migrations[1].Name)
	}
}

func TestReadMigrationFiles_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{"missing underscore", map[string]string{"001.sql": "SELECT 1;"}, "invalid migration filename"},
		{"non-numeric version", map[string]string{"abc_init.sql": "SELECT 1;"}, "invalid version number"},
		{"zero version", map[string]string{"000_init.sql": "SELECT 1;"}, "must be at least 1"},
		{"duplicate version", map[string]string{"001_a.sql": "SELECT 1;", "01_b.sql": "SELECT 1;"}, "duplicate migration version 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(nil, migrationFS(tt.files), DriverSQLite).ReadMigrationFiles()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ReadMigrationFiles() error = %v, want to contain %q", err, tt.want)
			}
		})
	}
}

func TestApplyMigrations_FromScratch(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, migrationFS(map[string]string{
		"001_recipes.sql": "CREATE TABLE recipes (id TEXT PRIMARY KEY, name TEXT NOT NULL);",
		"002_plans.sql":   "CREATE TABLE meal_plans (id TEXT PRIMARY KEY);",
	}), DriverSQLite)

	var logs []string
	applied, err := runner.ApplyMigrations(context.Background(), func(msg string) {
		logs = append(logs, msg)
	})
	if err != nil {
		t.Fatalf("ApplyMigrations() returned error: %v", err)
	}
	if applied != 2 {
		t.Errorf("ApplyMigrations() applied %d, want 2", applied)
	}

	for _, table := range []string{"recipes", "meal_plans"} {
		if !tableExists(t, db, table) {
			t.Errorf("table %s missing after migration", table)
		}
	}

	version, _ := runner.GetCurrentVersion(context.Background())
	if version != 2 {
		t.Errorf("schema version = %d, want 2", version)
	}
	if !strings.Contains(strings.Join(logs, "\n"), "✓ Migration 2 applied successfully") {
		t.Errorf("logs missing success line: %v", logs)
	}
}

func TestApplyMigrations_Incremental(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	files := map[string]string{"001_recipes.sql": "CREATE TABLE recipes (id TEXT PRIMARY KEY);"}
	if _, err := NewRunner(db, migrationFS(files), DriverSQLite).ApplyMigrations(context.Background(), nil); err != nil {
		t.Fatalf("first ApplyMigrations() returned error: %v", err)
	}

	files["002_servings.sql"] = "ALTER TABLE recipes ADD COLUMN servings INTEGER NOT NULL DEFAULT 1;"
	runner := NewRunner(db, migrationFS(files), DriverSQLite)

	st, err := runner.Status(context.Background())
	if err != nil {
		t.Fatalf("Status() returned error: %v", err)
	}
	if st.Current != 1 || st.Latest != 2 || len(st.Pending) != 1 || st.UpToDate() {
		t.Errorf("Status() = %+v, want current 1 latest 2 with one pending", st)
	}

	applied, err := runner.ApplyMigrations(context.Background(), nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations() returned error: %v", err)
	}
	if applied != 1 {
		t.Errorf("ApplyMigrations() applied %d, want 1", applied)
	}

	applied, err = runner.ApplyMigrations(context.Background(), nil)
	if err != nil || applied != 0 {
		t.Errorf("re-running ApplyMigrations() = (%d, %v), want (0, nil)", applied, err)
	}
}

func TestApplyMigrations_RollbackOnError(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, migrationFS(map[string]string{
		"001_recipes.sql": "CREATE TABLE recipes (id TEXT PRIMARY KEY);",
		"002_broken.sql":  "CREATE TABLE ingredients (id TEXT PRIMARY KEY); THIS IS NOT SQL;",
	}), DriverSQLite)

	applied, err := runner.ApplyMigrations(context.Background(), nil)
	if err == nil {
		t.Fatal("ApplyMigrations() expected error for broken migration")
	}
	if applied != 1 {
		t.Errorf("ApplyMigrations() applied %d before failing, want 1", applied)
	}

	version, _ := runner.GetCurrentVersion(context.Background())
	if version != 1 {
		t.Errorf("schema version = %d, want 1", version)
	}
	if tableExists(t, db, "ingredients") {
		t.Error("table from failed migration was not rolled back")
	}
}

func TestValidateVersion_NewerDatabase(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, migrationFS(map[string]string{
		"001_recipes.sql": "CREATE TABLE recipes (id TEXT PRIMARY KEY);",
	}), DriverSQLite)

	if err := runner.SetVersion(context.Background(), 5); err != nil {
		t.Fatalf("SetVersion() returned error: %v", err)
	}

	err := runner.ValidateVersion(context.Background())
	if err == nil || !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("ValidateVersion() error = %v, want newer-schema error", err)
	}
	if _, err := runner.ApplyMigrations(context.Background(), nil); err == nil {
		t.Error("ApplyMigrations() on a newer database expected error")
	}
}

func TestGetLatestVersion(t *testing.T) {
	runner := NewRunner(nil, migrationFS(map[string]string{
		"001_a.sql": "SELECT 1;",
		"007_b.sql": "SELECT 1;",
	}), DriverSQLite)

	latest, err := runner.GetLatestVersion()
	if err != nil {
		t.Fatalf("GetLatestVersion() returned error: %v", err)
	}
	if latest != 7 {
		t.Errorf("GetLatestVersion() = %d, want 7", latest)
	}

	empty := NewRunner(nil, migrationFS(nil), DriverSQLite)
	if latest, _ := empty.GetLatestVersion(); latest != 0 {
		t.Errorf("GetLatestVersion() on empty fs = %d, want 0", latest)
	}
}
