package backups

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/mealplan/internal/backup"
	"github.com/julianstephens/mealplan/internal/cli"
	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *sqlite.Store) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &cli.Context{Store: store}, store
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, store := setupTestDB(t)

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}

	backups, err := backup.NewManager(store.GetConfigPath()).List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
}

func TestBackupRestoreCmd(t *testing.T) {
	ctx, store := setupTestDB(t)

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	backups, err := backup.NewManager(store.GetConfigPath()).List()
	if err != nil || len(backups) != 1 {
		t.Fatalf("List() = %v, %v", backups, err)
	}

	if err := store.AddIngredient(models.Ingredient{ID: "i1", Name: "Rice"}); err != nil {
		t.Fatalf("AddIngredient() failed: %v", err)
	}

	t.Run("declined", func(t *testing.T) {
		ctx.In = strings.NewReader("n\n")
		if err := (&BackupRestoreCmd{BackupFile: backups[0].Name}).Run(ctx); err != nil {
			t.Fatalf("restore failed: %v", err)
		}
		ingredients, err := store.GetAllIngredients()
		if err != nil {
			t.Fatalf("GetAllIngredients() failed: %v", err)
		}
		if len(ingredients) != 1 {
			t.Errorf("declined restore changed the database")
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		ctx.In = strings.NewReader("yes\n")
		if err := (&BackupRestoreCmd{BackupFile: backups[0].Name}).Run(ctx); err != nil {
			t.Fatalf("restore failed: %v", err)
		}
		if err := store.Load(); err != nil {
			t.Fatalf("Load() after restore failed: %v", err)
		}
		ingredients, err := store.GetAllIngredients()
		if err != nil {
			t.Fatalf("GetAllIngredients() failed: %v", err)
		}
		if len(ingredients) != 0 {
			t.Errorf("expected the pre-ingredient snapshot, got %d ingredients", len(ingredients))
		}
	})
}

func TestBackupRestoreCmd_NotFound(t *testing.T) {
	ctx, _ := setupTestDB(t)

	cmd := &BackupRestoreCmd{BackupFile: "mealplan-19990101-000000.db", Yes: true}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected an error for a missing backup")
	}
}
