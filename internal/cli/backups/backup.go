package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/mealplan/internal/backup"
	"github.com/julianstephens/mealplan/internal/cli"
	"github.com/julianstephens/mealplan/internal/constants"
	"github.com/julianstephens/mealplan/internal/storage/sqlite"
)

// requireSQLite rejects backup commands against PostgreSQL, which has its own tooling
func requireSQLite(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return fmt.Errorf("backups are only supported for SQLite storage; use pg_dump for PostgreSQL")
	}
	return nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	if err := requireSQLite(ctx); err != nil {
		return err
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backupPath, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	if err := requireSQLite(ctx); err != nil {
		return err
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		fmt.Printf("  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04:05"), b.Name, float64(b.Size)/1024.0)
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	if err := requireSQLite(ctx); err != nil {
		return err
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	// a file in the working directory wins over one in the backup directory
	backupPath := c.BackupFile
	if _, err := os.Stat(backupPath); err != nil {
		backupPath = mgr.Resolve(c.BackupFile)
	}
	if abs, err := filepath.Abs(backupPath); err == nil {
		backupPath = abs
	}
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("backup file not found: tried %s and %s", c.BackupFile, mgr.Dir())
	}

	if !c.Yes {
		fmt.Println("⚠️  WARNING: This will replace your current database with the backup.")
		fmt.Println("⚠️  IMPORTANT: Stop any running 'mealplan tui' or 'mealplan serve' first.")
		fmt.Println("A backup of your current database will be created before restoring.")
		fmt.Printf("\nRestore from: %s\n", backupPath)
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database connection: %v\n", err)
	}

	previous, err := mgr.Restore(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Println("✓ Database restored successfully!")
	if previous != "" {
		fmt.Printf("  Previous database saved as %s\n", filepath.Base(previous))
	}
	return nil
}
