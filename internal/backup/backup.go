// Package backup snapshots the SQLite database file into a rotating set of copies.
package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/mealplan/internal/constants"
	"github.com/julianstephens/mealplan/internal/logger"
)

const stampFormat = "20060102-150405"

var ErrNoDatabase = errors.New("database does not exist")

type Info struct {
	Name      string
	Path      string
	Timestamp time.Time
	Size      int64
}

type Manager struct {
	dbPath string
	dir    string
	keep   int
	now    func() time.Time
}

// NewManager keeps backups in a directory next to the database file
func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		keep:   constants.MaxBackups,
		now:    time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.dir
}

// Create snapshots the database and prunes the oldest backups beyond the retention limit
func (m *Manager) Create() (string, error) {
	path, err := m.snapshot()
	if err != nil {
		return "", err
	}
	if err := m.prune(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return path, nil
}

func (m *Manager) snapshot() (string, error) {
	if _, err := os.Stat(m.dbPath); errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNoDatabase, m.dbPath)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	dest, err := m.nextPath()
	if err != nil {
		return "", err
	}
	if err := vacuumInto(m.dbPath, dest); err != nil {
		return "", fmt.Errorf("failed to back up database: %w", err)
	}
	logger.Debug("Backup created", "path", dest)
	return dest, nil
}

// nextPath returns an unused file name for the current time, adding -N on collision
func (m *Manager) nextPath() (string, error) {
	stamp := m.now().Format(stampFormat)
	path := filepath.Join(m.dir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	for n := 1; n <= 100; n++ {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		name := fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, stamp, n, constants.BackupFileSuffix)
		path = filepath.Join(m.dir, name)
	}
	return "", fmt.Errorf("failed to generate unique backup filename")
}

func vacuumInto(src, dest string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	if err := checkSQLite(db); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dest); err != nil {
		logger.Warn("VACUUM INTO failed, falling back to file copy", "error", err)
		return copyFile(src, dest)
	}
	return nil
}

func checkSQLite(db *sql.DB) error {
	var n int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&n)
}

// parseName extracts the timestamp from mealplan-YYYYMMDD-HHMMSS[-N].db
func parseName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)
	if len(stamp) > len(stampFormat) {
		counter := strings.TrimPrefix(stamp[len(stampFormat):], "-")
		if _, err := strconv.Atoi(counter); err != nil {
			return time.Time{}, false
		}
		stamp = stamp[:len(stampFormat)]
	}
	ts, err := time.ParseInLocation(stampFormat, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// List returns backups newest first. Files that do not match the naming scheme are ignored.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Name:      entry.Name(),
			Path:      filepath.Join(m.dir, entry.Name()),
			Timestamp: ts,
			Size:      fi.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Name > backups[j].Name
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func (m *Manager) prune() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := m.keep; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Name, err)
		}
	}
	return nil
}

// Resolve accepts a bare backup file name or a path
func (m *Manager) Resolve(nameOrPath string) string {
	if filepath.Base(nameOrPath) == nameOrPath {
		return filepath.Join(m.dir, nameOrPath)
	}
	return nameOrPath
}

// Restore replaces the database with the given backup. The current database, if any,
// is snapshotted first without rotation; its path is returned.
func (m *Manager) Restore(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); err != nil {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := verify(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous string
	if _, err := os.Stat(m.dbPath); err == nil {
		previous, err = m.snapshot()
		if err != nil {
			return "", fmt.Errorf("failed to back up current database before restore: %w", err)
		}
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tmp); err != nil {
		return previous, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("Failed to remove temporary restore file", "path", tmp, "error", rmErr)
		}
		return previous, fmt.Errorf("failed to restore database: %w", err)
	}

	logger.Info("Database restored", "from", backupPath)
	return previous, nil
}

// verify requires a readable SQLite file that carries a mealplan schema
func verify(path string) error {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	var n int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_version'").Scan(&n)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.New("not a mealplan database (missing schema_version)")
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
