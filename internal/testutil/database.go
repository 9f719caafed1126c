// Package testutil opens throwaway databases and seeds them with a known data
// set for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"assettrack/internal/config"
	"assettrack/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// OpenTestDB opens a migrated sqlite database in a temporary directory. The
// database is closed when the test finishes.
func OpenTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Type:   "sqlite",
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	}
	db, err := models.Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := models.Close(db); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	if err := models.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// Reset removes every row from the application tables, children first.
func Reset(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		return db.Exec("TRUNCATE TABLE maintenance_logs, assets, users RESTART IDENTITY CASCADE").Error
	}
	for _, table := range []string{"maintenance_logs", "assets", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
