package models

import (
	"path/filepath"
	"testing"
	"time"

	"assettrack/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnums(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("admin").Valid())
	assert.True(t, LogStatusFailed.Valid())
	assert.False(t, LogStatus("PENDING").Valid())
	assert.True(t, TaskProduction.Valid())
	assert.False(t, TaskType("").Valid())
}

func TestAssetAddLog(t *testing.T) {
	asset := &Asset{ID: 7, Name: "Machine A"}
	log := &MaintenanceLog{Comment: "done", PerformedDate: Date(2024, time.January, 15)}

	asset.AddLog(log)

	require.Len(t, asset.Logs, 1)
	assert.Equal(t, uint(7), log.AssetID)
	assert.Same(t, asset, log.Asset)
	assert.Equal(t, "done", asset.Logs[0].Comment)
}

func TestOpen(t *testing.T) {
	t.Run("SQLite with migration", func(t *testing.T) {
		cfg := config.DatabaseConfig{
			Type:   "sqlite",
			SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
		}

		db, err := Open(cfg, zerolog.Nop())
		require.NoError(t, err)
		defer Close(db)

		require.NoError(t, Migrate(db))
		for _, table := range []string{"users", "assets", "maintenance_logs"} {
			assert.True(t, db.Migrator().HasTable(table), table)
		}

		var fk int
		require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
		assert.Equal(t, 1, fk)
	})

	t.Run("Foreign keys point from logs to assets and users", func(t *testing.T) {
		cfg := config.DatabaseConfig{
			Type:   "sqlite",
			SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
		}

		db, err := Open(cfg, zerolog.Nop())
		require.NoError(t, err)
		defer Close(db)
		require.NoError(t, Migrate(db))

		type foreignKey struct {
			Table string `gorm:"column:table"`
			From  string `gorm:"column:from"`
			To    string `gorm:"column:to"`
		}

		var assetKeys []foreignKey
		require.NoError(t, db.Raw("PRAGMA foreign_key_list(assets)").Scan(&assetKeys).Error)
		assert.Empty(t, assetKeys)

		var logKeys []foreignKey
		require.NoError(t, db.Raw("PRAGMA foreign_key_list(maintenance_logs)").Scan(&logKeys).Error)
		assert.Contains(t, logKeys, foreignKey{Table: "assets", From: "asset_id", To: "asset_id"})
		assert.Contains(t, logKeys, foreignKey{Table: "users", From: "performed_by_user_id", To: "user_id"})

		asset := &Asset{Name: "Machine A", Active: true}
		require.NoError(t, db.Create(asset).Error)
		user := &User{FirstName: "John", LastName: "Doe", Email: "john@mail.dk", Role: RoleTechnician, Active: true}
		require.NoError(t, db.Create(user).Error)

		log := &MaintenanceLog{
			PerformedDate:     Date(2024, time.January, 15),
			Status:            LogStatusDone,
			TaskType:          TaskMaintenance,
			AssetID:           asset.ID,
			PerformedByUserID: user.ID,
		}
		require.NoError(t, db.Create(log).Error)

		orphan := &MaintenanceLog{
			PerformedDate:     Date(2024, time.January, 16),
			Status:            LogStatusDone,
			TaskType:          TaskMaintenance,
			AssetID:           asset.ID + 100,
			PerformedByUserID: user.ID,
		}
		assert.Error(t, db.Create(orphan).Error)
	})

	t.Run("Unsupported type", func(t *testing.T) {
		_, err := Open(config.DatabaseConfig{Type: "oracle"}, zerolog.Nop())
		assert.ErrorContains(t, err, "unsupported database type")
	})

	t.Run("Invalid pool lifetime", func(t *testing.T) {
		cfg := config.DatabaseConfig{
			Type:   "sqlite",
			SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
			Pool:   config.PoolConfig{ConnMaxLifetime: "soon"},
		}
		_, err := Open(cfg, zerolog.Nop())
		assert.ErrorContains(t, err, "conn_max_lifetime")
	})
}
