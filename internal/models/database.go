package models

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"assettrack/internal/config"
	"assettrack/internal/logger"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the configured database and applies the pool settings.
// The returned handle is safe for concurrent use and is shared by every DAO.
func Open(cfg config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	var lifetime time.Duration
	if cfg.Pool.ConnMaxLifetime != "" {
		if lifetime, err = time.ParseDuration(cfg.Pool.ConnMaxLifetime); err != nil {
			return nil, fmt.Errorf("invalid conn_max_lifetime: %w", err)
		}
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.NewGorm(log, cfg.Debug),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	if cfg.Type == "sqlite" {
		// sqlite allows a single writer; serialising connections avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else {
		if cfg.Pool.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.Pool.MaxOpenConns)
		}
		if cfg.Pool.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.Pool.MaxIdleConns)
		}
	}
	if lifetime > 0 {
		sqlDB.SetConnMaxLifetime(lifetime)
	}

	return db, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Type {
	case "sqlite":
		return sqlite.Open(SQLiteDSN(cfg.SQLite.Path)), nil
	case "mysql":
		dsn := mysqldriver.Config{
			User:                 cfg.MySQL.Username,
			Passwd:               cfg.MySQL.Password,
			Net:                  "tcp",
			Addr:                 net.JoinHostPort(cfg.MySQL.Host, strconv.Itoa(cfg.MySQL.Port)),
			DBName:               cfg.MySQL.Database,
			Params:               map[string]string{"charset": cfg.MySQL.Charset},
			ParseTime:            true,
			Loc:                  time.UTC,
			AllowNativePasswords: true,
		}
		return mysql.Open(dsn.FormatDSN()), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.Postgres.Host,
			cfg.Postgres.Port,
			cfg.Postgres.Username,
			cfg.Postgres.Password,
			cfg.Postgres.Database,
			cfg.Postgres.SSLMode,
		)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}

// SQLiteDSN enables foreign key enforcement, which sqlite leaves off by default.
func SQLiteDSN(path string) string {
	return path + "?_foreign_keys=on&_busy_timeout=5000"
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &Asset{}, &MaintenanceLog{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
