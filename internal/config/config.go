package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override the config file.
// Nested keys are separated by a double underscore: ASSETTRACK_DATABASE__TYPE.
const EnvPrefix = "ASSETTRACK_"

type Config struct {
	Server      ServerConfig      `yaml:"server" koanf:"server"`
	Database    DatabaseConfig    `yaml:"database" koanf:"database"`
	JWT         JWTConfig         `yaml:"jwt" koanf:"jwt"`
	Security    SecurityConfig    `yaml:"security" koanf:"security"`
	Redis       RedisConfig       `yaml:"redis" koanf:"redis"`
	Events      EventsConfig      `yaml:"events" koanf:"events"`
	Log         LogConfig         `yaml:"log" koanf:"log"`
	DefaultUser DefaultUserConfig `yaml:"default_user" koanf:"default_user"`
}

type ServerConfig struct {
	Host string `yaml:"host" koanf:"host"`
	Port int    `yaml:"port" koanf:"port" validate:"min=0,max=65535"`
	Mode string `yaml:"mode" koanf:"mode" validate:"omitempty,oneof=debug release test"`
}

type DatabaseConfig struct {
	Type     string         `yaml:"type" koanf:"type" validate:"required,oneof=sqlite mysql postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite" koanf:"sqlite"`
	MySQL    MySQLConfig    `yaml:"mysql" koanf:"mysql"`
	Postgres PostgresConfig `yaml:"postgres" koanf:"postgres"`
	Pool     PoolConfig     `yaml:"pool" koanf:"pool"`
	// Debug turns on SQL tracing through the application logger.
	Debug bool `yaml:"debug" koanf:"debug"`
}

type SQLiteConfig struct {
	Path string `yaml:"path" koanf:"path"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" koanf:"host"`
	Port     int    `yaml:"port" koanf:"port"`
	Username string `yaml:"username" koanf:"username"`
	Password string `yaml:"password" koanf:"password"`
	Database string `yaml:"database" koanf:"database"`
	Charset  string `yaml:"charset" koanf:"charset"`
}

type PostgresConfig struct {
	Host     string `yaml:"host" koanf:"host"`
	Port     int    `yaml:"port" koanf:"port"`
	Username string `yaml:"username" koanf:"username"`
	Password string `yaml:"password" koanf:"password"`
	Database string `yaml:"database" koanf:"database"`
	SSLMode  string `yaml:"ssl_mode" koanf:"ssl_mode"`
}

// PoolConfig tunes the shared connection pool. Zero values keep driver defaults.
type PoolConfig struct {
	MaxOpenConns    int    `yaml:"max_open_conns" koanf:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int    `yaml:"max_idle_conns" koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" koanf:"conn_max_lifetime"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret" koanf:"secret"`
	ExpiresIn string `yaml:"expires_in" koanf:"expires_in"`
	Issuer    string `yaml:"issuer" koanf:"issuer"`
}

type SecurityConfig struct {
	BcryptCost int             `yaml:"bcrypt_cost" koanf:"bcrypt_cost" validate:"omitempty,min=4,max=31"`
	RateLimit  RateLimitConfig `yaml:"rate_limit" koanf:"rate_limit"`
}

type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled" koanf:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute" koanf:"requests_per_minute" validate:"min=0"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" koanf:"addr"`
	Password string `yaml:"password" koanf:"password"`
	DB       int    `yaml:"db" koanf:"db"`
}

type EventsConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	URL     string `yaml:"url" koanf:"url"`
	Queue   string `yaml:"queue" koanf:"queue"`
}

type LogConfig struct {
	Level  string `yaml:"level" koanf:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Format string `yaml:"format" koanf:"format" validate:"omitempty,oneof=json console"`
}

type DefaultUserConfig struct {
	Email     string `yaml:"email" koanf:"email" validate:"omitempty,email"`
	Password  string `yaml:"password" koanf:"password"`
	FirstName string `yaml:"first_name" koanf:"first_name"`
	LastName  string `yaml:"last_name" koanf:"last_name"`
	Phone     string `yaml:"phone" koanf:"phone"`
	Role      string `yaml:"role" koanf:"role" validate:"omitempty,oneof=TECHNICIAN MANAGER ADMIN"`
}

// Load reads the configuration file, an optional .env file and environment variables
func Load(configPath string) (*Config, error) {
	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	// Override with environment variables
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Ensure data directory exists for SQLite
	if cfg.Database.Type == "sqlite" {
		dataDir := filepath.Dir(cfg.Database.SQLite.Path)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return fmt.Errorf("failed to load environment overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.MySQL.Charset == "" {
		c.Database.MySQL.Charset = "utf8mb4"
	}
	if c.Database.Postgres.SSLMode == "" {
		c.Database.Postgres.SSLMode = "disable"
	}
	if c.Security.BcryptCost == 0 {
		c.Security.BcryptCost = 12
	}
	if c.JWT.ExpiresIn == "" {
		c.JWT.ExpiresIn = "24h"
	}
	if c.Events.Queue == "" {
		c.Events.Queue = "maintenance.log.recorded"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// Validate checks struct constraints and the per-database requirements.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch c.Database.Type {
	case "sqlite":
		if c.Database.SQLite.Path == "" {
			return fmt.Errorf("SQLite path is required")
		}
	case "mysql":
		if c.Database.MySQL.Username == "" {
			return fmt.Errorf("MySQL username is required")
		}
		if c.Database.MySQL.Database == "" {
			return fmt.Errorf("MySQL database name is required")
		}
	case "postgres":
		if c.Database.Postgres.Username == "" {
			return fmt.Errorf("Postgres username is required")
		}
		if c.Database.Postgres.Database == "" {
			return fmt.Errorf("Postgres database name is required")
		}
	}

	if c.Events.Enabled && c.Events.URL == "" {
		return fmt.Errorf("events URL is required when events are enabled")
	}
	if c.Security.RateLimit.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required when rate limiting is enabled")
	}
	return nil
}
