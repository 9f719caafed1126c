package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"assettrack/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	log := New(config.LogConfig{Level: "warn", Format: "json"})
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())

	log = New(config.LogConfig{Level: "bogus"})
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestGormTrace(t *testing.T) {
	query := func() (string, int64) { return "SELECT * FROM users", 3 }

	t.Run("Logs failed queries", func(t *testing.T) {
		var buf bytes.Buffer
		g := NewGorm(zerolog.New(&buf), false)

		g.Trace(context.Background(), time.Now(), query, errors.New("boom"))

		assert.Contains(t, buf.String(), "query failed")
		assert.Contains(t, buf.String(), "SELECT * FROM users")
	})

	t.Run("Ignores record not found", func(t *testing.T) {
		var buf bytes.Buffer
		g := NewGorm(zerolog.New(&buf), false)

		g.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)

		assert.Empty(t, buf.String())
	})

	t.Run("Traces every query in debug mode", func(t *testing.T) {
		var buf bytes.Buffer
		g := NewGorm(zerolog.New(&buf), true)

		g.Trace(context.Background(), time.Now(), query, nil)

		assert.Contains(t, buf.String(), `"rows":3`)
	})

	t.Run("Silent mode writes nothing", func(t *testing.T) {
		var buf bytes.Buffer
		g := NewGorm(zerolog.New(&buf), true).LogMode(gormlogger.Silent)

		g.Trace(context.Background(), time.Now(), query, errors.New("boom"))

		assert.Empty(t, buf.String())
	})
}
