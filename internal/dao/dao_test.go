package dao

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"assettrack/internal/errs"
	"assettrack/internal/models"
	"assettrack/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	users  map[string]*models.User
	assets map[string]*models.Asset
	logs   map[string]*models.MaintenanceLog
}

func setupFixture(t *testing.T) fixture {
	t.Helper()

	db := testutil.OpenTestDB(t)
	users, assets, logs, err := testutil.Populate(db)
	require.NoError(t, err)

	return fixture{db: db, users: users, assets: assets, logs: logs}
}

type observation struct {
	entity, operation, outcome string
}

type recordingObserver struct {
	mu   sync.Mutex
	seen []observation
}

func (r *recordingObserver) ObserveDAO(entity, operation, outcome string, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, observation{entity, operation, outcome})
}

func assertKind(t *testing.T, err error, want errs.Kind) {
	t.Helper()
	require.Error(t, err)
	kind, ok := errs.KindOf(err)
	require.True(t, ok, "expected a classified error, got %v", err)
	assert.Equal(t, want, kind, err.Error())
}

func TestUnitOfWork(t *testing.T) {
	ctx := context.Background()

	t.Run("Panic rolls back and surfaces as unknown", func(t *testing.T) {
		db := testutil.OpenTestDB(t)
		uow := newUnitOfWork(db, "user", nil)

		err := uow.write(ctx, "create", "create user failed", func(tx *gorm.DB) error {
			require.NoError(t, tx.Create(&models.User{Email: "ghost@mail.dk", Role: models.RoleAdmin}).Error)
			panic("boom")
		})

		assertKind(t, err, errs.Unknown)
		assert.ErrorContains(t, err, "boom")

		var count int64
		require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("Error rolls back and keeps cause", func(t *testing.T) {
		db := testutil.OpenTestDB(t)
		uow := newUnitOfWork(db, "user", nil)
		cause := errors.New("something broke")

		err := uow.write(ctx, "create", "create user failed", func(tx *gorm.DB) error {
			require.NoError(t, tx.Create(&models.User{Email: "ghost@mail.dk", Role: models.RoleAdmin}).Error)
			return cause
		})

		assertKind(t, err, errs.TransactionFailure)
		assert.ErrorIs(t, err, cause)

		var count int64
		require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("Read failure is a query failure", func(t *testing.T) {
		db := testutil.OpenTestDB(t)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewUserDAO(db).GetAll(cancelled)

		assertKind(t, err, errs.QueryFailure)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Expired deadline is a query failure", func(t *testing.T) {
		db := testutil.OpenTestDB(t)
		expired, cancel := context.WithDeadline(ctx, time.Now().Add(-time.Second))
		defer cancel()

		_, err := NewUserDAO(db).GetAll(expired)

		assertKind(t, err, errs.QueryFailure)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		kind, _ := errs.KindOf(err)
		assert.False(t, kind.Retryable())
	})

	t.Run("Observer sees every outcome", func(t *testing.T) {
		db := testutil.OpenTestDB(t)
		obs := &recordingObserver{}
		users := NewUserDAO(db, WithObserver(obs))

		_, err := users.Create(ctx, &models.User{Email: "a@mail.dk", Role: models.RoleAdmin, Active: true})
		require.NoError(t, err)
		_, err = users.Get(ctx, 999)
		require.Error(t, err)

		assert.Equal(t, []observation{
			{"user", "create", "ok"},
			{"user", "get", "not_found"},
		}, obs.seen)
	})
}
