// Package dao contains the data-access objects for users, assets and
// maintenance logs.
//
// Each DAO is built on an explicitly owned *gorm.DB handle. Every call runs in
// its own unit of work: reads use a plain session, writes run in exactly one
// transaction which is rolled back on error or panic. Failures are reported
// through the errs taxonomy; caller-input mistakes wrap errs.ErrInvalidArgument
// and never reach the database.
package dao

import (
	"context"
	"time"

	"assettrack/internal/models"
)

// Repository is the capability shared by every DAO.
type Repository[T any] interface {
	Create(ctx context.Context, entity *T) (*T, error)
	Get(ctx context.Context, id uint) (*T, error)
	GetAll(ctx context.Context) ([]T, error)
	Update(ctx context.Context, entity *T) (*T, error)
}

type UserQueries interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetActiveUsers(ctx context.Context, limit int) ([]models.User, error)
}

type AssetQueries interface {
	SetActive(ctx context.Context, id uint, active bool) (*models.Asset, error)
	GetInactiveAssets(ctx context.Context) ([]models.Asset, error)
	GetWithLogs(ctx context.Context, id uint) (*models.Asset, error)
}

type MaintenanceLogQueries interface {
	GetByAsset(ctx context.Context, assetID uint) ([]models.MaintenanceLog, error)
	GetByAssetAndTask(ctx context.Context, assetID uint, taskType models.TaskType) ([]models.MaintenanceLog, error)
	GetByStatus(ctx context.Context, status models.LogStatus) ([]models.MaintenanceLog, error)
	GetByStatusAndAsset(ctx context.Context, status models.LogStatus, assetID uint) ([]models.MaintenanceLog, error)
	GetByPerformedUser(ctx context.Context, userID uint) ([]models.MaintenanceLog, error)
	GetLogsOnActiveAssets(ctx context.Context, limit int) ([]models.MaintenanceLog, error)
}

type UserRepository interface {
	Repository[models.User]
	UserQueries
}

type AssetRepository interface {
	Repository[models.Asset]
	AssetQueries
}

type MaintenanceLogRepository interface {
	Repository[models.MaintenanceLog]
	MaintenanceLogQueries
}

var (
	_ UserRepository           = (*UserDAO)(nil)
	_ AssetRepository          = (*AssetDAO)(nil)
	_ MaintenanceLogRepository = (*MaintenanceLogDAO)(nil)
)

// Observer is notified after every unit of work completes.
type Observer interface {
	ObserveDAO(entity, operation, outcome string, elapsed time.Duration)
}

type options struct {
	observer Observer
}

type Option func(*options)

// WithObserver reports the outcome and duration of every call to o.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}
