package dao

import (
	"context"

	"assettrack/internal/errs"
	"assettrack/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MaintenanceLogDAO struct {
	uow unitOfWork
}

func NewMaintenanceLogDAO(db *gorm.DB, opts ...Option) *MaintenanceLogDAO {
	return &MaintenanceLogDAO{uow: newUnitOfWork(db, "maintenance_log", opts)}
}

// withRefs loads the asset and user each log points at.
func withRefs(db *gorm.DB) *gorm.DB {
	return db.Preload("Asset").Preload("PerformedBy")
}

// Create inserts log. When log.Asset or log.PerformedBy are set their IDs take
// precedence over the scalar foreign keys. Referenced rows are never written.
func (d *MaintenanceLogDAO) Create(ctx context.Context, log *models.MaintenanceLog) (*models.MaintenanceLog, error) {
	if log == nil {
		return nil, errs.InvalidArgument("maintenance log cannot be nil")
	}
	if !log.Status.Valid() {
		return nil, errs.InvalidArgument("status must be DONE or FAILED")
	}
	if !log.TaskType.Valid() {
		return nil, errs.InvalidArgument("task type must be MAINTENANCE, PRODUCTION or ERROR")
	}
	if log.Asset != nil && log.Asset.ID != 0 {
		log.AssetID = log.Asset.ID
	}
	if log.PerformedBy != nil && log.PerformedBy.ID != 0 {
		log.PerformedByUserID = log.PerformedBy.ID
	}

	err := d.uow.write(ctx, "create", "create maintenance log failed", func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(log).Error
	})
	if err != nil {
		return nil, err
	}
	return log, nil
}

func (d *MaintenanceLogDAO) Get(ctx context.Context, id uint) (*models.MaintenanceLog, error) {
	if id == 0 {
		return nil, errs.InvalidArgument("maintenance log id is required")
	}

	var log models.MaintenanceLog
	err := d.uow.read(ctx, "get", "get maintenance log failed", func(db *gorm.DB) error {
		return notFound(withRefs(db).First(&log, id).Error, "maintenance log not found")
	})
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (d *MaintenanceLogDAO) GetAll(ctx context.Context) ([]models.MaintenanceLog, error) {
	return d.find(ctx, "get_all", func(db *gorm.DB) *gorm.DB { return db })
}

// Update always fails; logs are immutable once written.
func (d *MaintenanceLogDAO) Update(ctx context.Context, log *models.MaintenanceLog) (*models.MaintenanceLog, error) {
	return nil, errs.Unsupported("maintenance logs are immutable")
}

func (d *MaintenanceLogDAO) GetByAsset(ctx context.Context, assetID uint) ([]models.MaintenanceLog, error) {
	if assetID == 0 {
		return nil, errs.InvalidArgument("asset id is required")
	}
	return d.find(ctx, "get_by_asset", func(db *gorm.DB) *gorm.DB {
		return db.Where("asset_id = ?", assetID)
	})
}

func (d *MaintenanceLogDAO) GetByAssetAndTask(ctx context.Context, assetID uint, taskType models.TaskType) ([]models.MaintenanceLog, error) {
	if assetID == 0 {
		return nil, errs.InvalidArgument("asset id is required")
	}
	if !taskType.Valid() {
		return nil, errs.InvalidArgument("task type is required")
	}
	return d.find(ctx, "get_by_asset_and_task", func(db *gorm.DB) *gorm.DB {
		return db.Where("asset_id = ? AND task_type = ?", assetID, taskType)
	})
}

func (d *MaintenanceLogDAO) GetByStatus(ctx context.Context, status models.LogStatus) ([]models.MaintenanceLog, error) {
	if !status.Valid() {
		return nil, errs.InvalidArgument("status is required")
	}
	return d.find(ctx, "get_by_status", func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", status)
	})
}

func (d *MaintenanceLogDAO) GetByStatusAndAsset(ctx context.Context, status models.LogStatus, assetID uint) ([]models.MaintenanceLog, error) {
	if !status.Valid() {
		return nil, errs.InvalidArgument("status is required")
	}
	if assetID == 0 {
		return nil, errs.InvalidArgument("asset id is required")
	}
	return d.find(ctx, "get_by_status_and_asset", func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ? AND asset_id = ?", status, assetID)
	})
}

func (d *MaintenanceLogDAO) GetByPerformedUser(ctx context.Context, userID uint) ([]models.MaintenanceLog, error) {
	if userID == 0 {
		return nil, errs.InvalidArgument("user id is required")
	}
	return d.find(ctx, "get_by_performed_user", func(db *gorm.DB) *gorm.DB {
		return db.Where("performed_by_user_id = ?", userID)
	})
}

// GetLogsOnActiveAssets returns up to limit logs whose asset is active, grouped
// by asset (newest asset first) and newest log first within each asset.
func (d *MaintenanceLogDAO) GetLogsOnActiveAssets(ctx context.Context, limit int) ([]models.MaintenanceLog, error) {
	if limit <= 0 {
		return nil, errs.InvalidArgument("limit must be greater than 0")
	}
	return d.find(ctx, "get_on_active_assets", func(db *gorm.DB) *gorm.DB {
		return db.
			Select("maintenance_logs.*").
			Joins("JOIN assets ON assets.asset_id = maintenance_logs.asset_id").
			Where("assets.active = ?", true).
			Order("maintenance_logs.asset_id DESC").
			Order("maintenance_logs.performed_date DESC").
			Limit(limit)
	})
}

func (d *MaintenanceLogDAO) find(ctx context.Context, op string, scope func(db *gorm.DB) *gorm.DB) ([]models.MaintenanceLog, error) {
	var logs []models.MaintenanceLog
	err := d.uow.read(ctx, op, "list maintenance logs failed", func(db *gorm.DB) error {
		return withRefs(db).Scopes(scope).Find(&logs).Error
	})
	if err != nil {
		return nil, err
	}
	return logs, nil
}
