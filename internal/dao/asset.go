package dao

import (
	"context"

	"assettrack/internal/errs"
	"assettrack/internal/models"

	"gorm.io/gorm"
)

type AssetDAO struct {
	uow unitOfWork
}

func NewAssetDAO(db *gorm.DB, opts ...Option) *AssetDAO {
	return &AssetDAO{uow: newUnitOfWork(db, "asset", opts)}
}

func (d *AssetDAO) Create(ctx context.Context, asset *models.Asset) (*models.Asset, error) {
	if asset == nil {
		return nil, errs.InvalidArgument("asset cannot be nil")
	}

	err := d.uow.write(ctx, "create", "create asset failed", func(tx *gorm.DB) error {
		return tx.Omit("Logs").Create(asset).Error
	})
	if err != nil {
		return nil, err
	}
	return asset, nil
}

func (d *AssetDAO) Get(ctx context.Context, id uint) (*models.Asset, error) {
	if id == 0 {
		return nil, errs.InvalidArgument("asset id is required")
	}

	var asset models.Asset
	err := d.uow.read(ctx, "get", "get asset failed", func(db *gorm.DB) error {
		return notFound(db.First(&asset, id).Error, "asset not found")
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// GetWithLogs returns the asset with its maintenance history, newest first.
func (d *AssetDAO) GetWithLogs(ctx context.Context, id uint) (*models.Asset, error) {
	if id == 0 {
		return nil, errs.InvalidArgument("asset id is required")
	}

	var asset models.Asset
	err := d.uow.read(ctx, "get_with_logs", "get asset failed", func(db *gorm.DB) error {
		err := db.
			Preload("Logs", func(db *gorm.DB) *gorm.DB {
				return db.Order("performed_date DESC").Order("log_id DESC")
			}).
			Preload("Logs.PerformedBy").
			First(&asset, id).Error
		return notFound(err, "asset not found")
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// GetAll returns the active assets, most recently created first.
func (d *AssetDAO) GetAll(ctx context.Context) ([]models.Asset, error) {
	return d.listByActive(ctx, "get_all", "list assets failed", true)
}

// GetInactiveAssets returns the deactivated assets, most recently created first.
func (d *AssetDAO) GetInactiveAssets(ctx context.Context) ([]models.Asset, error) {
	return d.listByActive(ctx, "get_inactive", "list inactive assets failed", false)
}

func (d *AssetDAO) listByActive(ctx context.Context, op, message string, active bool) ([]models.Asset, error) {
	var assets []models.Asset
	err := d.uow.read(ctx, op, message, func(db *gorm.DB) error {
		return db.Where("active = ?", active).Order("asset_id DESC").Find(&assets).Error
	})
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// Update always fails. Use SetActive to change an asset.
func (d *AssetDAO) Update(ctx context.Context, asset *models.Asset) (*models.Asset, error) {
	return nil, errs.Unsupported("assets are immutable")
}

func (d *AssetDAO) SetActive(ctx context.Context, id uint, active bool) (*models.Asset, error) {
	if id == 0 {
		return nil, errs.InvalidArgument("asset id is required")
	}

	var asset models.Asset
	err := d.uow.write(ctx, "set_active", "set asset active failed", func(tx *gorm.DB) error {
		if err := tx.First(&asset, id).Error; err != nil {
			return notFound(err, "asset not found")
		}
		if err := tx.Model(&asset).Update("active", active).Error; err != nil {
			return err
		}
		asset.Active = active
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}
