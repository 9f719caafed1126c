package services

import (
	"context"
	"strings"

	"assettrack/internal/dao"
	"assettrack/internal/errs"
	"assettrack/internal/models"
)

type AssetService struct {
	assets dao.AssetRepository
}

func NewAssetService(assets dao.AssetRepository) *AssetService {
	return &AssetService{assets: assets}
}

// CreateAsset registers a new asset. New assets start active.
func (s *AssetService) CreateAsset(ctx context.Context, name, description string) (*models.Asset, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.InvalidArgument("asset name is required")
	}
	return s.assets.Create(ctx, &models.Asset{
		Name:        name,
		Description: description,
		Active:      true,
	})
}

func (s *AssetService) GetAsset(ctx context.Context, id uint, withLogs bool) (*models.Asset, error) {
	if withLogs {
		return s.assets.GetWithLogs(ctx, id)
	}
	return s.assets.Get(ctx, id)
}

// GetAssets returns the active assets.
func (s *AssetService) GetAssets(ctx context.Context) ([]models.Asset, error) {
	return s.assets.GetAll(ctx)
}

func (s *AssetService) GetInactiveAssets(ctx context.Context) ([]models.Asset, error) {
	return s.assets.GetInactiveAssets(ctx)
}

func (s *AssetService) SetActive(ctx context.Context, id uint, active bool) (*models.Asset, error) {
	return s.assets.SetActive(ctx, id, active)
}

// UpdateAsset is refused; assets only change through SetActive.
func (s *AssetService) UpdateAsset(ctx context.Context, asset *models.Asset) (*models.Asset, error) {
	return s.assets.Update(ctx, asset)
}
