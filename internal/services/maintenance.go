package services

import (
	"context"
	"time"

	"assettrack/internal/dao"
	"assettrack/internal/errs"
	"assettrack/internal/events"
	"assettrack/internal/models"

	"github.com/rs/zerolog"
)

type MaintenanceService struct {
	logs      dao.MaintenanceLogRepository
	assets    dao.AssetRepository
	users     dao.UserRepository
	publisher events.Publisher
	log       zerolog.Logger
}

func NewMaintenanceService(logs dao.MaintenanceLogRepository, assets dao.AssetRepository, users dao.UserRepository, publisher events.Publisher, log zerolog.Logger) *MaintenanceService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &MaintenanceService{
		logs:      logs,
		assets:    assets,
		users:     users,
		publisher: publisher,
		log:       log,
	}
}

type RecordLogInput struct {
	AssetID           uint
	PerformedByUserID uint
	PerformedDate     time.Time
	Status            models.LogStatus
	TaskType          models.TaskType
	Comment           string
}

// LogFilter selects maintenance logs. Zero fields are not filtered on.
type LogFilter struct {
	AssetID     uint
	TaskType    models.TaskType
	Status      models.LogStatus
	PerformedBy uint
}

// RecordLog stores a maintenance log against an existing asset and user and
// announces it on the event bus.
func (s *MaintenanceService) RecordLog(ctx context.Context, in RecordLogInput) (*models.MaintenanceLog, error) {
	if !in.Status.Valid() {
		return nil, errs.InvalidArgument("status must be DONE or FAILED")
	}
	if !in.TaskType.Valid() {
		return nil, errs.InvalidArgument("task type must be MAINTENANCE, PRODUCTION or ERROR")
	}
	if in.PerformedDate.IsZero() {
		return nil, errs.InvalidArgument("performed date is required")
	}

	asset, err := s.assets.Get(ctx, in.AssetID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Get(ctx, in.PerformedByUserID)
	if err != nil {
		return nil, err
	}

	y, m, d := in.PerformedDate.Date()
	entry := &models.MaintenanceLog{
		PerformedDate: models.Date(y, m, d),
		Status:        in.Status,
		TaskType:      in.TaskType,
		Comment:       in.Comment,
		Asset:         asset,
		PerformedBy:   user,
	}
	created, err := s.logs.Create(ctx, entry)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishLogRecorded(ctx, events.NewLogRecorded(created)); err != nil {
		s.log.Warn().Err(err).Uint("log_id", created.ID).Msg("failed to publish log recorded event")
	}

	return created, nil
}

func (s *MaintenanceService) GetLog(ctx context.Context, id uint) (*models.MaintenanceLog, error) {
	return s.logs.Get(ctx, id)
}

// ListLogs returns the logs matching filter.
func (s *MaintenanceService) ListLogs(ctx context.Context, filter LogFilter) ([]models.MaintenanceLog, error) {
	switch {
	case filter.PerformedBy != 0:
		if filter.AssetID != 0 || filter.TaskType != "" || filter.Status != "" {
			return nil, errs.InvalidArgument("performed_by cannot be combined with other filters")
		}
		return s.logs.GetByPerformedUser(ctx, filter.PerformedBy)
	case filter.TaskType != "" && filter.Status != "":
		return nil, errs.InvalidArgument("task_type and status cannot be combined")
	case filter.TaskType != "":
		if filter.AssetID == 0 {
			return nil, errs.InvalidArgument("task_type requires asset_id")
		}
		return s.logs.GetByAssetAndTask(ctx, filter.AssetID, filter.TaskType)
	case filter.Status != "" && filter.AssetID != 0:
		return s.logs.GetByStatusAndAsset(ctx, filter.Status, filter.AssetID)
	case filter.Status != "":
		return s.logs.GetByStatus(ctx, filter.Status)
	case filter.AssetID != 0:
		return s.logs.GetByAsset(ctx, filter.AssetID)
	default:
		return s.logs.GetAll(ctx)
	}
}

func (s *MaintenanceService) GetLogsOnActiveAssets(ctx context.Context, limit int) ([]models.MaintenanceLog, error) {
	return s.logs.GetLogsOnActiveAssets(ctx, limit)
}

// UpdateLog is refused; logs are immutable.
func (s *MaintenanceService) UpdateLog(ctx context.Context, log *models.MaintenanceLog) (*models.MaintenanceLog, error) {
	return s.logs.Update(ctx, log)
}
