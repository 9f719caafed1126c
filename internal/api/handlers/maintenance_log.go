package handlers

import (
	"net/http"
	"strconv"
	"time"

	"assettrack/internal/errs"
	"assettrack/internal/models"
	"assettrack/internal/services"

	"github.com/gin-gonic/gin"
)

type MaintenanceLogHandler struct {
	maintenanceService *services.MaintenanceService
}

func NewMaintenanceLogHandler(maintenanceService *services.MaintenanceService) *MaintenanceLogHandler {
	return &MaintenanceLogHandler{maintenanceService: maintenanceService}
}

// CreateLogRequest takes the performed date as YYYY-MM-DD. PerformedByUserID
// defaults to the signed-in user.
type CreateLogRequest struct {
	AssetID           uint             `json:"asset_id" binding:"required"`
	PerformedByUserID uint             `json:"performed_by_user_id"`
	PerformedDate     string           `json:"performed_date" binding:"required"`
	Status            models.LogStatus `json:"status" binding:"required,oneof=DONE FAILED"`
	TaskType          models.TaskType  `json:"task_type" binding:"required,oneof=MAINTENANCE PRODUCTION ERROR"`
	Comment           string           `json:"comment"`
}

// GetLogs returns logs filtered by asset_id, task_type, status or performed_by
func (h *MaintenanceLogHandler) GetLogs(c *gin.Context) {
	var filter services.LogFilter
	var err error

	if filter.AssetID, err = queryUint(c, "asset_id"); err != nil {
		badRequest(c, "Invalid asset_id", err)
		return
	}
	if filter.PerformedBy, err = queryUint(c, "performed_by"); err != nil {
		badRequest(c, "Invalid performed_by", err)
		return
	}
	filter.TaskType = models.TaskType(c.Query("task_type"))
	filter.Status = models.LogStatus(c.Query("status"))

	logs, err := h.maintenanceService.ListLogs(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// GetLogsOnActiveAssets returns recent logs on active assets (?limit=, default 10)
func (h *MaintenanceLogHandler) GetLogsOnActiveAssets(c *gin.Context) {
	limit, err := queryLimit(c, 10)
	if err != nil {
		badRequest(c, "Invalid limit", err)
		return
	}

	logs, err := h.maintenanceService.GetLogsOnActiveAssets(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// GetLog returns a specific log
func (h *MaintenanceLogHandler) GetLog(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "Invalid log ID", nil)
		return
	}

	log, err := h.maintenanceService.GetLog(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, log)
}

// CreateLog records maintenance work on an asset
func (h *MaintenanceLogHandler) CreateLog(c *gin.Context) {
	var req CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	performed, err := time.Parse(time.DateOnly, req.PerformedDate)
	if err != nil {
		badRequest(c, "Invalid performed_date, expected YYYY-MM-DD", err)
		return
	}

	userID := req.PerformedByUserID
	if userID == 0 {
		userID = c.MustGet("user").(*models.User).ID
	}

	log, err := h.maintenanceService.RecordLog(c.Request.Context(), services.RecordLogInput{
		AssetID:           req.AssetID,
		PerformedByUserID: userID,
		PerformedDate:     performed,
		Status:            req.Status,
		TaskType:          req.TaskType,
		Comment:           req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, log)
}

// UpdateLog always answers 405; logs are immutable
func (h *MaintenanceLogHandler) UpdateLog(c *gin.Context) {
	_, err := h.maintenanceService.UpdateLog(c.Request.Context(), nil)
	if err == nil {
		err = errs.Unsupported("maintenance logs are immutable")
	}
	respondError(c, err)
}

func queryUint(c *gin.Context, key string) (uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	return uint(v), err
}
