package handlers

import (
	"net/http"
	"strconv"

	"assettrack/internal/errs"
	"assettrack/internal/services"

	"github.com/gin-gonic/gin"
)

type AssetHandler struct {
	assetService *services.AssetService
}

func NewAssetHandler(assetService *services.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

type CreateAssetRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"max=1000"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// GetAssets returns the active assets
func (h *AssetHandler) GetAssets(c *gin.Context) {
	assets, err := h.assetService.GetAssets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// GetInactiveAssets returns the deactivated assets
func (h *AssetHandler) GetInactiveAssets(c *gin.Context) {
	assets, err := h.assetService.GetInactiveAssets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// GetAsset returns an asset; ?logs=true includes its maintenance history
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "Invalid asset ID", nil)
		return
	}

	withLogs, _ := strconv.ParseBool(c.DefaultQuery("logs", "false"))
	asset, err := h.assetService.GetAsset(c.Request.Context(), id, withLogs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

// CreateAsset registers a new asset
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, asset)
}

// UpdateAsset always answers 405; assets only change through SetActive
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	_, err := h.assetService.UpdateAsset(c.Request.Context(), nil)
	if err == nil {
		err = errs.Unsupported("assets are immutable")
	}
	respondError(c, err)
}

// SetActive activates or deactivates an asset
func (h *AssetHandler) SetActive(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "Invalid asset ID", nil)
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	asset, err := h.assetService.SetActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}
