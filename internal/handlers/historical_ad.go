package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitforge/fitforge/internal/middleware"
	"github.com/fitforge/fitforge/internal/services"
	"github.com/fitforge/fitforge/pkg/response"
)

type HistoricalAdHandler struct {
	adService *services.HistoricalAdService
}

func NewHistoricalAdHandler(db *gorm.DB) *HistoricalAdHandler {
	return &HistoricalAdHandler{
		adService: services.NewHistoricalAdService(db),
	}
}

type importAdsRequest struct {
	Ads []services.AdImport `json:"ads" binding:"required,min=1"`
}

// Import bulk-loads past ads into the corpus, skipping duplicates
// POST /api/ads/import
func (h *HistoricalAdHandler) Import(c *gin.Context) {
	var req importAdsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.adService.Import(middleware.GetUserID(c), req.Ads)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// List returns the current user's historical ads
// GET /api/ads
func (h *HistoricalAdHandler) List(c *gin.Context) {
	var req services.AdListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.adService.List(middleware.GetUserID(c), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}
