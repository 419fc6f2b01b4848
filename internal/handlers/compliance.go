package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitforge/fitforge/internal/config"
	"github.com/fitforge/fitforge/internal/middleware"
	"github.com/fitforge/fitforge/internal/services"
	"github.com/fitforge/fitforge/pkg/response"
)

type ComplianceHandler struct {
	complianceService *services.ComplianceService
	profileService    *services.BrandProfileService
}

func NewComplianceHandler(db *gorm.DB, cfg *config.Config) *ComplianceHandler {
	return &ComplianceHandler{
		complianceService: services.NewComplianceService(db, services.NewAIService(db, &cfg.OpenAI)),
		profileService:    services.NewBrandProfileService(db),
	}
}

type complianceCheckRequest struct {
	Content     string `json:"content" binding:"required"`
	ContentType string `json:"content_type"`
	ContentID   *uint  `json:"content_id"`
}

// Check runs a standalone compliance check against the user's brand profile
// POST /api/compliance/check
func (h *ComplianceHandler) Check(c *gin.Context) {
	var req complianceCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	checkReq := &services.CheckRequest{
		UserID:      userID,
		ContentID:   req.ContentID,
		Content:     req.Content,
		ContentType: req.ContentType,
	}

	// Profile lookup failures degrade to an unscoped check.
	if profile, err := h.profileService.GetByUser(userID); err == nil && profile != nil {
		checkReq.BrandTone = profile.VoiceToneStyle
		checkReq.WordsToAvoid = services.WordsToAvoidList(profile)
	}

	result := h.complianceService.Check(c.Request.Context(), checkReq)
	response.Success(c, result)
}

// ListChecks returns the user's compliance audit trail
// GET /api/compliance/checks
func (h *ComplianceHandler) ListChecks(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	checks, err := h.complianceService.ListChecks(middleware.GetUserID(c), limit)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, checks)
}
