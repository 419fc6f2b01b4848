package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitforge/fitforge/internal/middleware"
	"github.com/fitforge/fitforge/internal/models"
	"github.com/fitforge/fitforge/internal/services"
	"github.com/fitforge/fitforge/pkg/response"
)

type BrandProfileHandler struct {
	profileService *services.BrandProfileService
}

func NewBrandProfileHandler(db *gorm.DB) *BrandProfileHandler {
	return &BrandProfileHandler{
		profileService: services.NewBrandProfileService(db),
	}
}

// Get returns the current user's brand profile
// GET /api/brand-profile
func (h *BrandProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.GetByUser(middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	if profile == nil {
		response.NotFound(c, "brand profile not set")
		return
	}

	response.Success(c, profile)
}

// Upsert creates or replaces the current user's brand profile
// PUT /api/brand-profile
func (h *BrandProfileHandler) Upsert(c *gin.Context) {
	var req models.BrandProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileService.Upsert(middleware.GetUserID(c), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, profile)
}

// Delete removes the current user's brand profile
// DELETE /api/brand-profile
func (h *BrandProfileHandler) Delete(c *gin.Context) {
	if err := h.profileService.Delete(middleware.GetUserID(c)); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "brand profile deleted"})
}
