package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitforge/fitforge/internal/models"
	"github.com/fitforge/fitforge/internal/services"
	"github.com/fitforge/fitforge/pkg/response"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	seasonalService *services.SeasonalService
	snapshotService *services.PatternSnapshotService
}

func NewCampaignHandler(db *gorm.DB) *CampaignHandler {
	campaignService := services.NewCampaignService(db)
	configService := services.NewSystemConfigService(db)
	adService := services.NewHistoricalAdService(db)
	return &CampaignHandler{
		campaignService: campaignService,
		seasonalService: services.NewSeasonalService(campaignService, configService),
		snapshotService: services.NewPatternSnapshotService(db, adService),
	}
}

// List returns all campaign templates
// GET /api/campaigns
func (h *CampaignHandler) List(c *gin.Context) {
	campaigns, err := h.campaignService.List()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, campaigns)
}

// GetBySlug returns one campaign template with its resolved type
// GET /api/campaigns/:slug
func (h *CampaignHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	tpl, err := h.campaignService.GetBySlug(slug)
	if err != nil {
		response.NotFound(c, "campaign not found")
		return
	}

	response.Success(c, gin.H{
		"campaign":      tpl,
		"campaign_type": string(h.campaignService.ResolveType(slug)),
	})
}

// Create adds a campaign template
// POST /api/campaigns
func (h *CampaignHandler) Create(c *gin.Context) {
	var req models.CampaignTemplate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.campaignService.Create(&req); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, req)
}

// Suggestions returns campaigns that fit the current season, each with a
// suggested launch date on the next business day
// GET /api/campaigns/suggestions
func (h *CampaignHandler) Suggestions(c *gin.Context) {
	suggestions, err := h.seasonalService.Suggest(time.Now())
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"suggestions":         suggestions,
		"supported_countries": h.seasonalService.SupportedCountries(),
	})
}

// GetSnapshot returns the cached pattern snapshot for a campaign
// GET /api/campaigns/:slug/patterns
func (h *CampaignHandler) GetSnapshot(c *gin.Context) {
	snapshot, err := h.snapshotService.Get(c.Param("slug"))
	if err != nil {
		response.NotFound(c, "no pattern snapshot for campaign")
		return
	}

	response.Success(c, snapshot)
}

// RefreshSnapshots re-extracts patterns for every campaign with ads
// POST /api/campaigns/patterns/refresh
func (h *CampaignHandler) RefreshSnapshots(c *gin.Context) {
	refreshed, err := h.snapshotService.RefreshAll()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"refreshed": refreshed})
}

// ListSnapshots returns all cached pattern snapshots
// GET /api/campaigns/patterns
func (h *CampaignHandler) ListSnapshots(c *gin.Context) {
	snapshots, err := h.snapshotService.List()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, snapshots)
}
