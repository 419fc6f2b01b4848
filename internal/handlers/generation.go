package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitforge/fitforge/internal/config"
	"github.com/fitforge/fitforge/internal/middleware"
	"github.com/fitforge/fitforge/internal/services"
	"github.com/fitforge/fitforge/pkg/response"
)

type GenerationHandler struct {
	generationService *services.GenerationService
	contentService    *services.GeneratedContentService
}

func NewGenerationHandler(db *gorm.DB, cfg *config.Config) *GenerationHandler {
	return &GenerationHandler{
		generationService: BuildGenerationService(db, cfg),
		contentService:    services.NewGeneratedContentService(db),
	}
}

// BuildGenerationService wires the full pipeline. Shared with the worker
// bootstrap so async tasks run the same code path as the HTTP handler.
func BuildGenerationService(db *gorm.DB, cfg *config.Config) *services.GenerationService {
	aiService := services.NewAIService(db, &cfg.OpenAI)
	rulesService := services.NewRulesConfigService(db)
	adService := services.NewHistoricalAdService(db)
	return services.NewGenerationService(
		db,
		aiService,
		rulesService,
		services.NewCampaignService(db),
		adService,
		services.NewBrandProfileService(db),
		services.NewOriginalityService(adService, rulesService),
		services.NewComplianceService(db, aiService),
	)
}

// Generate runs the pipeline synchronously and returns the finished draft
// POST /api/generate
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req services.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.generationService.Generate(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// GenerateAsync queues the pipeline and returns a request id to poll
// POST /api/generate/async
func (h *GenerationHandler) GenerateAsync(c *gin.Context) {
	var req services.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	requestID, err := h.generationService.Enqueue(middleware.GetUserID(c), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Accepted(c, gin.H{"request_id": requestID})
}

// GetByRequestID polls an async generation by its request id
// GET /api/generate/:request_id
func (h *GenerationHandler) GetByRequestID(c *gin.Context) {
	content, err := h.contentService.GetByRequestID(middleware.GetUserID(c), c.Param("request_id"))
	if err != nil {
		response.NotFound(c, "generation request not found")
		return
	}

	response.Success(c, content)
}
