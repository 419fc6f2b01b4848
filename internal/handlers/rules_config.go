package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitforge/fitforge/internal/models"
	"github.com/fitforge/fitforge/internal/services"
	"github.com/fitforge/fitforge/pkg/response"
)

type RulesConfigHandler struct {
	rulesService *services.RulesConfigService
}

func NewRulesConfigHandler(db *gorm.DB) *RulesConfigHandler {
	return &RulesConfigHandler{
		rulesService: services.NewRulesConfigService(db),
	}
}

// GetActive returns the active rule set with defaults applied
// GET /api/rules/active
func (h *RulesConfigHandler) GetActive(c *gin.Context) {
	rules, err := h.rulesService.GetActive()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, rules)
}

// List returns every stored rule set version
// GET /api/rules
func (h *RulesConfigHandler) List(c *gin.Context) {
	configs, err := h.rulesService.List()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, configs)
}

// Publish stores a new rule set version and activates it
// POST /api/rules
func (h *RulesConfigHandler) Publish(c *gin.Context) {
	var req models.RulesConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.rulesService.Publish(&req); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, req)
}
