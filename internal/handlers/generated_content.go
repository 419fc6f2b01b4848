package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitforge/fitforge/internal/middleware"
	"github.com/fitforge/fitforge/internal/services"
	"github.com/fitforge/fitforge/pkg/response"
)

type GeneratedContentHandler struct {
	contentService *services.GeneratedContentService
}

func NewGeneratedContentHandler(db *gorm.DB) *GeneratedContentHandler {
	return &GeneratedContentHandler{
		contentService: services.NewGeneratedContentService(db),
	}
}

// List returns the user's generated drafts
// GET /api/content
func (h *GeneratedContentHandler) List(c *gin.Context) {
	var req services.ContentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.contentService.List(middleware.GetUserID(c), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// GetByID returns one draft
// GET /api/content/:id
func (h *GeneratedContentHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid content id")
		return
	}

	content, err := h.contentService.GetByID(middleware.GetUserID(c), uint(id))
	if err != nil {
		response.NotFound(c, "content not found")
		return
	}

	response.Success(c, content)
}

type updateTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// UpdateText saves a manual edit of a completed draft
// PUT /api/content/:id/text
func (h *GeneratedContentHandler) UpdateText(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid content id")
		return
	}

	var req updateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	content, err := h.contentService.UpdateText(middleware.GetUserID(c), uint(id), req.Text)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, content)
}

type adoptFixRequest struct {
	FixedText string `json:"fixed_text" binding:"required"`
}

// AdoptFix replaces the draft text with the compliance-fixed version
// POST /api/content/:id/adopt-fix
func (h *GeneratedContentHandler) AdoptFix(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid content id")
		return
	}

	var req adoptFixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	content, err := h.contentService.AdoptFixedText(middleware.GetUserID(c), uint(id), req.FixedText)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, content)
}
