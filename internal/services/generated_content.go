package services

import (
	"errors"

	"github.com/fitforge/fitforge/internal/models"
	"gorm.io/gorm"
)

type GeneratedContentService struct {
	db *gorm.DB
}

func NewGeneratedContentService(db *gorm.DB) *GeneratedContentService {
	return &GeneratedContentService{db: db}
}

type ContentListRequest struct {
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	ContentType  string `form:"content_type"`
	CampaignSlug string `form:"campaign_slug"`
	Status       string `form:"status"`
}

type ContentListResponse struct {
	Total    int64                     `json:"total"`
	Page     int                       `json:"page"`
	PageSize int                       `json:"page_size"`
	Items    []models.GeneratedContent `json:"items"`
}

func (s *GeneratedContentService) List(userID uint, req *ContentListRequest) (*ContentListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var items []models.GeneratedContent
	var total int64

	query := s.db.Model(&models.GeneratedContent{}).Where("user_id = ?", userID)

	if req.ContentType != "" {
		query = query.Where("content_type = ?", req.ContentType)
	}
	if req.CampaignSlug != "" {
		query = query.Where("campaign_slug = ?", req.CampaignSlug)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}

	return &ContentListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

func (s *GeneratedContentService) GetByID(userID, id uint) (*models.GeneratedContent, error) {
	var row models.GeneratedContent
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// GetByRequestID is the poll endpoint for async generation jobs.
func (s *GeneratedContentService) GetByRequestID(userID uint, requestID string) (*models.GeneratedContent, error) {
	var row models.GeneratedContent
	if err := s.db.Where("request_id = ? AND user_id = ?", requestID, userID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// UpdateText records a manual edit. Edited rows keep their generation
// metadata but are flagged so they are excluded from model-quality stats.
func (s *GeneratedContentService) UpdateText(userID, id uint, text string) (*models.GeneratedContent, error) {
	row, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if row.Status != models.GenerationStatusCompleted {
		return nil, errors.New("only completed content can be edited")
	}

	row.Text = text
	row.EditedByUser = true
	if err := s.db.Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// AdoptFixedText replaces the content text with a compliance rewrite the
// user accepted.
func (s *GeneratedContentService) AdoptFixedText(userID, id uint, fixedText string) (*models.GeneratedContent, error) {
	row, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if fixedText == "" {
		return nil, errors.New("fixed text is empty")
	}

	row.Text = fixedText
	row.ComplianceStatus = models.ComplianceStatusFixed
	if err := s.db.Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}
