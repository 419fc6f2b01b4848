package services

import (
	"github.com/fitforge/fitforge/internal/models"
	"github.com/fitforge/fitforge/pkg/logger"
	"gorm.io/gorm"
)

// sameTypeSampleLimit bounds the fallback corpus when a campaign has no ads
// of its own. Small on purpose: the fallback only needs enough text for
// overlap checking, not a full corpus.
const sameTypeSampleLimit = 10

type HistoricalAdService struct {
	db        *gorm.DB
	campaigns *CampaignService
}

func NewHistoricalAdService(db *gorm.DB) *HistoricalAdService {
	return &HistoricalAdService{
		db:        db,
		campaigns: NewCampaignService(db),
	}
}

type AdImport struct {
	PrimaryText   string  `json:"primary_text" binding:"required"`
	Headline      string  `json:"headline"`
	Tone          string  `json:"tone"`
	HookType      string  `json:"hook_type"`
	Platforms     string  `json:"platforms"`
	CampaignSlug  string  `json:"campaign_slug"`
	OutcomeMetric float64 `json:"outcome_metric"`
	CostMetric    float64 `json:"cost_metric"`
}

type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Import inserts historical ads, deduplicating on the content hash derived
// from (primary text, headline). Re-importing the same rows is a no-op.
func (s *HistoricalAdService) Import(userID uint, ads []AdImport) (*ImportResult, error) {
	result := &ImportResult{}

	for _, in := range ads {
		hash := models.AdContentHash(in.PrimaryText, in.Headline)

		var count int64
		s.db.Model(&models.HistoricalAd{}).Where("content_hash = ?", hash).Count(&count)
		if count > 0 {
			result.Skipped++
			continue
		}

		ad := models.HistoricalAd{
			UserID:        userID,
			PrimaryText:   in.PrimaryText,
			Headline:      in.Headline,
			Tone:          in.Tone,
			HookType:      in.HookType,
			Platforms:     in.Platforms,
			CampaignSlug:  in.CampaignSlug,
			OutcomeMetric: in.OutcomeMetric,
			CostMetric:    in.CostMetric,
			ContentHash:   hash,
		}
		if err := s.db.Create(&ad).Error; err != nil {
			return nil, err
		}
		result.Imported++
	}

	logger.Infof("[Ads] Imported %d ads (%d duplicates skipped)", result.Imported, result.Skipped)
	return result, nil
}

// ListByCampaign returns all ads for one exact canonical slug.
func (s *HistoricalAdService) ListByCampaign(slug string) ([]models.HistoricalAd, error) {
	var ads []models.HistoricalAd
	if err := s.db.Where("campaign_slug = ?", slug).
		Order("outcome_metric DESC").Find(&ads).Error; err != nil {
		return nil, err
	}
	return ads, nil
}

// SampleByType returns a bounded sample of ads from campaigns that resolve
// to the given type. This is the documented fallback when the exact-slug
// query is empty; it never falls back to cross-type ads.
func (s *HistoricalAdService) SampleByType(campaignType CampaignType) ([]models.HistoricalAd, error) {
	slugs, err := s.campaigns.SlugsOfType(campaignType)
	if err != nil {
		return nil, err
	}
	if len(slugs) == 0 {
		return nil, nil
	}

	var ads []models.HistoricalAd
	if err := s.db.Where("campaign_slug IN ?", slugs).
		Order("outcome_metric DESC").Limit(sameTypeSampleLimit).Find(&ads).Error; err != nil {
		return nil, err
	}
	return ads, nil
}

// CorpusForCampaign resolves the corpus the pipeline reads: exact campaign
// first, same-type sample as fallback. A nil/empty result is valid.
func (s *HistoricalAdService) CorpusForCampaign(slug string) ([]models.HistoricalAd, error) {
	if slug == "" {
		return nil, nil
	}

	ads, err := s.ListByCampaign(slug)
	if err != nil {
		return nil, err
	}
	if len(ads) > 0 {
		return ads, nil
	}

	campaignType := s.campaigns.ResolveType(slug)
	return s.SampleByType(campaignType)
}

type AdListRequest struct {
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	CampaignSlug string `form:"campaign_slug"`
	Tone         string `form:"tone"`
}

type AdListResponse struct {
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
	Items    []models.HistoricalAd `json:"items"`
}

func (s *HistoricalAdService) List(userID uint, req *AdListRequest) (*AdListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var ads []models.HistoricalAd
	var total int64

	query := s.db.Model(&models.HistoricalAd{}).Where("user_id = ?", userID)
	if req.CampaignSlug != "" {
		query = query.Where("campaign_slug = ?", req.CampaignSlug)
	}
	if req.Tone != "" {
		query = query.Where("tone = ?", req.Tone)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).
		Order("outcome_metric DESC").Find(&ads).Error; err != nil {
		return nil, err
	}

	return &AdListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    ads,
	}, nil
}

// CampaignSlugsWithAds lists the distinct campaign slugs present in the
// corpus, used by the snapshot scheduler.
func (s *HistoricalAdService) CampaignSlugsWithAds() ([]string, error) {
	var slugs []string
	err := s.db.Model(&models.HistoricalAd{}).
		Where("campaign_slug <> ''").
		Distinct("campaign_slug").
		Pluck("campaign_slug", &slugs).Error
	return slugs, err
}
