package services

import (
	"time"

	"github.com/fitforge/fitforge/internal/models"
	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type DashboardStatsRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type DashboardStats struct {
	TotalGenerated    int64   `json:"total_generated"`
	CompliancePassed  int64   `json:"compliance_passed"`
	ComplianceFixed   int64   `json:"compliance_fixed"`
	ComplianceFailed  int64   `json:"compliance_failed"`
	OriginalityWarned int64   `json:"originality_warned"`
	EditedByUser      int64   `json:"edited_by_user"`
	HistoricalAds     int64   `json:"historical_ads"`
	AvgOutcomeMetric  float64 `json:"avg_outcome_metric"`
}

type ContentTypeStats struct {
	ContentType string `json:"content_type"`
	Count       int64  `json:"count"`
}

type CampaignStats struct {
	CampaignSlug string `json:"campaign_slug"`
	Count        int64  `json:"count"`
}

type DashboardResponse struct {
	Stats            DashboardStats     `json:"stats"`
	ContentTypeStats []ContentTypeStats `json:"content_type_stats"`
	CampaignStats    []CampaignStats    `json:"campaign_stats"`
}

func (s *DashboardService) GetStats(userID uint, req *DashboardStatsRequest) (*DashboardResponse, error) {
	var startDate, endDate time.Time
	var err error

	if req.StartDate != "" {
		startDate, err = time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			startDate = time.Now().AddDate(0, 0, -30)
		}
	} else {
		startDate = time.Now().AddDate(0, 0, -30)
	}

	if req.EndDate != "" {
		endDate, err = time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			endDate = time.Now()
		}
		endDate = endDate.Add(24*time.Hour - time.Second)
	} else {
		endDate = time.Now()
	}

	var stats DashboardStats

	base := func() *gorm.DB {
		return s.db.Model(&models.GeneratedContent{}).
			Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, startDate, endDate)
	}

	base().Count(&stats.TotalGenerated)
	base().Where("compliance_status = ?", models.ComplianceStatusPassed).Count(&stats.CompliancePassed)
	base().Where("compliance_status = ?", models.ComplianceStatusFixed).Count(&stats.ComplianceFixed)
	base().Where("compliance_status = ?", models.ComplianceStatusFailed).Count(&stats.ComplianceFailed)
	base().Where("originality_warning = ?", true).Count(&stats.OriginalityWarned)
	base().Where("edited_by_user = ?", true).Count(&stats.EditedByUser)

	s.db.Model(&models.HistoricalAd{}).
		Where("user_id = ?", userID).
		Count(&stats.HistoricalAds)

	s.db.Model(&models.HistoricalAd{}).
		Where("user_id = ?", userID).
		Select("COALESCE(AVG(outcome_metric), 0)").
		Scan(&stats.AvgOutcomeMetric)

	var contentTypeStats []ContentTypeStats
	base().
		Select("content_type, COUNT(*) as count").
		Group("content_type").
		Order("count DESC").
		Scan(&contentTypeStats)

	var campaignStats []CampaignStats
	base().
		Where("campaign_slug != ''").
		Select("campaign_slug, COUNT(*) as count").
		Group("campaign_slug").
		Order("count DESC").
		Limit(10).
		Scan(&campaignStats)

	return &DashboardResponse{
		Stats:            stats,
		ContentTypeStats: contentTypeStats,
		CampaignStats:    campaignStats,
	}, nil
}
