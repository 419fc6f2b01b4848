package services

import (
	"encoding/json"
	"time"

	"github.com/fitforge/fitforge/internal/models"
	"github.com/fitforge/fitforge/pkg/logger"
	"gorm.io/gorm"
)

// PatternSnapshotService maintains per-campaign pattern caches for the
// dashboard. The generation pipeline never reads snapshots; it extracts
// fresh per request.
type PatternSnapshotService struct {
	db        *gorm.DB
	ads       *HistoricalAdService
	extractor *PatternExtractor
}

func NewPatternSnapshotService(db *gorm.DB, ads *HistoricalAdService) *PatternSnapshotService {
	return &PatternSnapshotService{
		db:        db,
		ads:       ads,
		extractor: NewPatternExtractor(),
	}
}

// RefreshAll re-extracts patterns for every campaign that has ads. Invoked
// nightly by the cron scheduler and on demand from the admin API.
func (s *PatternSnapshotService) RefreshAll() (int, error) {
	slugs, err := s.ads.CampaignSlugsWithAds()
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, slug := range slugs {
		if err := s.Refresh(slug); err != nil {
			logger.Errorf("[Patterns] snapshot refresh failed for %s: %v", slug, err)
			continue
		}
		refreshed++
	}
	return refreshed, nil
}

// Refresh rebuilds the snapshot for one campaign.
func (s *PatternSnapshotService) Refresh(slug string) error {
	ads, err := s.ads.ListByCampaign(slug)
	if err != nil {
		return err
	}

	texts := make([]string, 0, len(ads))
	for _, ad := range ads {
		texts = append(texts, ad.PrimaryText)
	}

	extraction := s.extractor.Extract(texts)
	patternsJSON, err := json.Marshal(extraction.Patterns)
	if err != nil {
		return err
	}

	var snapshot models.PatternSnapshot
	err = s.db.Where("campaign_slug = ?", slug).First(&snapshot).Error
	if err == gorm.ErrRecordNotFound {
		snapshot = models.PatternSnapshot{CampaignSlug: slug}
	} else if err != nil {
		return err
	}

	snapshot.PatternsJSON = string(patternsJSON)
	snapshot.AdCount = len(ads)
	snapshot.RefreshedAt = time.Now()
	return s.db.Save(&snapshot).Error
}

func (s *PatternSnapshotService) Get(slug string) (*models.PatternSnapshot, error) {
	var snapshot models.PatternSnapshot
	if err := s.db.Where("campaign_slug = ?", slug).First(&snapshot).Error; err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (s *PatternSnapshotService) List() ([]models.PatternSnapshot, error) {
	var snapshots []models.PatternSnapshot
	if err := s.db.Order("campaign_slug ASC").Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}
