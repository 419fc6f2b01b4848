package services

import (
	"errors"
	"strings"

	"github.com/fitforge/fitforge/internal/models"
	"gorm.io/gorm"
)

type BrandProfileService struct {
	db *gorm.DB
}

func NewBrandProfileService(db *gorm.DB) *BrandProfileService {
	return &BrandProfileService{db: db}
}

// GetByUser returns the user's brand profile, or (nil, nil) when none has
// been created yet. A missing profile is a normal state for new accounts.
func (s *BrandProfileService) GetByUser(userID uint) (*models.BrandProfile, error) {
	var profile models.BrandProfile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert creates the user's profile or updates the existing one. Each user
// has at most one profile.
func (s *BrandProfileService) Upsert(userID uint, in *models.BrandProfile) (*models.BrandProfile, error) {
	existing, err := s.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	in.UserID = userID
	if existing == nil {
		if err := s.db.Create(in).Error; err != nil {
			return nil, err
		}
		return in, nil
	}

	in.ID = existing.ID
	in.CreatedAt = existing.CreatedAt
	if err := s.db.Save(in).Error; err != nil {
		return nil, err
	}
	return in, nil
}

func (s *BrandProfileService) Delete(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.BrandProfile{}).Error
}

// WordsToAvoidList splits the stored comma-separated words-to-avoid field
// into trimmed, non-empty entries.
func WordsToAvoidList(profile *models.BrandProfile) []string {
	if profile == nil || profile.WordsToAvoid == "" {
		return nil
	}
	parts := strings.Split(profile.WordsToAvoid, ",")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if w := strings.TrimSpace(p); w != "" {
			words = append(words, w)
		}
	}
	return words
}
