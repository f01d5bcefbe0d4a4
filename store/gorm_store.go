// Package store backs the moderation core's store contracts with gorm.
package store

import (
	"context"
	"errors"

	"github.com/map-mark/api-go/models"
	"github.com/map-mark/api-go/moderation"
	"gorm.io/gorm"
)

type GormStore struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, moderation.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (s *GormStore) UpdateProfileStatus(ctx context.Context, id, status string) error {
	return s.DB.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).
		Update("status", status).Error
}

func (s *GormStore) GetPin(ctx context.Context, id string) (*models.Pin, error) {
	var pin models.Pin
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&pin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, moderation.ErrNotFound
		}
		return nil, err
	}
	return &pin, nil
}

func (s *GormStore) ListPinsByOwner(ctx context.Context, ownerID string) ([]models.Pin, error) {
	var pins []models.Pin
	if err := s.DB.WithContext(ctx).Where("profile_id = ?", ownerID).Find(&pins).Error; err != nil {
		return nil, err
	}
	return pins, nil
}

func (s *GormStore) UpdatePinStatus(ctx context.Context, id, status string) error {
	return s.DB.WithContext(ctx).Model(&models.Pin{}).Where("id = ?", id).
		Update("status", status).Error
}

func (s *GormStore) DeletePin(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Pin{}).Error
}

func (s *GormStore) DeletePinsByOwner(ctx context.Context, ownerID string) error {
	return s.DB.WithContext(ctx).Where("profile_id = ?", ownerID).Delete(&models.Pin{}).Error
}

func (s *GormStore) InsertReport(ctx context.Context, report *models.Report) error {
	return s.DB.WithContext(ctx).Create(report).Error
}

func (s *GormStore) GetReport(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, moderation.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (s *GormStore) ListReports(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	if err := s.DB.WithContext(ctx).Order("date DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *GormStore) ListReportsByReporter(ctx context.Context, reporterID string) ([]models.Report, error) {
	var reports []models.Report
	if err := s.DB.WithContext(ctx).Where("profile_id = ?", reporterID).Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *GormStore) CountActiveReports(ctx context.Context, target moderation.Target) (int64, error) {
	query := s.DB.WithContext(ctx).Model(&models.Report{}).Where("active = ?", true)
	if target.UserID != "" {
		query = query.Where("reported_user_id = ?", target.UserID)
	} else {
		query = query.Where("reported_pin_id = ?", target.PinID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *GormStore) DeleteReport(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Report{}).Error
}

func (s *GormStore) DeleteReportsForUser(ctx context.Context, userID string) error {
	return s.DB.WithContext(ctx).Where("reported_user_id = ?", userID).Delete(&models.Report{}).Error
}

func (s *GormStore) DeleteReportsForPins(ctx context.Context, pinIDs []string) error {
	if len(pinIDs) == 0 {
		return nil
	}
	return s.DB.WithContext(ctx).Where("reported_pin_id IN ?", pinIDs).Delete(&models.Report{}).Error
}

func (s *GormStore) DeleteReportsForUserOrPin(ctx context.Context, userID, pinID string) error {
	return s.DB.WithContext(ctx).
		Where("reported_user_id = ? OR reported_pin_id = ?", userID, pinID).
		Delete(&models.Report{}).Error
}
