package services

import (
	"context"

	"etalase/internal/models"
	"etalase/internal/repositories"
)

// SettingService exposes read access to the settings table.
type SettingService struct {
	repo repositories.SettingRepository
}

// NewSettingService creates a new SettingService.
func NewSettingService(repo repositories.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetAllSettings retrieves every setting. Order is unspecified.
func (s *SettingService) GetAllSettings(ctx context.Context) ([]models.Setting, error) {
	return s.repo.GetAll(ctx)
}

// GetSetting retrieves a single setting by key.
func (s *SettingService) GetSetting(ctx context.Context, key string) (*models.Setting, error) {
	return s.repo.GetByKey(ctx, key)
}
