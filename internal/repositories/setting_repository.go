package repositories

import (
	"context"

	"etalase/internal/models"
)

// SettingRepository defines the interface for settings data access.
type SettingRepository interface {
	GetAll(ctx context.Context) ([]models.Setting, error)
	GetByKey(ctx context.Context, key string) (*models.Setting, error)
}
