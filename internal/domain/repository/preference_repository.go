package repository

import (
	"context"

	"awardsearch-service/internal/domain/entity"
)

// PreferenceRepository defines the interface for per-user search defaults
type PreferenceRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Preferences, error)
	Upsert(ctx context.Context, prefs *entity.Preferences) error
	Reset(ctx context.Context, userID string) error
}
