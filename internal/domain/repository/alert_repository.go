package repository

import (
	"context"

	"awardsearch-service/internal/domain/entity"
)

// AlertRepository defines the interface for alert persistence
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	FindByUserAndSearch(ctx context.Context, userID, search string) (*entity.Alert, error)
	FindAll(ctx context.Context) ([]*entity.Alert, error)
	UpdateResult(ctx context.Context, id string, previousResult string) error
	Delete(ctx context.Context, userID, search string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}
