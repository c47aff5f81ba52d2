package repository

import (
	"context"

	"awardsearch-service/internal/domain/entity"
)

// CronJobRepository defines the interface for recurring-search persistence
type CronJobRepository interface {
	Create(ctx context.Context, job *entity.CronJob) error
	FindAll(ctx context.Context) ([]*entity.CronJob, error)
	Delete(ctx context.Context, userID, search string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}
