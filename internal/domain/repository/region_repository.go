package repository

import (
	"context"

	"awardsearch-service/internal/domain/entity"
)

// RegionRepository defines the interface for region reference data
type RegionRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Region, error)
}
