package repository

import (
	"context"

	"awardsearch-service/internal/domain/entity"
)

// FlightSearchRepository defines the interface for search-history records
type FlightSearchRepository interface {
	Create(ctx context.Context, search *entity.FlightSearch) error
}
