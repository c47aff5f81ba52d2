package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"awardsearch-service/internal/domain/entity"
	"awardsearch-service/internal/domain/repository"

	"gorm.io/gorm"
)

// defaultRegions is the built-in region catalog, used when the reference
// table is unavailable or has no row for the requested region
var defaultRegions = map[string][]string{
	"ARGENTINA":    {"COR", "MDZ", "BRC", "SLA", "USH", "IGR", "NQN", "FTE"},
	"BRASIL":       {"GIG", "SDU", "GRU", "CGH", "FLN", "SSA", "REC", "FOR", "POA", "CWB", "BEL", "BSB"},
	"SUDAMERICA":   {"SCL", "LIM", "BOG", "MVD", "ASU", "UIO", "CCS", "LPB"},
	"NORTEAMERICA": {"MIA", "MCO", "JFK", "LAX", "YYZ", "MEX", "CUN"},
	"CARIBE":       {"PUJ", "CUN", "HAV", "SJU", "AUA", "CTG"},
	"EUROPA":       {"MAD", "BCN", "LIS", "CDG", "FCO", "LHR", "AMS", "FRA"},
	"ASIA":         {"DOH", "DXB", "NRT", "BKK", "SIN", "HND"},
	"OCEANIA":      {"SYD", "AKL", "MEL"},
}

// GormRegionRepository implements the RegionRepository interface
type GormRegionRepository struct {
	db *gorm.DB
}

// NewGormRegionRepository creates a new GORM region repository. A nil db is
// allowed and serves the built-in catalog only.
func NewGormRegionRepository(db *gorm.DB) repository.RegionRepository {
	return &GormRegionRepository{
		db: db,
	}
}

// Regions GORM model for database mapping
type Regions struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"column:name;unique"`
	Airports  string `gorm:"column:airports"` // comma-separated airport codes
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Regions) TableName() string {
	return "m_regions"
}

// GetByName finds a region by name, falling back to the built-in catalog
func (r *GormRegionRepository) GetByName(ctx context.Context, name string) (*entity.Region, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))

	if r.db != nil {
		var region Regions
		result := r.db.WithContext(ctx).Where("name = ?", upper).First(&region)
		if result.Error == nil && region.Airports != "" {
			return &entity.Region{
				ID:        region.ID,
				Name:      region.Name,
				Airports:  splitAirports(region.Airports),
				CreatedAt: region.CreatedAt,
				UpdatedAt: region.UpdatedAt,
			}, nil
		}
	}

	if airports, ok := defaultRegions[upper]; ok {
		return &entity.Region{Name: upper, Airports: airports}, nil
	}
	return nil, fmt.Errorf("unknown region %q", name)
}

func splitAirports(raw string) []string {
	parts := strings.Split(raw, ",")
	airports := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			airports = append(airports, trimmed)
		}
	}
	return airports
}
