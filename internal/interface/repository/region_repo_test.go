package repository_test

import (
	"context"
	"testing"

	impl "awardsearch-service/internal/interface/repository"
)

// ── Built-in catalog fallback ──────────────────────────────────────────────

func TestGetByName_BuiltInCatalog(t *testing.T) {
	repo := impl.NewGormRegionRepository(nil)

	region, err := repo.GetByName(context.Background(), "BRASIL")
	if err != nil {
		t.Fatalf("GetByName returned unexpected error: %v", err)
	}
	if region.Name != "BRASIL" {
		t.Errorf("Name = %q, want BRASIL", region.Name)
	}
	if len(region.Airports) == 0 {
		t.Error("built-in region should carry airports")
	}
}

func TestGetByName_NormalizesInput(t *testing.T) {
	repo := impl.NewGormRegionRepository(nil)

	region, err := repo.GetByName(context.Background(), "  europa ")
	if err != nil {
		t.Fatalf("GetByName returned unexpected error: %v", err)
	}
	if region.Name != "EUROPA" {
		t.Errorf("Name = %q, want EUROPA", region.Name)
	}
}

func TestGetByName_UnknownRegion(t *testing.T) {
	repo := impl.NewGormRegionRepository(nil)

	if _, err := repo.GetByName(context.Background(), "ATLANTIDA"); err == nil {
		t.Error("unknown region expected error, got nil")
	}
}
