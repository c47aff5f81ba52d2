package router_test

import (
	"context"
	"errors"
	"testing"

	"awardsearch-service/internal/domain/entity"
	"awardsearch-service/internal/infrastructure/router"
	"awardsearch-service/pkg/logger"
)

type staticRegions struct{}

func (staticRegions) GetByName(ctx context.Context, name string) (*entity.Region, error) {
	if name == "BRASIL" {
		return &entity.Region{Name: "BRASIL", Airports: []string{"GIG", "GRU", "SSA"}}, nil
	}
	return nil, errors.New("unknown region " + name)
}

func testRouter() *router.QueryRouter {
	return router.NewQueryRouter(staticRegions{}, logger.NewLogger())
}

// ── Single ─────────────────────────────────────────────────────────────────

func TestParse_SingleMonthly(t *testing.T) {
	q, err := testRouter().Parse(context.Background(), "EZE MAD 2026-11", "u1")
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %v", err)
	}
	if q.Kind != entity.KindSingle {
		t.Errorf("Kind = %q, want single", q.Kind)
	}
	if q.Origin != "EZE" || q.Destination != "MAD" || q.DepartureDate != "2026-11" {
		t.Errorf("parsed %s %s %s, want EZE MAD 2026-11", q.Origin, q.Destination, q.DepartureDate)
	}
	if q.StartDay != 0 || q.EndDay != 0 {
		t.Errorf("day window = [%d, %d], want unset", q.StartDay, q.EndDay)
	}
	if q.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", q.UserID)
	}
}

func TestParse_SingleWithDayWindow(t *testing.T) {
	q, err := testRouter().Parse(context.Background(), "EZE MAD 2026/11 5 12", "u1")
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %v", err)
	}
	if q.DepartureDate != "2026-11" {
		t.Errorf("DepartureDate = %q, want slash separator normalized", q.DepartureDate)
	}
	if q.StartDay != 5 || q.EndDay != 12 {
		t.Errorf("day window = [%d, %d], want [5, 12]", q.StartDay, q.EndDay)
	}
}

func TestParse_SingleLowercaseInput(t *testing.T) {
	q, err := testRouter().Parse(context.Background(), "  eze mad 2026-11  ", "u1")
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %v", err)
	}
	if q.Origin != "EZE" {
		t.Errorf("Origin = %q, input should be uppercased", q.Origin)
	}
}

func TestParse_SingleInvertedDayWindow(t *testing.T) {
	if _, err := testRouter().Parse(context.Background(), "EZE MAD 2026-11 12 5", "u1"); err == nil {
		t.Error("inverted day window expected error, got nil")
	}
}

// ── Multi city ─────────────────────────────────────────────────────────────

func TestParse_MultipleDestinationMonthly(t *testing.T) {
	q, err := testRouter().Parse(context.Background(), "EZE BRASIL 2026-11", "u1")
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %v", err)
	}
	if q.Kind != entity.KindMultipleDestination {
		t.Errorf("Kind = %q, want multiple_destination", q.Kind)
	}
	if q.Origin != "EZE" || len(q.Destinations) != 3 {
		t.Errorf("parsed origin %q with %d destinations, want EZE with 3", q.Origin, len(q.Destinations))
	}
	if q.FixedDay {
		t.Error("monthly region search should not be fixed day")
	}
}

func TestParse_MultipleOriginFixedDay(t *testing.T) {
	q, err := testRouter().Parse(context.Background(), "BRASIL EZE 2026-11-15", "u1")
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %v", err)
	}
	if q.Kind != entity.KindMultipleOrigin {
		t.Errorf("Kind = %q, want multiple_origin", q.Kind)
	}
	if !q.FixedDay {
		t.Error("full-date region search should be fixed day")
	}
	if q.DepartureDate != "2026-11-15" {
		t.Errorf("DepartureDate = %q, want 2026-11-15", q.DepartureDate)
	}
	if len(q.Origins) != 3 || q.Destination != "EZE" {
		t.Errorf("parsed %d origins to %q, want 3 origins to EZE", len(q.Origins), q.Destination)
	}
}

func TestParse_UnknownRegion(t *testing.T) {
	if _, err := testRouter().Parse(context.Background(), "EZE NARNIA 2026-11", "u1"); err == nil {
		t.Error("unknown region expected error, got nil")
	}
}

func TestParse_TwoRegions(t *testing.T) {
	if _, err := testRouter().Parse(context.Background(), "BRASIL BRASIL 2026-11", "u1"); err == nil {
		t.Error("two regions expected error, got nil")
	}
}

// ── Round trip ─────────────────────────────────────────────────────────────

func TestParse_RoundTrip(t *testing.T) {
	q, err := testRouter().Parse(context.Background(), "EZE GIG 2026-11-01 2026-11-20 5 12", "u1")
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %v", err)
	}
	if q.Kind != entity.KindRoundTrip {
		t.Errorf("Kind = %q, want round_trip", q.Kind)
	}
	if q.DepartureDate != "2026-11-01" || q.ReturnDate != "2026-11-20" {
		t.Errorf("dates = %s / %s, want 2026-11-01 / 2026-11-20", q.DepartureDate, q.ReturnDate)
	}
	if q.MinDays != 5 || q.MaxDays != 12 {
		t.Errorf("trip bounds = [%d, %d], want [5, 12]", q.MinDays, q.MaxDays)
	}
}

func TestParse_RoundTripInvertedBounds(t *testing.T) {
	if _, err := testRouter().Parse(context.Background(), "EZE GIG 2026-11-01 2026-11-20 12 5", "u1"); err == nil {
		t.Error("inverted trip bounds expected error, got nil")
	}
}

// ── Unparseable ────────────────────────────────────────────────────────────

func TestParse_Garbage(t *testing.T) {
	cases := []string{
		"",
		"hola",
		"EZE MAD",
		"EZE MAD mañana",
		"EZE MAD 2026",
	}
	for _, text := range cases {
		if _, err := testRouter().Parse(context.Background(), text, "u1"); err == nil {
			t.Errorf("Parse(%q) expected error, got nil", text)
		}
	}
}
