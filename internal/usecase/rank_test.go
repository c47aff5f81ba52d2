package usecase_test

import (
	"testing"

	"awardsearch-service/internal/domain/entity"
	"awardsearch-service/internal/usecase"
)

func flightAt(price int64, tax *entity.TaxQuote) entity.FlightRecord {
	return entity.FlightRecord{
		Origin:      "EZE",
		Destination: "MAD",
		Price:       price,
		Tax:         tax,
	}
}

var someTax = &entity.TaxQuote{Miles: "21K", MilesNumber: 21000, Money: "$30K", MoneyNumber: 30000}

// ── ValidFlight ────────────────────────────────────────────────────────────

func TestValidFlight(t *testing.T) {
	cases := []struct {
		name   string
		flight entity.FlightRecord
		want   bool
	}{
		{"priced with tax", flightAt(150000, someTax), true},
		{"zero price", flightAt(0, someTax), false},
		{"no result sentinel", flightAt(entity.PriceNoResult, someTax), false},
		{"missing tax", flightAt(150000, nil), false},
		{"tax without miles", flightAt(150000, &entity.TaxQuote{}), false},
	}
	for _, c := range cases {
		if got := usecase.ValidFlight(c.flight); got != c.want {
			t.Errorf("ValidFlight(%s) = %v, want %v", c.name, got, c.want)
		}
	}
}

// ── ValidFlights ───────────────────────────────────────────────────────────

func TestValidFlights_DropsInvalidKeepingOrder(t *testing.T) {
	records := []entity.FlightRecord{
		flightAt(300000, someTax),
		flightAt(entity.PriceNoResult, someTax),
		flightAt(100000, someTax),
		flightAt(200000, nil),
	}
	got := usecase.ValidFlights(records)
	if len(got) != 2 {
		t.Fatalf("ValidFlights kept %d records, want 2", len(got))
	}
	if got[0].Price != 300000 || got[1].Price != 100000 {
		t.Errorf("ValidFlights reordered records: got [%d, %d]", got[0].Price, got[1].Price)
	}
}

// ── RankFlights ────────────────────────────────────────────────────────────

func TestRankFlights_SortsAscending(t *testing.T) {
	records := []entity.FlightRecord{
		flightAt(300000, someTax),
		flightAt(100000, someTax),
		flightAt(200000, someTax),
	}
	got := usecase.RankFlights(records, 10)
	want := []int64{100000, 200000, 300000}
	for i, price := range want {
		if got[i].Price != price {
			t.Errorf("RankFlights[%d].Price = %d, want %d", i, got[i].Price, price)
		}
	}
}

func TestRankFlights_Truncates(t *testing.T) {
	records := []entity.FlightRecord{
		flightAt(300000, someTax),
		flightAt(100000, someTax),
		flightAt(200000, someTax),
	}
	got := usecase.RankFlights(records, 2)
	if len(got) != 2 {
		t.Fatalf("RankFlights kept %d records, want 2", len(got))
	}
	if got[0].Price != 100000 || got[1].Price != 200000 {
		t.Errorf("RankFlights truncated to wrong records: [%d, %d]", got[0].Price, got[1].Price)
	}
}

func TestRankFlights_ZeroLimitKeepsAll(t *testing.T) {
	records := []entity.FlightRecord{
		flightAt(300000, someTax),
		flightAt(100000, someTax),
	}
	if got := usecase.RankFlights(records, 0); len(got) != 2 {
		t.Errorf("RankFlights with limit 0 kept %d records, want 2", len(got))
	}
}
