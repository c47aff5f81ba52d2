package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"awardsearch-service/internal/domain/entity"
	"awardsearch-service/internal/interface/httpapi"
	"awardsearch-service/internal/interface/smiles"
	"awardsearch-service/internal/usecase"
	"awardsearch-service/pkg/logger"
)

type fixedParser struct{}

func (fixedParser) Parse(ctx context.Context, text, userID string) (*entity.SearchQuery, error) {
	if !strings.HasPrefix(text, "EZE") {
		return nil, errors.New("could not parse search")
	}
	return &entity.SearchQuery{Kind: entity.KindSingle, Origin: "EZE", Destination: "MAD", DepartureDate: "2026-11", StartDay: 1, EndDay: 1, UserID: userID}, nil
}

type noFlights struct{}

func (noFlights) SearchFlights(ctx context.Context, params entity.ParameterSet) *smiles.FlightListResponse {
	return &smiles.FlightListResponse{}
}

func (noFlights) BuildRecord(ctx context.Context, resp *smiles.FlightListResponse, prefs *entity.Preferences, cabinType string) (entity.FlightRecord, bool) {
	return entity.FlightRecord{}, false
}

type noPrefs struct{}

func (noPrefs) GetByUserID(ctx context.Context, userID string) (*entity.Preferences, error) {
	return nil, errors.New("not found")
}
func (noPrefs) Upsert(ctx context.Context, prefs *entity.Preferences) error { return nil }
func (noPrefs) Reset(ctx context.Context, userID string) error              { return nil }

type plainRenderer struct{}

func (plainRenderer) RenderResult(q *entity.SearchQuery, result *entity.FlightResult) string {
	return "No se encontraron vuelos para esa búsqueda"
}

type dropNotifier struct{}

func (dropNotifier) SendMessage(ctx context.Context, chatID int64, text string) error { return nil }

func testMux() *http.ServeMux {
	log := logger.NewLogger()
	search := usecase.NewSearchService(noFlights{}, usecase.SearchOptions{}, log, nil)
	runner := usecase.NewRunner(fixedParser{}, noPrefs{}, search, plainRenderer{}, nil, log)
	queue := usecase.NewDispatchQueue(5*time.Millisecond, 65*time.Second, log, nil)

	mux := http.NewServeMux()
	httpapi.NewHandler(runner, queue, nil, noPrefs{}, dropNotifier{}, log).Register(mux)
	return mux
}

// ── POST /api/v1/search ────────────────────────────────────────────────────

func TestSearchEndpoint_EnqueuesAndReportsPosition(t *testing.T) {
	mux := testMux()

	body := `{"userId": "u1", "chatId": 42, "text": "EZE MAD 2026-11"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	var resp struct {
		Position   int     `json:"position"`
		EtaSeconds float64 `json:"etaSeconds"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("response not valid JSON: %v", err)
	}
	if resp.Position != 0 {
		t.Errorf("position = %d, want 0 for an empty queue", resp.Position)
	}
}

func TestSearchEndpoint_SecondJobWaits(t *testing.T) {
	mux := testMux()

	body := `{"userId": "u1", "chatId": 42, "text": "EZE MAD 2026-11"}`
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		var resp struct {
			Position   int     `json:"position"`
			EtaSeconds float64 `json:"etaSeconds"`
		}
		json.NewDecoder(rec.Body).Decode(&resp)
		if resp.Position != i {
			t.Errorf("request %d got position %d", i, resp.Position)
		}
		if i == 1 && resp.EtaSeconds < 60 {
			t.Errorf("second job eta = %v seconds, want at least one cooldown", resp.EtaSeconds)
		}
	}
}

func TestSearchEndpoint_UnparseableQuery(t *testing.T) {
	mux := testMux()

	body := `{"userId": "u1", "chatId": 42, "text": "hola"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for an unparseable query", rec.Code)
	}
}

func TestSearchEndpoint_MissingFields(t *testing.T) {
	mux := testMux()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(`{"chatId": 42}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 when text and userId are missing", rec.Code)
	}
}

func TestSearchEndpoint_InvalidBody(t *testing.T) {
	mux := testMux()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed JSON", rec.Code)
	}
}
