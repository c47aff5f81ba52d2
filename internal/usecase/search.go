package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"awardsearch-service/internal/domain/entity"
	"awardsearch-service/internal/interface/smiles"
	"awardsearch-service/pkg/logger"
	"awardsearch-service/pkg/metrics"
	"awardsearch-service/pkg/utils"
)

// Fetcher is the slice of the upstream client the expander needs
type Fetcher interface {
	SearchFlights(ctx context.Context, params entity.ParameterSet) *smiles.FlightListResponse
	BuildRecord(ctx context.Context, resp *smiles.FlightListResponse, prefs *entity.Preferences, cabinType string) (entity.FlightRecord, bool)
}

// SearchOptions configures expansion defaults
type SearchOptions struct {
	CurrencyCode      string
	ProgramRegion     string
	DefaultMaxResults int
}

// SearchService expands one logical query into its parameter matrix, fetches
// every combination concurrently and aggregates the survivors
type SearchService struct {
	client  Fetcher
	opts    SearchOptions
	logger  logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewSearchService creates a new search service
func NewSearchService(client Fetcher, opts SearchOptions, log logger.Logger, m *metrics.Metrics) *SearchService {
	if opts.DefaultMaxResults <= 0 {
		opts.DefaultMaxResults = 10
	}
	if opts.CurrencyCode == "" {
		opts.CurrencyCode = "ARS"
	}
	if opts.ProgramRegion == "" {
		opts.ProgramRegion = "ar"
	}
	return &SearchService{
		client:  client,
		opts:    opts,
		logger:  log,
		metrics: m,
		now:     time.Now,
	}
}

// Run executes a query with the expansion strategy its kind requires
func (s *SearchService) Run(ctx context.Context, q *entity.SearchQuery, prefs *entity.Preferences) (*entity.FlightResult, error) {
	started := s.now()
	if s.metrics != nil {
		s.metrics.SearchesTotal.WithLabelValues(string(q.Kind)).Inc()
		defer func() {
			s.metrics.SearchDuration.Observe(time.Since(started).Seconds())
		}()
	}

	switch q.Kind {
	case entity.KindSingle:
		return s.GetFlights(ctx, q, prefs)
	case entity.KindMultipleDestination:
		return s.GetFlightsMultipleCities(ctx, q, prefs, q.FixedDay, false)
	case entity.KindMultipleOrigin:
		return s.GetFlightsMultipleCities(ctx, q, prefs, q.FixedDay, true)
	case entity.KindRoundTrip:
		return s.GetFlightsRoundTrip(ctx, q, prefs)
	default:
		return nil, fmt.Errorf("unknown query kind %q", q.Kind)
	}
}

// GetFlights runs a single-destination monthly search
func (s *SearchService) GetFlights(ctx context.Context, q *entity.SearchQuery, prefs *entity.Preferences) (*entity.FlightResult, error) {
	params, err := s.ExpandSingle(q, prefs)
	if err != nil {
		return nil, err
	}

	records := s.fetchRecords(ctx, params, prefs, func(*smiles.FlightListResponse) string {
		return q.CabinType
	})

	return &entity.FlightResult{
		Results:        RankFlights(ValidFlights(records), s.maxResults(prefs)),
		DepartureMonth: utils.MonthOf(q.DepartureDate),
	}, nil
}

// GetFlightsMultipleCities runs a search where one side of the route varies
// over a list of cities
func (s *SearchService) GetFlightsMultipleCities(ctx context.Context, q *entity.SearchQuery, prefs *entity.Preferences, fixedDay, isMultipleOrigin bool) (*entity.FlightResult, error) {
	params, err := s.ExpandMultiCity(q, prefs, fixedDay, isMultipleOrigin)
	if err != nil {
		return nil, err
	}

	records := s.fetchRecords(ctx, params, prefs, func(*smiles.FlightListResponse) string {
		return q.CabinType
	})

	return &entity.FlightResult{
		Results:        RankFlights(ValidFlights(records), s.maxResults(prefs)),
		DepartureMonth: utils.MonthOf(q.DepartureDate),
	}, nil
}

// GetFlightsRoundTrip searches both legs of a round trip and pairs them
func (s *SearchService) GetFlightsRoundTrip(ctx context.Context, q *entity.SearchQuery, prefs *entity.Preferences) (*entity.FlightResult, error) {
	outbound, inbound, err := s.ExpandRoundTrip(q, prefs)
	if err != nil {
		return nil, err
	}

	// Cabin preference per leg was fixed when the parameter sets were built;
	// which leg a response answers is recovered from its departure airport.
	records := s.fetchRecords(ctx, append(outbound, inbound...), prefs, func(resp *smiles.FlightListResponse) string {
		if BelongsToCity(resp.DepartureAirport(), q.Origin) {
			return q.CabinType
		}
		return q.CabinComing
	})

	trips := MatchRoundTrips(ValidFlights(records), q.MinDays, q.MaxDays, q.Origin)
	if limit := s.maxResults(prefs); len(trips) > limit {
		trips = trips[:limit]
	}

	return &entity.FlightResult{
		RoundTrips:     trips,
		DepartureMonth: utils.MonthOf(q.DepartureDate),
	}, nil
}

// ExpandSingle produces one parameter set per day of the requested window,
// defaulting to the remainder of the target month
func (s *SearchService) ExpandSingle(q *entity.SearchQuery, prefs *entity.Preferences) ([]entity.ParameterSet, error) {
	startDay, endDay, err := s.dayWindow(q)
	if err != nil {
		return nil, err
	}

	var params []entity.ParameterSet
	for day := startDay; day <= endDay; day++ {
		date := utils.FormatSearchDate(q.DepartureDate, day)
		params = append(params, s.buildParams(q.Origin, q.Destination, date, q.Adults, prefs))
	}
	return params, nil
}

// ExpandMultiCity produces the product of the varying city list and the day
// window; with fixedDay the window collapses to the single requested date
func (s *SearchService) ExpandMultiCity(q *entity.SearchQuery, prefs *entity.Preferences, fixedDay, isMultipleOrigin bool) ([]entity.ParameterSet, error) {
	cities := q.Destinations
	if isMultipleOrigin {
		cities = q.Origins
	}
	if len(cities) == 0 {
		return nil, fmt.Errorf("no cities to search for region %q", q.Region)
	}

	var params []entity.ParameterSet
	if fixedDay {
		for _, city := range cities {
			origin, destination := q.Origin, city
			if isMultipleOrigin {
				origin, destination = city, q.Destination
			}
			params = append(params, s.buildParams(origin, destination, q.DepartureDate, q.Adults, prefs))
		}
		return params, nil
	}

	startDay, endDay, err := s.dayWindow(q)
	if err != nil {
		return nil, err
	}
	for _, city := range cities {
		for day := startDay; day <= endDay; day++ {
			origin, destination := q.Origin, city
			if isMultipleOrigin {
				origin, destination = city, q.Destination
			}
			date := utils.FormatSearchDate(q.DepartureDate, day)
			params = append(params, s.buildParams(origin, destination, date, q.Adults, prefs))
		}
	}
	return params, nil
}

// ExpandRoundTrip generates two independent day sequences: outbound dates up
// to (return - minDays) and inbound dates from (departure + minDays). Exact
// trip length enforcement happens in the matcher, so the volume stays linear
// in the window instead of quadratic.
func (s *SearchService) ExpandRoundTrip(q *entity.SearchQuery, prefs *entity.Preferences) (outbound, inbound []entity.ParameterSet, err error) {
	departure, err := time.Parse(utils.SearchDateLayout, q.DepartureDate)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid departure date %q: %w", q.DepartureDate, err)
	}
	ret, err := time.Parse(utils.SearchDateLayout, q.ReturnDate)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid return date %q: %w", q.ReturnDate, err)
	}

	adultsComing := q.AdultsComing
	if adultsComing == "" {
		adultsComing = q.Adults
	}

	lastDeparture := ret.AddDate(0, 0, -q.MinDays)
	for d := departure; !d.After(lastDeparture); d = d.AddDate(0, 0, 1) {
		outbound = append(outbound, s.buildParams(q.Origin, q.Destination, d.Format(utils.SearchDateLayout), q.Adults, prefs))
	}

	firstReturn := departure.AddDate(0, 0, q.MinDays)
	for d := firstReturn; !d.After(ret); d = d.AddDate(0, 0, 1) {
		inbound = append(inbound, s.buildParams(q.Destination, q.Origin, d.Format(utils.SearchDateLayout), adultsComing, prefs))
	}

	return outbound, inbound, nil
}

// fetchRecords runs every parameter set concurrently, waits for all of them
// and maps each response into a record; the tax lookups inside BuildRecord
// run concurrently too. Fetch failures already degrade to the empty sentinel
// inside the client, so every fetch settles.
func (s *SearchService) fetchRecords(ctx context.Context, params []entity.ParameterSet, prefs *entity.Preferences, cabinFor func(*smiles.FlightListResponse) string) []entity.FlightRecord {
	responses := make([]*smiles.FlightListResponse, len(params))
	var wg sync.WaitGroup
	for i, p := range params {
		wg.Add(1)
		go func(i int, p entity.ParameterSet) {
			defer wg.Done()
			responses[i] = s.client.SearchFlights(ctx, p)
		}(i, p)
	}
	wg.Wait()

	records := make([]entity.FlightRecord, len(responses))
	ok := make([]bool, len(responses))
	for i, resp := range responses {
		wg.Add(1)
		go func(i int, resp *smiles.FlightListResponse) {
			defer wg.Done()
			records[i], ok[i] = s.client.BuildRecord(ctx, resp, prefs, cabinFor(resp))
		}(i, resp)
	}
	wg.Wait()

	kept := make([]entity.FlightRecord, 0, len(records))
	for i, r := range records {
		if ok[i] {
			kept = append(kept, r)
		}
	}
	return kept
}

func (s *SearchService) dayWindow(q *entity.SearchQuery) (int, int, error) {
	startDay := q.StartDay
	if startDay <= 0 {
		first, err := utils.FirstSearchableDay(q.DepartureDate, s.now())
		if err != nil {
			return 0, 0, err
		}
		startDay = first
	}
	endDay := q.EndDay
	if endDay <= 0 {
		last, err := utils.LastDayOfMonth(q.DepartureDate)
		if err != nil {
			return 0, 0, err
		}
		endDay = last
	}
	return startDay, endDay, nil
}

func (s *SearchService) buildParams(origin, destination, date, adults string, prefs *entity.Preferences) entity.ParameterSet {
	forceCongener := "true"
	if prefs != nil && prefs.BrasilNonGol != nil && !*prefs.BrasilNonGol {
		forceCongener = "false"
	}
	if adults == "" {
		adults = "1"
	}
	return entity.ParameterSet{
		OriginAirportCode:      origin,
		DestinationAirportCode: destination,
		DepartureDate:          date,
		Adults:                 adults,
		Children:               "0",
		Infants:                "0",
		CabinType:              "all",
		CurrencyCode:           s.opts.CurrencyCode,
		TripType:               smiles.TripTypeOneWay,
		ForceCongener:          forceCongener,
		Region:                 s.opts.ProgramRegion,
	}
}

func (s *SearchService) maxResults(prefs *entity.Preferences) int {
	if prefs != nil && prefs.MaxResults > 0 {
		return prefs.MaxResults
	}
	return s.opts.DefaultMaxResults
}
