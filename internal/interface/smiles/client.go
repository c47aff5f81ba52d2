package smiles

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"awardsearch-service/internal/domain/entity"
	"awardsearch-service/internal/infrastructure/cache"
	"awardsearch-service/pkg/logger"
	"awardsearch-service/pkg/metrics"
)

// TripTypeOneWay is the trip-type flag sent on every expanded request; round
// trips are searched as two independent one-way matrices
const TripTypeOneWay = "2"

// ClientOptions configures the upstream client
type ClientOptions struct {
	SearchURL string
	TaxURL    string
	APIKey    string
	// Origin is sent as the origin and referer fingerprint headers
	Origin  string
	Timeout time.Duration
}

// Client issues award search and boarding tax queries against the upstream
// API. Fetch failures never propagate: a terminal failure degrades to an
// empty response so aggregation code has no failure branch.
type Client struct {
	opts       ClientOptions
	httpClient *http.Client
	identity   IdentityProvider
	cache      *cache.ResponseCache
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a new upstream client
func NewClient(opts ClientOptions, identity IdentityProvider, respCache *cache.ResponseCache, log logger.Logger, m *metrics.Metrics) *Client {
	return &Client{
		opts:       opts,
		httpClient: &http.Client{Timeout: opts.Timeout},
		identity:   identity,
		cache:      respCache,
		logger:     log,
		metrics:    m,
	}
}

// SearchFlights runs one parameterized search. At most one retry, and only
// for transient failures; anything else returns the empty sentinel.
func (c *Client) SearchFlights(ctx context.Context, params entity.ParameterSet) *FlightListResponse {
	search := fmt.Sprintf("%s %s %s", params.OriginAirportCode, params.DestinationAirportCode, params.DepartureDate)
	cacheKey := "search:" + searchValues(params).Encode()

	if data := c.cache.Get(ctx, cacheKey); data != nil {
		var cached FlightListResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached
		}
	}

	var lastErr error
	for attempt := 1; attempt <= retryLimit; attempt++ {
		if attempt > 1 {
			c.logger.Info("retrying search", "search", search)
			if c.metrics != nil {
				c.metrics.FetchRetriesTotal.Inc()
			}
		}

		resp, raw, err := c.doSearch(ctx, params)
		if err == nil {
			if attempt > 1 {
				c.logger.Info("retry success", "search", search)
			}
			c.cache.Set(ctx, cacheKey, raw)
			return resp
		}

		lastErr = err
		c.logger.Warn("error getting flight details",
			"search", search,
			"willRetry", shouldRetry(err) && attempt < retryLimit,
			"attempt", attempt,
			"error", err)
		if !shouldRetry(err) {
			break
		}
	}

	c.logger.Error("could not get flights", "search", search, "error", lastErr)
	if c.metrics != nil {
		c.metrics.FetchFailuresTotal.Inc()
	}
	return emptyResponse()
}

func (c *Client) doSearch(ctx context.Context, params entity.ParameterSet) (*FlightListResponse, []byte, error) {
	reqURL := c.opts.SearchURL + "?" + searchValues(params).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, nil, &statusError{Status: resp.StatusCode, BodyError: bodyErrorOf(body)}
	}

	var flightList FlightListResponse
	if err := json.Unmarshal(body, &flightList); err != nil {
		return nil, nil, err
	}
	if flightList.ErrorMessage != "" {
		return nil, nil, &statusError{Status: resp.StatusCode, BodyError: flightList.ErrorMessage}
	}
	return &flightList, body, nil
}

// GetTax looks up the boarding tax for one flight/fare pair. Retried under
// the same classification as searches; a flight without tax information is
// dropped by validation later, so failure returns nil rather than an error.
func (c *Client) GetTax(ctx context.Context, uid, fareUID string, smilesAndMoney bool) *entity.TaxQuote {
	highlight := FareSmilesClub
	if smilesAndMoney {
		highlight = FareSmilesMoneyClub
	}
	values := url.Values{}
	values.Set("adults", "1")
	values.Set("children", "0")
	values.Set("infants", "0")
	values.Set("fareuid", fareUID)
	values.Set("uid", uid)
	values.Set("type", "SEGMENT_1")
	values.Set("highlightText", highlight)

	var lastErr error
	for attempt := 1; attempt <= retryLimit; attempt++ {
		quote, err := c.doTax(ctx, values)
		if err == nil {
			return quote
		}
		lastErr = err
		if !shouldRetry(err) {
			break
		}
	}

	c.logger.Error("could not get tax", "uid", uid, "error", lastErr)
	if c.metrics != nil {
		c.metrics.TaxLookupFailures.Inc()
	}
	return nil
}

func (c *Client) doTax(ctx context.Context, values url.Values) (*entity.TaxQuote, error) {
	reqURL := c.opts.TaxURL + "?" + values.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{Status: resp.StatusCode, BodyError: bodyErrorOf(body)}
	}

	var tax taxResponse
	if err := json.Unmarshal(body, &tax); err != nil {
		return nil, err
	}

	miles := tax.Totals.TotalBoardingTax.Miles
	money := tax.Totals.TotalBoardingTax.Money
	return &entity.TaxQuote{
		Miles:       fmt.Sprintf("%dK", int(miles/1000)),
		MilesNumber: miles,
		Money:       fmt.Sprintf("$%dK", int(money/1000)),
		MoneyNumber: money,
	}, nil
}

// BuildRecord maps one search response into a FlightRecord, performing the
// tax lookup when the winning fare carries a fare identifier. ok is false
// when the response holds no offer that survives the user's filters.
func (c *Client) BuildRecord(ctx context.Context, resp *FlightListResponse, prefs *entity.Preferences, cabinType string) (entity.FlightRecord, bool) {
	if resp == nil || len(resp.RequestedFlightSegmentList) == 0 {
		return entity.FlightRecord{}, false
	}

	fareType := FareSmilesClub
	if prefs != nil && prefs.SmilesAndMoney {
		fareType = FareSmilesMoneyClub
	}

	flight, price, money, fareUID := bestFare(resp.RequestedFlightSegmentList[0], prefs, cabinType, fareType)
	if flight == nil {
		return entity.FlightRecord{}, false
	}

	record := entity.FlightRecord{
		Origin:      flight.Departure.Airport.Code,
		Destination: flight.Arrival.Airport.Code,
		Price:       price,
		Money:       money,
		Stops:       strconv.Itoa(flight.Stops),
		Duration:    strconv.Itoa(flight.Duration.Hours),
		Airline:     flight.Airline.Name,
		Seats:       strconv.Itoa(flight.AvailableSeats),
	}

	if departure, err := parseFlightDate(flight.Departure.Date); err == nil {
		record.DepartureDate = departure
		record.DepartureDay = departure.Day()
	}

	if fareUID != "" {
		record.Tax = c.GetTax(ctx, flight.UID, fareUID, prefs != nil && prefs.SmilesAndMoney)
	}

	return record, true
}

func (c *Client) setHeaders(req *http.Request) {
	token, userAgent := c.identity.Identity()
	req.Header.Set("accept-language", "es-AR,es;q=0.9,en;q=0.8,en-GB;q=0.7,en-US;q=0.6,es-419;q=0.5")
	req.Header.Set("authorization", "Bearer "+token)
	req.Header.Set("cache-control", "no-cache")
	req.Header.Set("channel", "Web")
	req.Header.Set("language", "es-ES")
	req.Header.Set("origin", c.opts.Origin)
	req.Header.Set("pragma", "no-cache")
	req.Header.Set("priority", "u=1, i")
	req.Header.Set("referer", c.opts.Origin+"/")
	req.Header.Set("region", "ARGENTINA")
	req.Header.Set("sec-ch-ua", `"Brave";v="125", "Chromium";v="125", "Not.A/Brand";v="24"`)
	req.Header.Set("sec-ch-ua-mobile", "?0")
	req.Header.Set("sec-ch-ua-platform", `"macOS"`)
	req.Header.Set("sec-fetch-dest", "empty")
	req.Header.Set("sec-fetch-mode", "cors")
	req.Header.Set("sec-fetch-site", "cross-site")
	req.Header.Set("sec-gpc", "1")
	req.Header.Set("user-agent", userAgent)
	req.Header.Set("x-api-key", c.opts.APIKey)
}

func searchValues(params entity.ParameterSet) url.Values {
	values := url.Values{}
	values.Set("adults", params.Adults)
	values.Set("cabinType", params.CabinType)
	values.Set("children", params.Children)
	values.Set("currencyCode", params.CurrencyCode)
	values.Set("infants", params.Infants)
	values.Set("isFlexibleDateChecked", "false")
	values.Set("tripType", params.TripType)
	values.Set("forceCongener", params.ForceCongener)
	values.Set("r", params.Region)
	values.Set("originAirportCode", params.OriginAirportCode)
	values.Set("destinationAirportCode", params.DestinationAirportCode)
	values.Set("departureDate", params.DepartureDate)
	return values
}

func bodyErrorOf(body []byte) string {
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return string(body)
	}
	return parsed.Error
}

func parseFlightDate(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if len(raw) >= len(layout) {
			if t, err := time.Parse(layout, raw[:len(layout)]); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized flight date %q", raw)
}
