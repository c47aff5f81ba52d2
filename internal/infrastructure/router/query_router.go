package router

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"awardsearch-service/internal/domain/entity"
	"awardsearch-service/internal/domain/repository"
	"awardsearch-service/pkg/logger"
)

// Search text grammar, one pattern per query kind. A city is a 3-letter
// airport code; a region is a longer word resolved through the region
// catalog.
var (
	regexSingle = regexp.MustCompile(`^([A-Z]{3})\s+([A-Z]{3})\s+(\d{4}[-/]\d{2})(?:\s+(\d{1,2})\s+(\d{1,2}))?$`)

	regexMultiMonthly = regexp.MustCompile(`^([A-Z]{3}|[A-Z]{4,})\s+([A-Z]{3}|[A-Z]{4,})\s+(\d{4}[-/]\d{2})$`)

	regexMultiFixedDay = regexp.MustCompile(`^([A-Z]{3}|[A-Z]{4,})\s+([A-Z]{3}|[A-Z]{4,})\s+(\d{4}[-/]\d{2}[-/]\d{2})$`)

	regexRoundTrip = regexp.MustCompile(`^([A-Z]{3})\s+([A-Z]{3})\s+(\d{4}[-/]\d{2}[-/]\d{2})\s+(\d{4}[-/]\d{2}[-/]\d{2})\s+(\d{1,3})\s+(\d{1,3})$`)
)

// QueryRouter parses raw search text into the structured query the expander
// consumes, resolving region names through the region catalog
type QueryRouter struct {
	regions repository.RegionRepository
	logger  logger.Logger
}

// NewQueryRouter creates a new query router
func NewQueryRouter(regions repository.RegionRepository, logger logger.Logger) *QueryRouter {
	return &QueryRouter{
		regions: regions,
		logger:  logger,
	}
}

// Parse maps one line of search text onto a SearchQuery
func (r *QueryRouter) Parse(ctx context.Context, text, userID string) (*entity.SearchQuery, error) {
	normalized := strings.ToUpper(strings.TrimSpace(text))

	if m := regexRoundTrip.FindStringSubmatch(normalized); m != nil {
		return r.parseRoundTrip(m, userID)
	}
	if m := regexSingle.FindStringSubmatch(normalized); m != nil {
		return r.parseSingle(m, userID)
	}
	if m := regexMultiFixedDay.FindStringSubmatch(normalized); m != nil {
		return r.parseMultiCity(ctx, m, userID, true)
	}
	if m := regexMultiMonthly.FindStringSubmatch(normalized); m != nil {
		return r.parseMultiCity(ctx, m, userID, false)
	}

	return nil, fmt.Errorf("could not parse search %q", text)
}

func (r *QueryRouter) parseSingle(m []string, userID string) (*entity.SearchQuery, error) {
	q := &entity.SearchQuery{
		Kind:          entity.KindSingle,
		Origin:        m[1],
		Destination:   m[2],
		DepartureDate: isoMonth(m[3]),
		UserID:        userID,
	}
	if m[4] != "" && m[5] != "" {
		startDay, _ := strconv.Atoi(m[4])
		endDay, _ := strconv.Atoi(m[5])
		if endDay < startDay {
			return nil, fmt.Errorf("day range %d-%d is inverted", startDay, endDay)
		}
		q.StartDay = startDay
		q.EndDay = endDay
	}
	return q, nil
}

func (r *QueryRouter) parseMultiCity(ctx context.Context, m []string, userID string, fixedDay bool) (*entity.SearchQuery, error) {
	origin, destination := m[1], m[2]
	originIsRegion := len(origin) > 3
	destinationIsRegion := len(destination) > 3

	if originIsRegion == destinationIsRegion {
		return nil, fmt.Errorf("exactly one side must be a region, got %q and %q", origin, destination)
	}

	q := &entity.SearchQuery{
		DepartureDate: isoMonth(m[3]),
		FixedDay:      fixedDay,
		UserID:        userID,
	}

	if originIsRegion {
		region, err := r.regions.GetByName(ctx, origin)
		if err != nil {
			return nil, err
		}
		q.Kind = entity.KindMultipleOrigin
		q.Region = region.Name
		q.Origins = region.Airports
		q.Destination = destination
	} else {
		region, err := r.regions.GetByName(ctx, destination)
		if err != nil {
			return nil, err
		}
		q.Kind = entity.KindMultipleDestination
		q.Region = region.Name
		q.Origin = origin
		q.Destinations = region.Airports
	}
	return q, nil
}

func (r *QueryRouter) parseRoundTrip(m []string, userID string) (*entity.SearchQuery, error) {
	minDays, _ := strconv.Atoi(m[5])
	maxDays, _ := strconv.Atoi(m[6])
	if maxDays < minDays {
		return nil, fmt.Errorf("trip length bounds %d-%d are inverted", minDays, maxDays)
	}
	return &entity.SearchQuery{
		Kind:          entity.KindRoundTrip,
		Origin:        m[1],
		Destination:   m[2],
		DepartureDate: isoMonth(m[3]),
		ReturnDate:    isoMonth(m[4]),
		MinDays:       minDays,
		MaxDays:       maxDays,
		UserID:        userID,
	}, nil
}

// isoMonth normalizes "YYYY/MM..." date separators to dashes
func isoMonth(raw string) string {
	return strings.ReplaceAll(raw, "/", "-")
}
