package usecase

import (
	"context"
	"time"

	"awardsearch-service/internal/domain/entity"
	"awardsearch-service/internal/domain/repository"
	"awardsearch-service/pkg/logger"
	"awardsearch-service/pkg/utils"
)

// QueryParser turns raw search text into a structured query
type QueryParser interface {
	Parse(ctx context.Context, text, userID string) (*entity.SearchQuery, error)
}

// ResultRenderer formats a search result into the text block handed to the
// chat layer; the alert differ diffs these blocks
type ResultRenderer interface {
	RenderResult(q *entity.SearchQuery, result *entity.FlightResult) string
}

// Runner executes one raw search text end to end: parse, load the user's
// preferences, expand and fetch, render
type Runner struct {
	parser   QueryParser
	prefs    repository.PreferenceRepository
	search   *SearchService
	renderer ResultRenderer
	history  repository.FlightSearchRepository
	logger   logger.Logger
}

// NewRunner creates a new runner
func NewRunner(
	parser QueryParser,
	prefs repository.PreferenceRepository,
	search *SearchService,
	renderer ResultRenderer,
	history repository.FlightSearchRepository,
	log logger.Logger,
) *Runner {
	return &Runner{
		parser:   parser,
		prefs:    prefs,
		search:   search,
		renderer: renderer,
		history:  history,
		logger:   log,
	}
}

// Parse validates raw search text without executing it
func (r *Runner) Parse(ctx context.Context, text, userID string) (*entity.SearchQuery, error) {
	return r.parser.Parse(ctx, text, userID)
}

// RunText parses and executes a search, returning the rendered result text
func (r *Runner) RunText(ctx context.Context, text, userID string) (string, *entity.SearchQuery, error) {
	q, err := r.parser.Parse(ctx, text, userID)
	if err != nil {
		return "", nil, err
	}

	prefs, err := r.prefs.GetByUserID(ctx, userID)
	if err != nil {
		// Missing preferences are the common case, not a failure
		prefs = nil
	}

	result, err := r.search.Run(ctx, q, prefs)
	if err != nil {
		return "", q, err
	}

	r.recordHistory(ctx, q, result)

	return r.renderer.RenderResult(q, result), q, nil
}

// recordHistory keeps single searches that produced results; history is
// best-effort and never fails the search
func (r *Runner) recordHistory(ctx context.Context, q *entity.SearchQuery, result *entity.FlightResult) {
	if r.history == nil || q.Kind != entity.KindSingle || len(result.Results) == 0 {
		return
	}
	search := &entity.FlightSearch{
		UserID:      q.UserID,
		Source:      "api",
		Origin:      q.Origin,
		Destination: q.Destination,
		Year:        utils.YearOf(q.DepartureDate),
		Month:       utils.MonthOf(q.DepartureDate),
		BestPrice:   result.Results[0].Price,
		SearchedAt:  time.Now(),
	}
	if err := r.history.Create(ctx, search); err != nil {
		r.logger.Warn("failed to record search history", "userId", q.UserID, "error", err)
	}
}
