package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"awardsearch-service/internal/domain/entity"
	"awardsearch-service/internal/domain/repository"
	"awardsearch-service/pkg/logger"
	"awardsearch-service/pkg/metrics"
)

// Scheduler is the recurring-schedule capability the engine composes
type Scheduler interface {
	Register(expr string, fn func()) (int, error)
	Cancel(id int)
}

// alertRunTimeout bounds one scheduled re-run end to end
const alertRunTimeout = 15 * time.Minute

// AlertEngine re-runs saved searches on their cron schedules. Alerts notify
// only on a genuine price improvement; cron jobs push every fresh result.
// Scheduled runs bypass the dispatch queue: they are background work, not
// interactive traffic.
type AlertEngine struct {
	runner    *Runner
	alerts    repository.AlertRepository
	cronJobs  repository.CronJobRepository
	notifier  repository.Notifier
	scheduler Scheduler
	logger    logger.Logger
	metrics   *metrics.Metrics

	mu           sync.Mutex
	alertEntries map[string]int
	jobEntries   map[string]int
}

// NewAlertEngine creates a new alert engine
func NewAlertEngine(
	runner *Runner,
	alerts repository.AlertRepository,
	cronJobs repository.CronJobRepository,
	notifier repository.Notifier,
	scheduler Scheduler,
	log logger.Logger,
	m *metrics.Metrics,
) *AlertEngine {
	return &AlertEngine{
		runner:       runner,
		alerts:       alerts,
		cronJobs:     cronJobs,
		notifier:     notifier,
		scheduler:    scheduler,
		logger:       log,
		metrics:      m,
		alertEntries: make(map[string]int),
		jobEntries:   make(map[string]int),
	}
}

// Reload rebuilds every in-memory timer from the store. Called at process
// start and after any deletion; a record with a malformed cron expression is
// skipped and logged without blocking the rest.
func (e *AlertEngine) Reload(ctx context.Context) error {
	e.mu.Lock()
	for _, id := range e.alertEntries {
		e.scheduler.Cancel(id)
	}
	for _, id := range e.jobEntries {
		e.scheduler.Cancel(id)
	}
	e.alertEntries = make(map[string]int)
	e.jobEntries = make(map[string]int)
	e.mu.Unlock()

	alerts, err := e.alerts.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load alerts: %w", err)
	}
	for _, alert := range alerts {
		a := *alert
		id, err := e.scheduler.Register(a.CronExpr, func() {
			e.runAlert(a.UserID, a.Search)
		})
		if err != nil {
			e.logger.Error("could not register alert schedule",
				"userId", a.UserID, "search", a.Search, "cron", a.CronExpr, "error", err)
			continue
		}
		e.mu.Lock()
		e.alertEntries[a.ID] = id
		e.mu.Unlock()
	}

	jobs, err := e.cronJobs.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cron jobs: %w", err)
	}
	for _, job := range jobs {
		j := *job
		id, err := e.scheduler.Register(j.CronExpr, func() {
			e.runCronJob(j.UserID, j.Search, j.ChatID)
		})
		if err != nil {
			e.logger.Error("could not register cron job schedule",
				"userId", j.UserID, "search", j.Search, "cron", j.CronExpr, "error", err)
			continue
		}
		e.mu.Lock()
		e.jobEntries[j.ID] = id
		e.mu.Unlock()
	}

	e.logger.Info("schedules rebuilt", "alerts", len(alerts), "cronJobs", len(jobs))
	return nil
}

// CreateAlert persists a new alert, registers its timer and performs one
// immediate run to seed the baseline result
func (e *AlertEngine) CreateAlert(ctx context.Context, alert *entity.Alert) error {
	if err := e.alerts.Create(ctx, alert); err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	a := *alert
	id, err := e.scheduler.Register(a.CronExpr, func() {
		e.runAlert(a.UserID, a.Search)
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", a.CronExpr, err)
	}
	e.mu.Lock()
	e.alertEntries[a.ID] = id
	e.mu.Unlock()

	// Seeding run; the diff rules keep the very first result silent
	e.runAlert(a.UserID, a.Search)
	return nil
}

// CreateCronJob persists a new recurring search and registers its timer
func (e *AlertEngine) CreateCronJob(ctx context.Context, job *entity.CronJob) error {
	if err := e.cronJobs.Create(ctx, job); err != nil {
		return fmt.Errorf("failed to create cron job: %w", err)
	}

	j := *job
	id, err := e.scheduler.Register(j.CronExpr, func() {
		e.runCronJob(j.UserID, j.Search, j.ChatID)
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", j.CronExpr, err)
	}
	e.mu.Lock()
	e.jobEntries[j.ID] = id
	e.mu.Unlock()
	return nil
}

// DeleteAlert removes one alert and rebuilds the timers
func (e *AlertEngine) DeleteAlert(ctx context.Context, userID, search string) error {
	if err := e.alerts.Delete(ctx, userID, search); err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	return e.Reload(ctx)
}

// DeleteCronJob removes one recurring search and rebuilds the timers
func (e *AlertEngine) DeleteCronJob(ctx context.Context, userID, search string) error {
	if err := e.cronJobs.Delete(ctx, userID, search); err != nil {
		return fmt.Errorf("failed to delete cron job: %w", err)
	}
	return e.Reload(ctx)
}

// ResetUser invalidates all of a user's schedules
func (e *AlertEngine) ResetUser(ctx context.Context, userID string) error {
	if err := e.alerts.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete alerts: %w", err)
	}
	if err := e.cronJobs.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete cron jobs: %w", err)
	}
	return e.Reload(ctx)
}

func (e *AlertEngine) runAlert(userID, search string) {
	ctx, cancel := context.WithTimeout(context.Background(), alertRunTimeout)
	defer cancel()

	saved, err := e.alerts.FindByUserAndSearch(ctx, userID, search)
	if err != nil {
		e.logger.Error("alert vanished before its run", "userId", userID, "search", search, "error", err)
		return
	}

	text, _, err := e.runner.RunText(ctx, saved.Search, saved.UserID)
	if err != nil {
		e.logger.Error("alert run failed", "userId", userID, "search", search, "error", err)
		return
	}

	notify := ShouldNotify(saved.PreviousResult, text)

	// Always persist the latest observation, so the next cycle diffs
	// against what the user last could have seen
	if err := e.alerts.UpdateResult(ctx, saved.ID, text); err != nil {
		e.logger.Error("failed to persist alert result", "userId", userID, "search", search, "error", err)
	}

	if !notify {
		return
	}

	e.logger.Info("sending alert", "userId", userID, "search", search)
	if err := e.notifier.SendMessage(ctx, saved.ChatID, fmt.Sprintf("alerta: %s podría haber bajado de precio", saved.Search)); err != nil {
		e.logger.Error("failed to send alert notice", "userId", userID, "error", err)
		return
	}
	if err := e.notifier.SendMessage(ctx, saved.ChatID, text); err != nil {
		e.logger.Error("failed to send alert result", "userId", userID, "error", err)
		return
	}
	if e.metrics != nil {
		e.metrics.AlertsNotified.Inc()
	}
}

func (e *AlertEngine) runCronJob(userID, search string, chatID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), alertRunTimeout)
	defer cancel()

	text, _, err := e.runner.RunText(ctx, search, userID)
	if err != nil {
		e.logger.Error("cron job run failed", "userId", userID, "search", search, "error", err)
		return
	}
	if err := e.notifier.SendMessage(ctx, chatID, text); err != nil {
		e.logger.Error("failed to send cron job result", "userId", userID, "error", err)
	}
}

// ShouldNotify decides whether a fresh result is worth a notification given
// the previously stored one:
//   - no parseable price in the new result: nothing concrete to report
//   - no parseable price in the previous result: notify only when a previous
//     result text existed, so the very first run seeds silently while a
//     transition from "had results, no parseable price" to "has a price"
//     does notify
//   - otherwise notify on a strict price drop
func ShouldNotify(previousResult, newResult string) bool {
	newPrice, ok := MinPrice(newResult)
	if !ok {
		return false
	}
	prevPrice, prevOK := MinPrice(previousResult)
	if !prevOK {
		return previousResult != ""
	}
	return newPrice < prevPrice
}
