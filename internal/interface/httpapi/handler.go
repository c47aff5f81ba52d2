package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"awardsearch-service/internal/domain/entity"
	"awardsearch-service/internal/domain/repository"
	"awardsearch-service/internal/usecase"
	"awardsearch-service/pkg/logger"
)

// Handler exposes the search and alert operations over HTTP. Search results
// are delivered asynchronously through the notifier once the queued job runs;
// the synchronous response only tells the caller where it sits in the queue.
type Handler struct {
	runner   *usecase.Runner
	queue    *usecase.DispatchQueue
	alerts   *usecase.AlertEngine
	prefs    repository.PreferenceRepository
	notifier repository.Notifier
	logger   logger.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	runner *usecase.Runner,
	queue *usecase.DispatchQueue,
	alerts *usecase.AlertEngine,
	prefs repository.PreferenceRepository,
	notifier repository.Notifier,
	log logger.Logger,
) *Handler {
	return &Handler{
		runner:   runner,
		queue:    queue,
		alerts:   alerts,
		prefs:    prefs,
		notifier: notifier,
		logger:   log,
	}
}

// Register mounts all routes on the given mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/search", h.handleSearch)
	mux.HandleFunc("POST /api/v1/alerts", h.handleCreateAlert)
	mux.HandleFunc("DELETE /api/v1/alerts", h.handleDeleteAlert)
	mux.HandleFunc("POST /api/v1/cronjobs", h.handleCreateCronJob)
	mux.HandleFunc("DELETE /api/v1/cronjobs", h.handleDeleteCronJob)
	mux.HandleFunc("PUT /api/v1/preferences", h.handlePutPreferences)
	mux.HandleFunc("POST /api/v1/reset", h.handleReset)
}

type searchRequest struct {
	UserID string `json:"userId"`
	ChatID int64  `json:"chatId"`
	Text   string `json:"text"`
}

type searchResponse struct {
	Position   int     `json:"position"`
	EtaSeconds float64 `json:"etaSeconds"`
}

type alertRequest struct {
	UserID string `json:"userId"`
	ChatID int64  `json:"chatId"`
	Search string `json:"search"`
	Cron   string `json:"cron"`
}

type deleteRequest struct {
	UserID string `json:"userId"`
	Search string `json:"search"`
}

type resetRequest struct {
	UserID string `json:"userId"`
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "text and userId are required")
		return
	}

	// A malformed query fails here instead of occupying a queue slot
	if _, err := h.runner.Parse(r.Context(), req.Text, req.UserID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := req.UserID
	chatID := req.ChatID
	text := req.Text

	position, wait := h.queue.Enqueue(func(ctx context.Context) {
		rendered, _, err := h.runner.RunText(ctx, text, userID)
		if err != nil {
			h.logger.Error("queued search failed", "userId", userID, "error", err)
			rendered = "La búsqueda falló, intentá de nuevo más tarde"
		}
		if err := h.notifier.SendMessage(ctx, chatID, rendered); err != nil {
			h.logger.Error("failed to deliver search result", "chatId", chatID, "error", err)
		}
	}, chatID, true)

	writeJSON(w, http.StatusAccepted, searchResponse{
		Position:   position,
		EtaSeconds: wait.Seconds(),
	})
}

func (h *Handler) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var req alertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.Search == "" || req.Cron == "" {
		writeError(w, http.StatusBadRequest, "userId, search and cron are required")
		return
	}

	alert := &entity.Alert{
		UserID:   req.UserID,
		ChatID:   req.ChatID,
		Search:   req.Search,
		CronExpr: req.Cron,
	}
	if err := h.alerts.CreateAlert(r.Context(), alert); err != nil {
		h.logger.Error("failed to create alert", "userId", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not create alert")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": alert.ID})
}

func (h *Handler) handleDeleteAlert(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.alerts.DeleteAlert(r.Context(), req.UserID, req.Search); err != nil {
		h.logger.Error("failed to delete alert", "userId", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete alert")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreateCronJob(w http.ResponseWriter, r *http.Request) {
	var req alertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.Search == "" || req.Cron == "" {
		writeError(w, http.StatusBadRequest, "userId, search and cron are required")
		return
	}

	job := &entity.CronJob{
		UserID:   req.UserID,
		ChatID:   req.ChatID,
		Search:   req.Search,
		CronExpr: req.Cron,
	}
	if err := h.alerts.CreateCronJob(r.Context(), job); err != nil {
		h.logger.Error("failed to create cron job", "userId", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not create cron job")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": job.ID})
}

func (h *Handler) handleDeleteCronJob(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.alerts.DeleteCronJob(r.Context(), req.UserID, req.Search); err != nil {
		h.logger.Error("failed to delete cron job", "userId", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete cron job")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	var prefs entity.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if prefs.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if err := h.prefs.Upsert(r.Context(), &prefs); err != nil {
		h.logger.Error("failed to save preferences", "userId", prefs.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not save preferences")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	// Resetting preferences invalidates every schedule the user owns
	if err := h.prefs.Reset(r.Context(), req.UserID); err != nil {
		h.logger.Error("failed to reset preferences", "userId", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not reset user")
		return
	}
	if err := h.alerts.ResetUser(r.Context(), req.UserID); err != nil {
		h.logger.Error("failed to reset user", "userId", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not reset user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
