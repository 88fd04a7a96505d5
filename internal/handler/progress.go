package handler

import (
	"log/slog"
	"net/http"

	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
	services "eduweb/internal/domain/services/catalog"
	"eduweb/internal/httputil"
)

// ProgressHandler handles user progress HTTP requests
type ProgressHandler struct {
	progressService services.ProgressService
	logger          *slog.Logger
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService services.ProgressService, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
		logger:          logger,
	}
}

// ListProgress lists progress rows
// GET /api/user-progress
func (h *ProgressHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	opts := httputil.ListOptionsFromQuery(r)
	filter := repos.ProgressFilter{
		UserID:      httputil.QueryStringFilter(r, "user_id"),
		LessonID:    httputil.QueryInt64Filter(r, "lesson_id"),
		IsCompleted: httputil.QueryBoolFilter(r, "is_completed"),
	}

	progress, total, err := h.progressService.ListProgress(r.Context(), opts, filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if progress == nil {
		progress = []models.Progress{}
	}

	opts.ApplyDefaults()
	httputil.RespondList(w, progress, total, opts.Limit, opts.Offset)
}

// GetProgress retrieves a progress row by ID
// GET /api/user-progress/{id}
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	progress, err := h.progressService.GetProgress(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, progress)
}

// CreateProgress creates a new progress row. Omitting user_id records
// progress for the authenticated user.
// POST /api/user-progress
func (h *ProgressHandler) CreateProgress(w http.ResponseWriter, r *http.Request) {
	var req services.CreateProgressRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID == "" {
		req.UserID = httputil.GetUserID(r)
	}

	progress, err := h.progressService.CreateProgress(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, progress)
}

// UpdateProgress applies a partial update
// PUT /api/user-progress/{id}
func (h *ProgressHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req services.UpdateProgressRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	progress, err := h.progressService.UpdateProgress(r.Context(), id, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, progress)
}

// DeleteProgress deletes a progress row
// DELETE /api/user-progress/{id}
func (h *ProgressHandler) DeleteProgress(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.progressService.DeleteProgress(r.Context(), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type completeRequest struct {
	UserID   string `json:"user_id"`
	LessonID int64  `json:"lesson_id"`
}

// Complete idempotently marks a lesson complete for a user
// POST /api/user-progress/complete
func (h *ProgressHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID == "" {
		req.UserID = httputil.GetUserID(r)
	}
	if req.LessonID <= 0 {
		httputil.RespondError(w, http.StatusBadRequest, "lesson_id is required")
		return
	}

	progress, err := h.progressService.Complete(r.Context(), req.UserID, req.LessonID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, progress)
}

// Stats summarizes a user's completion across all lessons
// GET /api/user-progress/user/{user_id}/stats
func (h *ProgressHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")

	stats, err := h.progressService.Stats(r.Context(), userID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, stats)
}
