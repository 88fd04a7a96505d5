package handler

import (
	"log/slog"
	"net/http"

	models "eduweb/internal/domain/models/reporting"
	repos "eduweb/internal/domain/repositories/reporting"
	services "eduweb/internal/domain/services/reporting"
	"eduweb/internal/config"
	"eduweb/internal/httputil"
)

// RecordedCourseHandler exposes the reporting database's recorded classroom
// sessions under /api/recorded-courses.
type RecordedCourseHandler struct {
	sessionService services.RecordedSessionService
	logger         *slog.Logger
}

// NewRecordedCourseHandler creates a new recorded course handler
func NewRecordedCourseHandler(sessionService services.RecordedSessionService, logger *slog.Logger) *RecordedCourseHandler {
	return &RecordedCourseHandler{
		sessionService: sessionService,
		logger:         logger,
	}
}

// ListSessions lists recorded sessions
// GET /api/recorded-courses
func (h *RecordedCourseHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	limit := httputil.QueryInt(r, "limit", config.DefaultPageSize)
	if limit <= 0 {
		limit = config.DefaultPageSize
	}
	if limit > config.MaxPageSize {
		limit = config.MaxPageSize
	}
	offset := httputil.QueryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	filter := repos.SessionFilter{
		Search:     r.URL.Query().Get("search"),
		EducatorID: httputil.QueryInt64Filter(r, "educator_id"),
	}

	sessions, total, err := h.sessionService.ListSessions(r.Context(), limit, offset, filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if sessions == nil {
		sessions = []models.RecordedSession{}
	}

	httputil.RespondList(w, sessions, total, limit, offset)
}

// GetSession retrieves a recorded session by ID
// GET /api/recorded-courses/{id}
func (h *RecordedCourseHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.sessionService.GetSession(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, session)
}

// UpdateSession patches the editorial fields of a recorded session
// PUT /api/recorded-courses/{id}
func (h *RecordedCourseHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req services.UpdateSessionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.sessionService.UpdateSession(r.Context(), id, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, session)
}

// DeleteSession removes a recorded session
// DELETE /api/recorded-courses/{id}
func (h *RecordedCourseHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.sessionService.DeleteSession(r.Context(), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
