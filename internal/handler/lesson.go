package handler

import (
	"log/slog"
	"net/http"

	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
	services "eduweb/internal/domain/services/catalog"
	"eduweb/internal/httputil"
)

// LessonHandler handles lesson HTTP requests
type LessonHandler struct {
	lessonService services.LessonService
	logger        *slog.Logger
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(lessonService services.LessonService, logger *slog.Logger) *LessonHandler {
	return &LessonHandler{
		lessonService: lessonService,
		logger:        logger,
	}
}

// ListLessons lists lessons
// GET /api/lessons
func (h *LessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	opts := httputil.ListOptionsFromQuery(r)
	filter := repos.LessonFilter{ModuleID: httputil.QueryInt64Filter(r, "module_id")}

	lessons, total, err := h.lessonService.ListLessons(r.Context(), opts, filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if lessons == nil {
		lessons = []models.Lesson{}
	}

	opts.ApplyDefaults()
	httputil.RespondList(w, lessons, total, opts.Limit, opts.Offset)
}

// GetLesson retrieves a lesson by ID
// GET /api/lessons/{id}
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	lesson, err := h.lessonService.GetLesson(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, lesson)
}

// CreateLesson creates a new lesson
// POST /api/lessons
func (h *LessonHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var req services.CreateLessonRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	lesson, err := h.lessonService.CreateLesson(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, lesson)
}

// UpdateLesson applies a partial update
// PUT /api/lessons/{id}
func (h *LessonHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req services.UpdateLessonRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	lesson, err := h.lessonService.UpdateLesson(r.Context(), id, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, lesson)
}

// DeleteLesson deletes a lesson. There is no cascade flag here: progress or
// favorite rows always block.
// DELETE /api/lessons/{id}
func (h *LessonHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.lessonService.DeleteLesson(r.Context(), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetDependents reports the lesson's direct dependents
// GET /api/lessons/{id}/dependents
func (h *LessonHandler) GetDependents(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	counts, err := h.lessonService.CountDependents(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, counts)
}

// ListProgress lists progress rows recorded against the lesson
// GET /api/lessons/{id}/progress
func (h *LessonHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := httputil.ListOptionsFromQuery(r)
	progress, total, err := h.lessonService.ListProgress(r.Context(), id, opts)
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
