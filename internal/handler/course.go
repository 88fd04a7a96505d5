package handler

import (
	"log/slog"
	"net/http"

	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
	services "eduweb/internal/domain/services/catalog"
	"eduweb/internal/httputil"
)

// CourseHandler handles course HTTP requests
type CourseHandler struct {
	courseService services.CourseService
	logger        *slog.Logger
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService services.CourseService, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		logger:        logger,
	}
}

// ListCourses lists courses
// GET /api/courses
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	opts := httputil.ListOptionsFromQuery(r)
	filter := repos.CourseFilter{
		CategoryID: httputil.QueryInt64Filter(r, "category_id"),
		IsLocked:   httputil.QueryBoolFilter(r, "is_locked"),
		Language:   httputil.QueryStringFilter(r, "language"),
	}

	courses, total, err := h.courseService.ListCourses(r.Context(), opts, filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}

	opts.ApplyDefaults()
	httputil.RespondList(w, courses, total, opts.Limit, opts.Offset)
}

// GetCourse retrieves a course by ID
// GET /api/courses/{id}
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	course, err := h.courseService.GetCourse(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, course)
}

// CreateCourse creates a new course
// POST /api/courses
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req services.CreateCourseRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	course, err := h.courseService.CreateCourse(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, course)
}

// UpdateCourse applies a partial update
// PUT /api/courses/{id}
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req services.UpdateCourseRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	course, err := h.courseService.UpdateCourse(r.Context(), id, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, course)
}

// DeleteCourse deletes a course; ?cascade=true removes its whole subtree
// DELETE /api/courses/{id}
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	policy := services.PolicyFromFlag(httputil.QueryBool(r, "cascade"))
	if err := h.courseService.DeleteCourse(r.Context(), id, policy); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetDependents reports the course's direct dependents
// GET /api/courses/{id}/dependents
func (h *CourseHandler) GetDependents(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	counts, err := h.courseService.CountDependents(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, counts)
}

// ListModules lists the course's modules
// GET /api/courses/{id}/modules
func (h *CourseHandler) ListModules(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := httputil.ListOptionsFromQuery(r)
	filter := repos.ModuleFilter{IsLocked: httputil.QueryBoolFilter(r, "is_locked")}

	modules, total, err := h.courseService.ListModules(r.Context(), id, opts, filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if modules == nil {
		modules = []models.Module{}
	}

	opts.ApplyDefaults()
	httputil.RespondList(w, modules, total, opts.Limit, opts.Offset)
}
