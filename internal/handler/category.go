package handler

import (
	"log/slog"
	"net/http"

	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
	services "eduweb/internal/domain/services/catalog"
	"eduweb/internal/httputil"
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	categoryService services.CategoryService
	logger          *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService services.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// ListCategories lists categories
// GET /api/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	opts := httputil.ListOptionsFromQuery(r)
	filter := repos.CategoryFilter{IsActive: httputil.QueryBoolFilter(r, "is_active")}

	categories, total, err := h.categoryService.ListCategories(r.Context(), opts, filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	opts.ApplyDefaults()
	httputil.RespondList(w, categories, total, opts.Limit, opts.Offset)
}

// GetCategory retrieves a category by ID
// GET /api/categories/{id}
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.categoryService.GetCategory(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, category)
}

// CreateCategory creates a new category
// POST /api/categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req services.CreateCategoryRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, category)
}

// UpdateCategory applies a partial update
// PUT /api/categories/{id}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req services.UpdateCategoryRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.categoryService.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, category)
}

// DeleteCategory deletes a category; ?force=true orphans its courses
// DELETE /api/categories/{id}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	policy := services.PolicyFromFlag(httputil.QueryBool(r, "force"))
	if err := h.categoryService.DeleteCategory(r.Context(), id, policy); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetDependents reports the category's direct dependents
// GET /api/categories/{id}/dependents
func (h *CategoryHandler) GetDependents(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	counts, err := h.categoryService.CountDependents(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, counts)
}

// ListCourses lists the category's courses
// GET /api/categories/{id}/courses
func (h *CategoryHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := httputil.ListOptionsFromQuery(r)
	filter := repos.CourseFilter{
		IsLocked: httputil.QueryBoolFilter(r, "is_locked"),
		Language: httputil.QueryStringFilter(r, "language"),
	}

	courses, total, err := h.categoryService.ListCourses(r.Context(), id, opts, filter)
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
