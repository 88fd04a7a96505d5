package handler

import (
	"log/slog"
	"net/http"

	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
	services "eduweb/internal/domain/services/catalog"
	"eduweb/internal/httputil"
)

// ModuleHandler handles module HTTP requests
type ModuleHandler struct {
	moduleService services.ModuleService
	logger        *slog.Logger
}

// NewModuleHandler creates a new module handler
func NewModuleHandler(moduleService services.ModuleService, logger *slog.Logger) *ModuleHandler {
	return &ModuleHandler{
		moduleService: moduleService,
		logger:        logger,
	}
}

// ListModules lists modules
// GET /api/modules
func (h *ModuleHandler) ListModules(w http.ResponseWriter, r *http.Request) {
	opts := httputil.ListOptionsFromQuery(r)
	filter := repos.ModuleFilter{
		CourseID: httputil.QueryInt64Filter(r, "course_id"),
		IsLocked: httputil.QueryBoolFilter(r, "is_locked"),
	}

	modules, total, err := h.moduleService.ListModules(r.Context(), opts, filter)
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

// GetModule retrieves a module by ID
// GET /api/modules/{id}
func (h *ModuleHandler) GetModule(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	module, err := h.moduleService.GetModule(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, module)
}

// CreateModule creates a new module
// POST /api/modules
func (h *ModuleHandler) CreateModule(w http.ResponseWriter, r *http.Request) {
	var req services.CreateModuleRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	module, err := h.moduleService.CreateModule(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, module)
}

// UpdateModule applies a partial update
// PUT /api/modules/{id}
func (h *ModuleHandler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req services.UpdateModuleRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	module, err := h.moduleService.UpdateModule(r.Context(), id, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, module)
}

// DeleteModule deletes a module; ?cascade=true removes its lessons and their
// user data
// DELETE /api/modules/{id}
func (h *ModuleHandler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	policy := services.PolicyFromFlag(httputil.QueryBool(r, "cascade"))
	if err := h.moduleService.DeleteModule(r.Context(), id, policy); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetDependents reports the module's direct dependents
// GET /api/modules/{id}/dependents
func (h *ModuleHandler) GetDependents(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	counts, err := h.moduleService.CountDependents(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, counts)
}

// ListLessons lists the module's lessons
// GET /api/modules/{id}/lessons
func (h *ModuleHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := httputil.ListOptionsFromQuery(r)
	lessons, total, err := h.moduleService.ListLessons(r.Context(), id, opts)
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
