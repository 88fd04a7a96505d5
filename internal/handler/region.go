package handler

import (
	"log/slog"
	"net/http"

	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
	services "eduweb/internal/domain/services/catalog"
	"eduweb/internal/httputil"
)

// RegionHandler handles region HTTP requests
type RegionHandler struct {
	regionService services.RegionService
	logger        *slog.Logger
}

// NewRegionHandler creates a new region handler
func NewRegionHandler(regionService services.RegionService, logger *slog.Logger) *RegionHandler {
	return &RegionHandler{
		regionService: regionService,
		logger:        logger,
	}
}

// ListRegions lists regions
// GET /api/regions
func (h *RegionHandler) ListRegions(w http.ResponseWriter, r *http.Request) {
	opts := httputil.ListOptionsFromQuery(r)
	filter := repos.RegionFilter{IsActive: httputil.QueryBoolFilter(r, "is_active")}

	regions, total, err := h.regionService.ListRegions(r.Context(), opts, filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if regions == nil {
		regions = []models.Region{}
	}

	opts.ApplyDefaults()
	httputil.RespondList(w, regions, total, opts.Limit, opts.Offset)
}

// GetRegion retrieves a region by ID
// GET /api/regions/{id}
func (h *RegionHandler) GetRegion(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	region, err := h.regionService.GetRegion(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, region)
}

// CreateRegion creates a new region after scope validation
// POST /api/regions
func (h *RegionHandler) CreateRegion(w http.ResponseWriter, r *http.Request) {
	var req services.CreateRegionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	region, err := h.regionService.CreateRegion(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, region)
}

// UpdateRegion applies a partial update, revalidating the merged scope
// PUT /api/regions/{id}
func (h *RegionHandler) UpdateRegion(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req services.UpdateRegionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	region, err := h.regionService.UpdateRegion(r.Context(), id, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, region)
}

// DeleteRegion deletes a region
// DELETE /api/regions/{id}
func (h *RegionHandler) DeleteRegion(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.regionService.DeleteRegion(r.Context(), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
