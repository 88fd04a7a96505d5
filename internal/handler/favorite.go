package handler

import (
	"log/slog"
	"net/http"

	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
	services "eduweb/internal/domain/services/catalog"
	"eduweb/internal/httputil"
)

// FavoriteHandler handles favorite HTTP requests
type FavoriteHandler struct {
	favoriteService services.FavoriteService
	logger          *slog.Logger
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(favoriteService services.FavoriteService, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
		logger:          logger,
	}
}

// ListFavorites lists favorites
// GET /api/favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	opts := httputil.ListOptionsFromQuery(r)

	filter := repos.FavoriteFilter{
		UserID: httputil.QueryStringFilter(r, "user_id"),
		ItemID: httputil.QueryInt64Filter(r, "item_id"),
	}
	if raw := r.URL.Query().Get("item_type"); raw != "" {
		itemType, err := models.ParseItemType(raw)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.ItemType = &itemType
	}

	favorites, total, err := h.favoriteService.ListFavorites(r.Context(), opts, filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}

	opts.ApplyDefaults()
	httputil.RespondList(w, favorites, total, opts.Limit, opts.Offset)
}

// GetFavorite retrieves a favorite by ID
// GET /api/favorites/{id}
func (h *FavoriteHandler) GetFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	favorite, err := h.favoriteService.GetFavorite(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, favorite)
}

// CreateFavorite creates a new favorite. Duplicates answer 409 with the
// existing row's id.
// POST /api/favorites
func (h *FavoriteHandler) CreateFavorite(w http.ResponseWriter, r *http.Request) {
	var req services.CreateFavoriteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID == "" {
		req.UserID = httputil.GetUserID(r)
	}

	favorite, err := h.favoriteService.CreateFavorite(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, favorite)
}

// DeleteFavorite deletes a favorite by row id
// DELETE /api/favorites/{id}
func (h *FavoriteHandler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.favoriteService.DeleteFavorite(r.Context(), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteByUserItem deletes a favorite by its natural key
// DELETE /api/favorites/user/{user_id}/item/{item_type}/{item_id}
func (h *FavoriteHandler) DeleteByUserItem(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")

	itemType, err := models.ParseItemType(r.PathValue("item_type"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	itemID, err := httputil.PathID(r, "item_id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item := models.FavoriteItem{Type: itemType, ID: itemID}
	if err := h.favoriteService.DeleteByUserItem(r.Context(), userID, item); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListForUser lists a user's favorites, newest first
// GET /api/favorites/user/{user_id}
func (h *FavoriteHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")

	opts := httputil.ListOptionsFromQuery(r)
	favorites, total, err := h.favoriteService.ListForUser(r.Context(), userID, opts)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}

	opts.ApplyDefaults()
	httputil.RespondList(w, favorites, total, opts.Limit, opts.Offset)
}
