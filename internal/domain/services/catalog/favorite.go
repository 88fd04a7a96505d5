package catalog

import (
	"context"

	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
)

// FavoriteService handles favorite business logic.
type FavoriteService interface {
	ListFavorites(ctx context.Context, opts repos.ListOptions, filter repos.FavoriteFilter) ([]models.Favorite, int, error)

	GetFavorite(ctx context.Context, id int64) (*models.Favorite, error)

	// CreateFavorite resolves the polymorphic target through its type tag
	// and rejects duplicates with the existing row's id.
	CreateFavorite(ctx context.Context, req *CreateFavoriteRequest) (*models.Favorite, error)

	DeleteFavorite(ctx context.Context, id int64) error

	// DeleteByUserItem removes the favorite identified by its natural key.
	DeleteByUserItem(ctx context.Context, userID string, item models.FavoriteItem) error

	// ListForUser lists a user's favorites, newest first, enriched with
	// item details.
	ListForUser(ctx context.Context, userID string, opts repos.ListOptions) ([]models.Favorite, int, error)
}

// CreateFavoriteRequest represents a favorite creation request.
type CreateFavoriteRequest struct {
	UserID   string `json:"user_id"`
	ItemType string `json:"item_type"`
	ItemID   int64  `json:"item_id"`
}
