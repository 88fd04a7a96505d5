package catalog

import (
	"context"

	models "eduweb/internal/domain/models/catalog"
)

// FavoriteRepository defines data access operations for favorites.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *models.Favorite) error

	GetByID(ctx context.Context, id int64) (*models.Favorite, error)

	List(ctx context.Context, opts ListOptions, filter FavoriteFilter) ([]models.Favorite, int, error)

	Update(ctx context.Context, favorite *models.Favorite) error

	Delete(ctx context.Context, id int64) error

	// FindByUserItem returns the favorite for (user, item), or ErrNotFound
	// when none exists
	FindByUserItem(ctx context.Context, userID string, item models.FavoriteItem) (*models.Favorite, error)

	// DeleteByUserItem removes the favorite for (user, item) and reports
	// whether a row was actually deleted
	DeleteByUserItem(ctx context.Context, userID string, item models.FavoriteItem) (bool, error)

	// CountByItem counts favorites pointing at the item
	CountByItem(ctx context.Context, item models.FavoriteItem) (int, error)

	// DeleteByItem removes every favorite of the given type pointing at any
	// of the ids. Idempotent.
	DeleteByItem(ctx context.Context, itemType models.ItemType, itemIDs []int64) error
}
