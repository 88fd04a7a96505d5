package catalog

import (
	"context"

	models "eduweb/internal/domain/models/catalog"
)

// RegionRepository defines data access operations for regions.
type RegionRepository interface {
	Create(ctx context.Context, region *models.Region) error

	GetByID(ctx context.Context, id int64) (*models.Region, error)

	List(ctx context.Context, opts ListOptions, filter RegionFilter) ([]models.Region, int, error)

	Update(ctx context.Context, region *models.Region) error

	Delete(ctx context.Context, id int64) error

	// SlugTaken reports whether another region (id != excludeID) owns slug
	SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error)

	// NameTaken reports whether another region (id != excludeID) owns name
	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
}
