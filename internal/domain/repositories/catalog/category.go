package catalog

import (
	"context"

	models "eduweb/internal/domain/models/catalog"
)

// CategoryRepository defines data access operations for categories.
type CategoryRepository interface {
	// Create creates a new category
	Create(ctx context.Context, category *models.Category) error

	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id int64) (*models.Category, error)

	// List returns a page of categories plus the unpaginated total
	List(ctx context.Context, opts ListOptions, filter CategoryFilter) ([]models.Category, int, error)

	// Update persists all mutable fields of the category
	Update(ctx context.Context, category *models.Category) error

	// Delete removes the category row only; dependents are the caller's problem
	Delete(ctx context.Context, id int64) error

	// SlugTaken reports whether another category (id != excludeID) owns slug
	SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error)

	// NameTaken reports whether another category (id != excludeID) owns name
	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)

	// CountExisting returns how many of the given ids exist
	CountExisting(ctx context.Context, ids []int64) (int, error)
}
