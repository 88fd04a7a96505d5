package catalog

import (
	"context"

	models "eduweb/internal/domain/models/catalog"
)

// CourseRepository defines data access operations for courses.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error

	GetByID(ctx context.Context, id int64) (*models.Course, error)

	List(ctx context.Context, opts ListOptions, filter CourseFilter) ([]models.Course, int, error)

	Update(ctx context.Context, course *models.Course) error

	Delete(ctx context.Context, id int64) error

	SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error)

	// Exists reports whether a course row with the given id exists
	Exists(ctx context.Context, id int64) (bool, error)

	// CountExisting returns how many of the given ids exist
	CountExisting(ctx context.Context, ids []int64) (int, error)

	// CountByCategory counts courses pointing at the category
	CountByCategory(ctx context.Context, categoryID int64) (int, error)

	// ClearCategory orphans every course of the category (category_id = NULL).
	// Idempotent: clearing an already-null column is a no-op.
	ClearCategory(ctx context.Context, categoryID int64) error
}
