package catalog

import (
	"context"

	models "eduweb/internal/domain/models/catalog"
)

// LessonRepository defines data access operations for lessons.
type LessonRepository interface {
	Create(ctx context.Context, lesson *models.Lesson) error

	GetByID(ctx context.Context, id int64) (*models.Lesson, error)

	List(ctx context.Context, opts ListOptions, filter LessonFilter) ([]models.Lesson, int, error)

	Update(ctx context.Context, lesson *models.Lesson) error

	Delete(ctx context.Context, id int64) error

	// Exists reports whether a lesson row with the given id exists
	Exists(ctx context.Context, id int64) (bool, error)

	// CountByModule counts lessons belonging to the module
	CountByModule(ctx context.Context, moduleID int64) (int, error)

	// IDsByModule returns the ids of the module's lessons
	IDsByModule(ctx context.Context, moduleID int64) ([]int64, error)

	// DeleteByModule removes every lesson of the module. Idempotent.
	DeleteByModule(ctx context.Context, moduleID int64) error

	// CountAll counts every lesson in the catalog
	CountAll(ctx context.Context) (int, error)
}
