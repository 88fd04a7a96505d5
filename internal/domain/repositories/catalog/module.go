package catalog

import (
	"context"

	models "eduweb/internal/domain/models/catalog"
)

// ModuleRepository defines data access operations for modules.
type ModuleRepository interface {
	Create(ctx context.Context, module *models.Module) error

	GetByID(ctx context.Context, id int64) (*models.Module, error)

	List(ctx context.Context, opts ListOptions, filter ModuleFilter) ([]models.Module, int, error)

	Update(ctx context.Context, module *models.Module) error

	Delete(ctx context.Context, id int64) error

	// Exists reports whether a module row with the given id exists
	Exists(ctx context.Context, id int64) (bool, error)

	// CountByCourse counts modules belonging to the course
	CountByCourse(ctx context.Context, courseID int64) (int, error)

	// IDsByCourse returns the ids of the course's modules
	IDsByCourse(ctx context.Context, courseID int64) ([]int64, error)
}
