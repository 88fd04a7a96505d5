package catalog

import (
	"context"

	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
)

// ModuleService handles module business logic.
type ModuleService interface {
	ListModules(ctx context.Context, opts repos.ListOptions, filter repos.ModuleFilter) ([]models.Module, int, error)

	GetModule(ctx context.Context, id int64) (*models.Module, error)

	CreateModule(ctx context.Context, req *CreateModuleRequest) (*models.Module, error)

	UpdateModule(ctx context.Context, id int64, req *UpdateModuleRequest) (*models.Module, error)

	// DeleteModule deletes a module. With PolicyForce its lessons, their
	// progress rows and all related favorites go with it, bottom-up.
	DeleteModule(ctx context.Context, id int64, policy DeletePolicy) error

	CountDependents(ctx context.Context, id int64) (DependentCounts, error)

	// ListLessons lists the module's lessons
	ListLessons(ctx context.Context, id int64, opts repos.ListOptions) ([]models.Lesson, int, error)
}

// CreateModuleRequest represents a module creation request.
type CreateModuleRequest struct {
	CourseID     int64    `json:"course_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ModuleImages []string `json:"module_images"`
	Order        int      `json:"order"`
	IsLocked     *bool    `json:"is_locked"`
}

// UpdateModuleRequest represents a partial module update. Nil fields are left
// untouched. A new course_id is validated before the write.
type UpdateModuleRequest struct {
	CourseID     *int64    `json:"course_id"`
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	ModuleImages *[]string `json:"module_images"`
	Order        *int      `json:"order"`
	IsLocked     *bool     `json:"is_locked"`
}
