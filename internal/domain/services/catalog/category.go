package catalog

import (
	"context"

	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
)

// CategoryService handles category business logic.
type CategoryService interface {
	// ListCategories returns a page of categories plus the total count
	ListCategories(ctx context.Context, opts repos.ListOptions, filter repos.CategoryFilter) ([]models.Category, int, error)

	// GetCategory retrieves a single category
	GetCategory(ctx context.Context, id int64) (*models.Category, error)

	// CreateCategory validates and persists a new category
	CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*models.Category, error)

	// UpdateCategory applies a partial update
	UpdateCategory(ctx context.Context, id int64, req *UpdateCategoryRequest) (*models.Category, error)

	// DeleteCategory deletes a category. With PolicyForce, dependent courses
	// are orphaned (category_id nulled), never deleted.
	DeleteCategory(ctx context.Context, id int64, policy DeletePolicy) error

	// CountDependents reports the category's direct dependents
	CountDependents(ctx context.Context, id int64) (DependentCounts, error)

	// ListCourses lists the category's courses
	ListCourses(ctx context.Context, id int64, opts repos.ListOptions, filter repos.CourseFilter) ([]models.Course, int, error)
}

// CreateCategoryRequest represents a category creation request.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Order       int    `json:"order"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateCategoryRequest represents a partial category update. Nil fields are
// left untouched.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"is_active"`
}
