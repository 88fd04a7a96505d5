package catalog

import (
	"context"

	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
)

// RegionService handles region business logic. Writes are scope-validated:
// every referenced category and course must exist, and the language set must
// stay coherent, before anything is persisted.
type RegionService interface {
	ListRegions(ctx context.Context, opts repos.ListOptions, filter repos.RegionFilter) ([]models.Region, int, error)

	GetRegion(ctx context.Context, id int64) (*models.Region, error)

	CreateRegion(ctx context.Context, req *CreateRegionRequest) (*models.Region, error)

	UpdateRegion(ctx context.Context, id int64, req *UpdateRegionRequest) (*models.Region, error)

	DeleteRegion(ctx context.Context, id int64) error
}

// CreateRegionRequest represents a region creation request.
type CreateRegionRequest struct {
	Name                string   `json:"name"`
	Slug                string   `json:"slug"`
	Description         string   `json:"description"`
	IncludedCategoryIDs []int64  `json:"included_category_ids"`
	ExcludedCourseIDs   []int64  `json:"excluded_course_ids"`
	AvailableLanguages  []string `json:"available_languages"`
	PreferredUILanguage string   `json:"preferred_ui_language"`
	IsActive            *bool    `json:"is_active"`
}

// UpdateRegionRequest represents a partial region update. Nil fields are left
// untouched; validation runs against the merged view of stored and patched
// fields so a patch cannot leave the region incoherent.
type UpdateRegionRequest struct {
	Name                *string   `json:"name"`
	Slug                *string   `json:"slug"`
	Description         *string   `json:"description"`
	IncludedCategoryIDs *[]int64  `json:"included_category_ids"`
	ExcludedCourseIDs   *[]int64  `json:"excluded_course_ids"`
	AvailableLanguages  *[]string `json:"available_languages"`
	PreferredUILanguage *string   `json:"preferred_ui_language"`
	IsActive            *bool     `json:"is_active"`
}
