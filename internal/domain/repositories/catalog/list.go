package catalog

import (
	"eduweb/internal/config"

	models "eduweb/internal/domain/models/catalog"
)

// ListOptions carries the pagination and ordering contract shared by every
// list operation. OrderBy is a caller-supplied column hint; repositories map
// it onto a whitelisted column and fall back to their default ordering.
type ListOptions struct {
	Limit     int
	Offset    int
	OrderBy   string
	Ascending bool
}

// ApplyDefaults normalizes out-of-range pagination values in place.
func (o *ListOptions) ApplyDefaults() {
	if o.Limit <= 0 {
		o.Limit = config.DefaultPageSize
	}
	if o.Limit > config.MaxPageSize {
		o.Limit = config.MaxPageSize
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
}

// Per-resource list filters. Nil fields mean "no filter".

type CategoryFilter struct {
	IsActive *bool
}

type CourseFilter struct {
	CategoryID *int64
	IsLocked   *bool
	Language   *string
}

type ModuleFilter struct {
	CourseID *int64
	IsLocked *bool
}

type LessonFilter struct {
	ModuleID *int64
}

type ProgressFilter struct {
	UserID      *string
	LessonID    *int64
	IsCompleted *bool
}

type FavoriteFilter struct {
	UserID   *string
	ItemType *models.ItemType
	ItemID   *int64
}

type RegionFilter struct {
	IsActive *bool
}
