package catalog

import (
	"context"
	"encoding/json"

	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
)

// CourseService handles course business logic.
type CourseService interface {
	ListCourses(ctx context.Context, opts repos.ListOptions, filter repos.CourseFilter) ([]models.Course, int, error)

	GetCourse(ctx context.Context, id int64) (*models.Course, error)

	CreateCourse(ctx context.Context, req *CreateCourseRequest) (*models.Course, error)

	UpdateCourse(ctx context.Context, id int64, req *UpdateCourseRequest) (*models.Course, error)

	// DeleteCourse deletes a course. With PolicyForce the whole subtree
	// (modules, lessons, progress, favorites) goes with it, bottom-up.
	DeleteCourse(ctx context.Context, id int64, policy DeletePolicy) error

	CountDependents(ctx context.Context, id int64) (DependentCounts, error)

	// ListModules lists the course's modules
	ListModules(ctx context.Context, id int64, opts repos.ListOptions, filter repos.ModuleFilter) ([]models.Module, int, error)
}

// CreateCourseRequest represents a course creation request.
type CreateCourseRequest struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Author      string   `json:"author"`
	Language    string   `json:"language"`
	CategoryID  *int64   `json:"category_id"`
	Order       int      `json:"order"`
	CoverImages []string `json:"cover_images"`
	IsLocked    *bool    `json:"is_locked"`
}

// UpdateCourseRequest represents a partial course update. Nil fields are left
// untouched. CategorySet distinguishes "leave category_id alone" from
// "explicitly null it out": JSON null for category_id arrives as a present
// key with a nil value.
type UpdateCourseRequest struct {
	Title       *string   `json:"title"`
	Slug        *string   `json:"slug"`
	Description *string   `json:"description"`
	Author      *string   `json:"author"`
	Language    *string   `json:"language"`
	CategoryID  *int64    `json:"category_id"`
	CategorySet bool      `json:"-"`
	Order       *int      `json:"order"`
	CoverImages *[]string `json:"cover_images"`
	IsLocked    *bool     `json:"is_locked"`
}

// UnmarshalJSON records whether the category_id key was present so that an
// explicit null can clear the category.
func (r *UpdateCourseRequest) UnmarshalJSON(data []byte) error {
	type alias UpdateCourseRequest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*r = UpdateCourseRequest(a)
	_, r.CategorySet = keys["category_id"]
	return nil
}
