package catalog

import (
	"context"

	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
)

// LessonService handles lesson business logic.
type LessonService interface {
	ListLessons(ctx context.Context, opts repos.ListOptions, filter repos.LessonFilter) ([]models.Lesson, int, error)

	GetLesson(ctx context.Context, id int64) (*models.Lesson, error)

	CreateLesson(ctx context.Context, req *CreateLessonRequest) (*models.Lesson, error)

	UpdateLesson(ctx context.Context, id int64, req *UpdateLessonRequest) (*models.Lesson, error)

	// DeleteLesson deletes a lesson. There is no force override: any
	// progress or favorite rows block the delete unconditionally.
	DeleteLesson(ctx context.Context, id int64) error

	CountDependents(ctx context.Context, id int64) (DependentCounts, error)

	// ListProgress lists progress rows recorded against the lesson
	ListProgress(ctx context.Context, id int64, opts repos.ListOptions) ([]models.Progress, int, error)
}

// CreateLessonRequest represents a lesson creation request.
type CreateLessonRequest struct {
	ModuleID         int64  `json:"module_id"`
	Title            string `json:"title"`
	VideoURL         string `json:"video_url"`
	SupportContent   string `json:"support_content"`
	Order            int    `json:"order"`
	DripDelayMinutes int    `json:"drip_delay_minutes"`
}

// UpdateLessonRequest represents a partial lesson update. Nil fields are left
// untouched. A new module_id is validated before the write.
type UpdateLessonRequest struct {
	ModuleID         *int64  `json:"module_id"`
	Title            *string `json:"title"`
	VideoURL         *string `json:"video_url"`
	SupportContent   *string `json:"support_content"`
	Order            *int    `json:"order"`
	DripDelayMinutes *int    `json:"drip_delay_minutes"`
}
