package catalog

import (
	"context"
	"time"

	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
)

// ProgressService handles user progress business logic.
type ProgressService interface {
	ListProgress(ctx context.Context, opts repos.ListOptions, filter repos.ProgressFilter) ([]models.Progress, int, error)

	GetProgress(ctx context.Context, id int64) (*models.Progress, error)

	CreateProgress(ctx context.Context, req *CreateProgressRequest) (*models.Progress, error)

	UpdateProgress(ctx context.Context, id int64, req *UpdateProgressRequest) (*models.Progress, error)

	DeleteProgress(ctx context.Context, id int64) error

	// Complete marks a lesson complete for a user, creating the progress
	// row if none exists. Calling it again is a no-op that returns the
	// existing row.
	Complete(ctx context.Context, userID string, lessonID int64) (*models.Progress, error)

	// Stats summarizes a user's completion across all lessons.
	Stats(ctx context.Context, userID string) (*models.ProgressStats, error)
}

// CreateProgressRequest represents a progress creation request.
type CreateProgressRequest struct {
	UserID      string     `json:"user_id"`
	LessonID    int64      `json:"lesson_id"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at"`
}

// UpdateProgressRequest represents a partial progress update.
// Setting is_completed=true without completed_at stamps now; setting
// is_completed=false clears completed_at.
type UpdateProgressRequest struct {
	IsCompleted *bool      `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at"`
}
