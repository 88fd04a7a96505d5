package catalog

import (
	"context"
	"time"

	models "eduweb/internal/domain/models/catalog"
)

// ProgressRepository defines data access operations for user progress rows.
type ProgressRepository interface {
	Create(ctx context.Context, progress *models.Progress) error

	GetByID(ctx context.Context, id int64) (*models.Progress, error)

	List(ctx context.Context, opts ListOptions, filter ProgressFilter) ([]models.Progress, int, error)

	Update(ctx context.Context, progress *models.Progress) error

	Delete(ctx context.Context, id int64) error

	// FindByUserLesson returns the progress row for (user, lesson), or
	// ErrNotFound when none exists
	FindByUserLesson(ctx context.Context, userID string, lessonID int64) (*models.Progress, error)

	// CountByLesson counts progress rows pointing at the lesson
	CountByLesson(ctx context.Context, lessonID int64) (int, error)

	// DeleteByLessonIDs removes progress for the given lessons. Idempotent.
	DeleteByLessonIDs(ctx context.Context, lessonIDs []int64) error

	// CountCompletedByUser counts the user's completed rows
	CountCompletedByUser(ctx context.Context, userID string) (int, error)

	// LastCompletionByUser returns the user's most recent completed_at,
	// or nil when the user has never completed a lesson
	LastCompletionByUser(ctx context.Context, userID string) (*time.Time, error)
}
