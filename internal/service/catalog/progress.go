package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"eduweb/internal/domain"
	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
	services "eduweb/internal/domain/services/catalog"
)

type progressService struct {
	progressRepo repos.ProgressRepository
	lessonRepo   repos.LessonRepository
	validator    *ReferenceValidator
	logger       *slog.Logger
}

// NewProgressService creates a new progress service
func NewProgressService(
	progressRepo repos.ProgressRepository,
	lessonRepo repos.LessonRepository,
	validator *ReferenceValidator,
	logger *slog.Logger,
) services.ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		lessonRepo:   lessonRepo,
		validator:    validator,
		logger:       logger,
	}
}

// validateUserID checks the Supabase user id shape. User ids come from the
// auth provider and are always UUIDs.
func validateUserID(userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return &domain.ValidationError{Message: "user_id must be a UUID", Field: "user_id"}
	}
	return nil
}

func (s *progressService) ListProgress(ctx context.Context, opts repos.ListOptions, filter repos.ProgressFilter) ([]models.Progress, int, error) {
	return s.progressRepo.List(ctx, opts, filter)
}

func (s *progressService) GetProgress(ctx context.Context, id int64) (*models.Progress, error) {
	return s.progressRepo.GetByID(ctx, id)
}

// CreateProgress validates the lesson reference and the (user, lesson)
// uniqueness rule, then persists the row
func (s *progressService) CreateProgress(ctx context.Context, req *services.CreateProgressRequest) (*models.Progress, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := validateUserID(req.UserID); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateProgressLesson(ctx, req.LessonID); err != nil {
		return nil, err
	}
	if err := s.validator.CheckDuplicateProgress(ctx, req.UserID, req.LessonID); err != nil {
		return nil, err
	}

	progress := &models.Progress{
		UserID:      req.UserID,
		LessonID:    req.LessonID,
		IsCompleted: req.IsCompleted,
		CompletedAt: req.CompletedAt,
	}
	if progress.IsCompleted && progress.CompletedAt == nil {
		now := time.Now()
		progress.CompletedAt = &now
	}

	if err := s.progressRepo.Create(ctx, progress); err != nil {
		return nil, err
	}

	s.logger.Info("progress created", "id", progress.ID, "user_id", progress.UserID, "lesson_id", progress.LessonID)
	return s.progressRepo.GetByID(ctx, progress.ID)
}

// UpdateProgress applies a partial update. Marking complete without an
// explicit timestamp stamps now; marking incomplete clears the timestamp.
func (s *progressService) UpdateProgress(ctx context.Context, id int64, req *services.UpdateProgressRequest) (*models.Progress, error) {
	if req.IsCompleted == nil && req.CompletedAt == nil {
		return nil, fmt.Errorf("%w: at least one field must be provided", domain.ErrValidation)
	}

	progress, err := s.progressRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CompletedAt != nil {
		progress.CompletedAt = req.CompletedAt
	}
	if req.IsCompleted != nil {
		progress.IsCompleted = *req.IsCompleted
		if progress.IsCompleted && progress.CompletedAt == nil {
			now := time.Now()
			progress.CompletedAt = &now
		}
		if !progress.IsCompleted {
			progress.CompletedAt = nil
		}
	}

	if err := s.progressRepo.Update(ctx, progress); err != nil {
		return nil, err
	}

	s.logger.Info("progress updated", "id", id, "is_completed", progress.IsCompleted)
	return s.progressRepo.GetByID(ctx, id)
}

func (s *progressService) DeleteProgress(ctx context.Context, id int64) error {
	if err := s.progressRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("progress deleted", "id", id)
	return nil
}

// Complete marks a lesson complete for a user, creating the row if missing.
// Repeating the call returns the existing completed row unchanged.
func (s *progressService) Complete(ctx context.Context, userID string, lessonID int64) (*models.Progress, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateProgressLesson(ctx, lessonID); err != nil {
		return nil, err
	}

	existing, err := s.progressRepo.FindByUserLesson(ctx, userID, lessonID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		if existing.IsCompleted {
			return existing, nil
		}
		now := time.Now()
		existing.IsCompleted = true
		existing.CompletedAt = &now
		if err := s.progressRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.logger.Info("lesson marked complete", "user_id", userID, "lesson_id", lessonID)
		return s.progressRepo.GetByID(ctx, existing.ID)
	}

	now := time.Now()
	progress := &models.Progress{
		UserID:      userID,
		LessonID:    lessonID,
		IsCompleted: true,
		CompletedAt: &now,
	}
	if err := s.progressRepo.Create(ctx, progress); err != nil {
		return nil, err
	}

	s.logger.Info("lesson marked complete", "user_id", userID, "lesson_id", lessonID)
	return s.progressRepo.GetByID(ctx, progress.ID)
}

// Stats summarizes a user's completion across all lessons
func (s *progressService) Stats(ctx context.Context, userID string) (*models.ProgressStats, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	total, err := s.lessonRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.progressRepo.CountCompletedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	last, err := s.progressRepo.LastCompletionByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &models.ProgressStats{
		UserID:           userID,
		TotalLessons:     total,
		CompletedLessons: completed,
		LastActivity:     last,
	}
	if total > 0 {
		stats.CompletionPercentage = completed * 100 / total
	}

	return stats, nil
}

func (s *progressService) validateCreateRequest(req *services.CreateProgressRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.LessonID, validation.Required, validation.Min(int64(1))),
	)
}
