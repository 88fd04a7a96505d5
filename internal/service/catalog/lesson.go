package catalog

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"eduweb/internal/config"
	"eduweb/internal/domain"
	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
	services "eduweb/internal/domain/services/catalog"
)

type lessonService struct {
	lessonRepo   repos.LessonRepository
	progressRepo repos.ProgressRepository
	validator    *ReferenceValidator
	deleter      *CascadeDeleter
	counter      *DependencyCounter
	logger       *slog.Logger
}

// NewLessonService creates a new lesson service
func NewLessonService(
	lessonRepo repos.LessonRepository,
	progressRepo repos.ProgressRepository,
	validator *ReferenceValidator,
	deleter *CascadeDeleter,
	counter *DependencyCounter,
	logger *slog.Logger,
) services.LessonService {
	return &lessonService{
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		validator:    validator,
		deleter:      deleter,
		counter:      counter,
		logger:       logger,
	}
}

func (s *lessonService) ListLessons(ctx context.Context, opts repos.ListOptions, filter repos.LessonFilter) ([]models.Lesson, int, error) {
	return s.lessonRepo.List(ctx, opts, filter)
}

func (s *lessonService) GetLesson(ctx context.Context, id int64) (*models.Lesson, error) {
	return s.lessonRepo.GetByID(ctx, id)
}

// CreateLesson validates the payload and the required module reference, then
// persists the lesson
func (s *lessonService) CreateLesson(ctx context.Context, req *services.CreateLessonRequest) (*models.Lesson, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.validator.ValidateLessonModule(ctx, req.ModuleID); err != nil {
		return nil, err
	}

	lesson := &models.Lesson{
		ModuleID:         req.ModuleID,
		Title:            req.Title,
		VideoURL:         req.VideoURL,
		SupportContent:   req.SupportContent,
		Order:            req.Order,
		DripDelayMinutes: req.DripDelayMinutes,
	}

	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}

	s.logger.Info("lesson created", "id", lesson.ID, "module_id", lesson.ModuleID)
	return s.lessonRepo.GetByID(ctx, lesson.ID)
}

// UpdateLesson applies a partial update; a new module reference is validated
// before the write
func (s *lessonService) UpdateLesson(ctx context.Context, id int64, req *services.UpdateLessonRequest) (*models.Lesson, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ModuleID != nil {
		if err := s.validator.ValidateLessonModule(ctx, *req.ModuleID); err != nil {
			return nil, err
		}
		lesson.ModuleID = *req.ModuleID
	}
	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.VideoURL != nil {
		lesson.VideoURL = *req.VideoURL
	}
	if req.SupportContent != nil {
		lesson.SupportContent = *req.SupportContent
	}
	if req.Order != nil {
		lesson.Order = *req.Order
	}
	if req.DripDelayMinutes != nil {
		lesson.DripDelayMinutes = *req.DripDelayMinutes
	}

	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}

	s.logger.Info("lesson updated", "id", id)
	return s.lessonRepo.GetByID(ctx, id)
}

// DeleteLesson deletes a lesson; any progress or favorite blocks it
func (s *lessonService) DeleteLesson(ctx context.Context, id int64) error {
	return s.deleter.DeleteLesson(ctx, id)
}

// CountDependents reports the lesson's direct dependents
func (s *lessonService) CountDependents(ctx context.Context, id int64) (services.DependentCounts, error) {
	if _, err := s.lessonRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.counter.LessonDependents(ctx, id)
}

// ListProgress lists progress rows recorded against the lesson
func (s *lessonService) ListProgress(ctx context.Context, id int64, opts repos.ListOptions) ([]models.Progress, int, error) {
	if _, err := s.lessonRepo.GetByID(ctx, id); err != nil {
		return nil, 0, err
	}

	return s.progressRepo.List(ctx, opts, repos.ProgressFilter{LessonID: &id})
}

func (s *lessonService) validateCreateRequest(req *services.CreateLessonRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ModuleID, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxNameLength)),
		validation.Field(&req.VideoURL, is.URL),
		validation.Field(&req.Order, validation.Min(0)),
		validation.Field(&req.DripDelayMinutes, validation.Min(0)),
	)
}

func (s *lessonService) validateUpdateRequest(req *services.UpdateLessonRequest) error {
	var rules []*validation.FieldRules

	if req.ModuleID != nil {
		rules = append(rules, validation.Field(&req.ModuleID, validation.Min(int64(1))))
	}
	if req.Title != nil {
		rules = append(rules, validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxNameLength)))
	}
	if req.VideoURL != nil {
		rules = append(rules, validation.Field(&req.VideoURL, is.URL))
	}
	if req.Order != nil {
		rules = append(rules, validation.Field(&req.Order, validation.Min(0)))
	}
	if req.DripDelayMinutes != nil {
		rules = append(rules, validation.Field(&req.DripDelayMinutes, validation.Min(0)))
	}

	return validation.ValidateStruct(req, rules...)
}
