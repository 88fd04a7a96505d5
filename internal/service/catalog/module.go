package catalog

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"eduweb/internal/config"
	"eduweb/internal/domain"
	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
	services "eduweb/internal/domain/services/catalog"
)

type moduleService struct {
	moduleRepo repos.ModuleRepository
	lessonRepo repos.LessonRepository
	validator  *ReferenceValidator
	deleter    *CascadeDeleter
	counter    *DependencyCounter
	logger     *slog.Logger
}

// NewModuleService creates a new module service
func NewModuleService(
	moduleRepo repos.ModuleRepository,
	lessonRepo repos.LessonRepository,
	validator *ReferenceValidator,
	deleter *CascadeDeleter,
	counter *DependencyCounter,
	logger *slog.Logger,
) services.ModuleService {
	return &moduleService{
		moduleRepo: moduleRepo,
		lessonRepo: lessonRepo,
		validator:  validator,
		deleter:    deleter,
		counter:    counter,
		logger:     logger,
	}
}

func (s *moduleService) ListModules(ctx context.Context, opts repos.ListOptions, filter repos.ModuleFilter) ([]models.Module, int, error) {
	return s.moduleRepo.List(ctx, opts, filter)
}

func (s *moduleService) GetModule(ctx context.Context, id int64) (*models.Module, error) {
	return s.moduleRepo.GetByID(ctx, id)
}

// CreateModule validates the payload and the required course reference, then
// persists the module
func (s *moduleService) CreateModule(ctx context.Context, req *services.CreateModuleRequest) (*models.Module, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.validator.ValidateModuleCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}

	isLocked := false
	if req.IsLocked != nil {
		isLocked = *req.IsLocked
	}

	module := &models.Module{
		CourseID:     req.CourseID,
		Title:        req.Title,
		Description:  req.Description,
		ModuleImages: req.ModuleImages,
		Order:        req.Order,
		IsLocked:     isLocked,
	}

	if err := s.moduleRepo.Create(ctx, module); err != nil {
		return nil, err
	}

	s.logger.Info("module created", "id", module.ID, "course_id", module.CourseID)
	return s.moduleRepo.GetByID(ctx, module.ID)
}

// UpdateModule applies a partial update; a new course reference is validated
// before the write
func (s *moduleService) UpdateModule(ctx context.Context, id int64, req *services.UpdateModuleRequest) (*models.Module, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	module, err := s.moduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CourseID != nil {
		if err := s.validator.ValidateModuleCourse(ctx, *req.CourseID); err != nil {
			return nil, err
		}
		module.CourseID = *req.CourseID
	}
	if req.Title != nil {
		module.Title = *req.Title
	}
	if req.Description != nil {
		module.Description = *req.Description
	}
	if req.ModuleImages != nil {
		module.ModuleImages = *req.ModuleImages
	}
	if req.Order != nil {
		module.Order = *req.Order
	}
	if req.IsLocked != nil {
		module.IsLocked = *req.IsLocked
	}

	if err := s.moduleRepo.Update(ctx, module); err != nil {
		return nil, err
	}

	s.logger.Info("module updated", "id", id)
	return s.moduleRepo.GetByID(ctx, id)
}

// DeleteModule deletes a module; force removes its lessons and their user data
func (s *moduleService) DeleteModule(ctx context.Context, id int64, policy services.DeletePolicy) error {
	return s.deleter.DeleteModule(ctx, id, policy)
}

// CountDependents reports the module's direct dependents
func (s *moduleService) CountDependents(ctx context.Context, id int64) (services.DependentCounts, error) {
	if _, err := s.moduleRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.counter.ModuleDependents(ctx, id)
}

// ListLessons lists the module's lessons
func (s *moduleService) ListLessons(ctx context.Context, id int64, opts repos.ListOptions) ([]models.Lesson, int, error) {
	if _, err := s.moduleRepo.GetByID(ctx, id); err != nil {
		return nil, 0, err
	}

	return s.lessonRepo.List(ctx, opts, repos.LessonFilter{ModuleID: &id})
}

func (s *moduleService) validateCreateRequest(req *services.CreateModuleRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.CourseID, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxNameLength)),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&req.Order, validation.Min(0)),
	)
}

func (s *moduleService) validateUpdateRequest(req *services.UpdateModuleRequest) error {
	var rules []*validation.FieldRules

	if req.CourseID != nil {
		rules = append(rules, validation.Field(&req.CourseID, validation.Min(int64(1))))
	}
	if req.Title != nil {
		rules = append(rules, validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxNameLength)))
	}
	if req.Description != nil {
		rules = append(rules, validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)))
	}
	if req.Order != nil {
		rules = append(rules, validation.Field(&req.Order, validation.Min(0)))
	}

	return validation.ValidateStruct(req, rules...)
}
