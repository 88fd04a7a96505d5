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

type courseService struct {
	courseRepo repos.CourseRepository
	moduleRepo repos.ModuleRepository
	validator  *ReferenceValidator
	deleter    *CascadeDeleter
	counter    *DependencyCounter
	logger     *slog.Logger
}

// NewCourseService creates a new course service
func NewCourseService(
	courseRepo repos.CourseRepository,
	moduleRepo repos.ModuleRepository,
	validator *ReferenceValidator,
	deleter *CascadeDeleter,
	counter *DependencyCounter,
	logger *slog.Logger,
) services.CourseService {
	return &courseService{
		courseRepo: courseRepo,
		moduleRepo: moduleRepo,
		validator:  validator,
		deleter:    deleter,
		counter:    counter,
		logger:     logger,
	}
}

func (s *courseService) ListCourses(ctx context.Context, opts repos.ListOptions, filter repos.CourseFilter) ([]models.Course, int, error) {
	return s.courseRepo.List(ctx, opts, filter)
}

func (s *courseService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// CreateCourse validates the payload and the optional category reference,
// then persists the course
func (s *courseService) CreateCourse(ctx context.Context, req *services.CreateCourseRequest) (*models.Course, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.validator.ValidateCourseCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if err := s.checkSlug(ctx, req.Slug, 0); err != nil {
		return nil, err
	}

	isLocked := false
	if req.IsLocked != nil {
		isLocked = *req.IsLocked
	}

	course := &models.Course{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Author:      req.Author,
		Language:    req.Language,
		CategoryID:  req.CategoryID,
		Order:       req.Order,
		CoverImages: req.CoverImages,
		IsLocked:    isLocked,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("course created", "id", course.ID, "slug", course.Slug)
	return s.courseRepo.GetByID(ctx, course.ID)
}

// UpdateCourse applies a partial update. An explicit null category_id orphans
// the course deliberately; an absent key leaves it alone.
func (s *courseService) UpdateCourse(ctx context.Context, id int64, req *services.UpdateCourseRequest) (*models.Course, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Slug != nil {
		course.Slug = *req.Slug
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Author != nil {
		course.Author = *req.Author
	}
	if req.Language != nil {
		course.Language = *req.Language
	}
	if req.CategorySet {
		if err := s.validator.ValidateCourseCategory(ctx, req.CategoryID); err != nil {
			return nil, err
		}
		course.CategoryID = req.CategoryID
	}
	if req.Order != nil {
		course.Order = *req.Order
	}
	if req.CoverImages != nil {
		course.CoverImages = *req.CoverImages
	}
	if req.IsLocked != nil {
		course.IsLocked = *req.IsLocked
	}

	if err := s.checkSlug(ctx, course.Slug, id); err != nil {
		return nil, err
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("course updated", "id", id)
	return s.courseRepo.GetByID(ctx, id)
}

// DeleteCourse deletes a course; force removes its whole subtree
func (s *courseService) DeleteCourse(ctx context.Context, id int64, policy services.DeletePolicy) error {
	return s.deleter.DeleteCourse(ctx, id, policy)
}

// CountDependents reports the course's direct dependents
func (s *courseService) CountDependents(ctx context.Context, id int64) (services.DependentCounts, error) {
	if _, err := s.courseRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.counter.CourseDependents(ctx, id)
}

// ListModules lists the course's modules
func (s *courseService) ListModules(ctx context.Context, id int64, opts repos.ListOptions, filter repos.ModuleFilter) ([]models.Module, int, error) {
	if _, err := s.courseRepo.GetByID(ctx, id); err != nil {
		return nil, 0, err
	}

	filter.CourseID = &id
	return s.moduleRepo.List(ctx, opts, filter)
}

func (s *courseService) checkSlug(ctx context.Context, slug string, excludeID int64) error {
	taken, err := s.courseRepo.SlugTaken(ctx, slug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return &domain.DuplicateKeyError{Resource: "course", Field: "slug", Value: slug}
	}
	return nil
}

func (s *courseService) validateCreateRequest(req *services.CreateCourseRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxNameLength)),
		validation.Field(&req.Slug,
			validation.Required,
			validation.Length(1, config.MaxSlugLength),
			validation.Match(slugPattern).Error("slug must be lowercase alphanumerics and hyphens"),
		),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&req.Author, validation.Length(0, config.MaxNameLength)),
		validation.Field(&req.Language, validation.Length(0, config.MaxLanguageCodeLength)),
		validation.Field(&req.Order, validation.Min(0)),
	)
}

func (s *courseService) validateUpdateRequest(req *services.UpdateCourseRequest) error {
	var rules []*validation.FieldRules

	if req.Title != nil {
		rules = append(rules, validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxNameLength)))
	}
	if req.Slug != nil {
		rules = append(rules, validation.Field(&req.Slug,
			validation.Required,
			validation.Length(1, config.MaxSlugLength),
			validation.Match(slugPattern).Error("slug must be lowercase alphanumerics and hyphens"),
		))
	}
	if req.Description != nil {
		rules = append(rules, validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)))
	}
	if req.Author != nil {
		rules = append(rules, validation.Field(&req.Author, validation.Length(0, config.MaxNameLength)))
	}
	if req.Language != nil {
		rules = append(rules, validation.Field(&req.Language, validation.Length(0, config.MaxLanguageCodeLength)))
	}
	if req.Order != nil {
		rules = append(rules, validation.Field(&req.Order, validation.Min(0)))
	}

	return validation.ValidateStruct(req, rules...)
}
