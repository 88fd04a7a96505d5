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

type categoryService struct {
	categoryRepo repos.CategoryRepository
	courseRepo   repos.CourseRepository
	deleter      *CascadeDeleter
	counter      *DependencyCounter
	logger       *slog.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categoryRepo repos.CategoryRepository,
	courseRepo repos.CourseRepository,
	deleter *CascadeDeleter,
	counter *DependencyCounter,
	logger *slog.Logger,
) services.CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		courseRepo:   courseRepo,
		deleter:      deleter,
		counter:      counter,
		logger:       logger,
	}
}

func (s *categoryService) ListCategories(ctx context.Context, opts repos.ListOptions, filter repos.CategoryFilter) ([]models.Category, int, error) {
	return s.categoryRepo.List(ctx, opts, filter)
}

func (s *categoryService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

// CreateCategory validates and persists a new category
func (s *categoryService) CreateCategory(ctx context.Context, req *services.CreateCategoryRequest) (*models.Category, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.checkUniqueness(ctx, req.Name, req.Slug, 0); err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		Order:       req.Order,
		IsActive:    isActive,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created", "id", category.ID, "slug", category.Slug)
	return category, nil
}

// UpdateCategory applies a partial update
func (s *categoryService) UpdateCategory(ctx context.Context, id int64, req *services.UpdateCategoryRequest) (*models.Category, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Order != nil {
		category.Order = *req.Order
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.checkUniqueness(ctx, category.Name, category.Slug, id); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category updated", "id", id)
	return category, nil
}

// DeleteCategory deletes a category; force orphans its courses
func (s *categoryService) DeleteCategory(ctx context.Context, id int64, policy services.DeletePolicy) error {
	return s.deleter.DeleteCategory(ctx, id, policy)
}

// CountDependents reports the category's direct dependents
func (s *categoryService) CountDependents(ctx context.Context, id int64) (services.DependentCounts, error) {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.counter.CategoryDependents(ctx, id)
}

// ListCourses lists the category's courses
func (s *categoryService) ListCourses(ctx context.Context, id int64, opts repos.ListOptions, filter repos.CourseFilter) ([]models.Course, int, error) {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		return nil, 0, err
	}

	filter.CategoryID = &id
	return s.courseRepo.List(ctx, opts, filter)
}

// checkUniqueness enforces the logical unique constraints on name and slug.
// The store has no unique indexes, so this read is the only guard.
func (s *categoryService) checkUniqueness(ctx context.Context, name, slug string, excludeID int64) error {
	taken, err := s.categoryRepo.NameTaken(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return &domain.DuplicateKeyError{Resource: "category", Field: "name", Value: name}
	}

	taken, err = s.categoryRepo.SlugTaken(ctx, slug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return &domain.DuplicateKeyError{Resource: "category", Field: "slug", Value: slug}
	}

	return nil
}

func (s *categoryService) validateCreateRequest(req *services.CreateCategoryRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxNameLength)),
		validation.Field(&req.Slug,
			validation.Required,
			validation.Length(1, config.MaxSlugLength),
			validation.Match(slugPattern).Error("slug must be lowercase alphanumerics and hyphens"),
		),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&req.Order, validation.Min(0)),
	)
}

func (s *categoryService) validateUpdateRequest(req *services.UpdateCategoryRequest) error {
	var rules []*validation.FieldRules

	if req.Name != nil {
		rules = append(rules, validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxNameLength)))
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
	if req.Order != nil {
		rules = append(rules, validation.Field(&req.Order, validation.Min(0)))
	}

	return validation.ValidateStruct(req, rules...)
}
