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

type regionService struct {
	regionRepo   repos.RegionRepository
	categoryRepo repos.CategoryRepository
	courseRepo   repos.CourseRepository
	logger       *slog.Logger
}

// NewRegionService creates a new region service
func NewRegionService(
	regionRepo repos.RegionRepository,
	categoryRepo repos.CategoryRepository,
	courseRepo repos.CourseRepository,
	logger *slog.Logger,
) services.RegionService {
	return &regionService{
		regionRepo:   regionRepo,
		categoryRepo: categoryRepo,
		courseRepo:   courseRepo,
		logger:       logger,
	}
}

func (s *regionService) ListRegions(ctx context.Context, opts repos.ListOptions, filter repos.RegionFilter) ([]models.Region, int, error) {
	return s.regionRepo.List(ctx, opts, filter)
}

func (s *regionService) GetRegion(ctx context.Context, id int64) (*models.Region, error) {
	return s.regionRepo.GetByID(ctx, id)
}

// CreateRegion runs the full scope validation before anything is persisted
func (s *regionService) CreateRegion(ctx context.Context, req *services.CreateRegionRequest) (*models.Region, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	region := &models.Region{
		Name:                req.Name,
		Slug:                req.Slug,
		Description:         req.Description,
		IncludedCategoryIDs: req.IncludedCategoryIDs,
		ExcludedCourseIDs:   req.ExcludedCourseIDs,
		AvailableLanguages:  req.AvailableLanguages,
		PreferredUILanguage: req.PreferredUILanguage,
		IsActive:            isActive,
	}

	if err := s.validateScope(ctx, region, 0); err != nil {
		return nil, err
	}

	if err := s.regionRepo.Create(ctx, region); err != nil {
		return nil, err
	}

	s.logger.Info("region created", "id", region.ID, "slug", region.Slug)
	return region, nil
}

// UpdateRegion applies a partial update. Scope validation runs against the
// merged view of stored and patched fields, so a patch that only changes
// languages still gets its preferred_ui_language checked against the
// effective language set, and vice versa.
func (s *regionService) UpdateRegion(ctx context.Context, id int64, req *services.UpdateRegionRequest) (*models.Region, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	region, err := s.regionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		region.Name = *req.Name
	}
	if req.Slug != nil {
		region.Slug = *req.Slug
	}
	if req.Description != nil {
		region.Description = *req.Description
	}
	if req.IncludedCategoryIDs != nil {
		region.IncludedCategoryIDs = *req.IncludedCategoryIDs
	}
	if req.ExcludedCourseIDs != nil {
		region.ExcludedCourseIDs = *req.ExcludedCourseIDs
	}
	if req.AvailableLanguages != nil {
		region.AvailableLanguages = *req.AvailableLanguages
	}
	if req.PreferredUILanguage != nil {
		region.PreferredUILanguage = *req.PreferredUILanguage
	}
	if req.IsActive != nil {
		region.IsActive = *req.IsActive
	}

	if err := s.validateScope(ctx, region, id); err != nil {
		return nil, err
	}

	if err := s.regionRepo.Update(ctx, region); err != nil {
		return nil, err
	}

	s.logger.Info("region updated", "id", id)
	return region, nil
}

func (s *regionService) DeleteRegion(ctx context.Context, id int64) error {
	// Regions only reference the catalog, nothing references regions, so
	// deletion never cascades or blocks.
	if err := s.regionRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("region deleted", "id", id)
	return nil
}

// validateScope runs the ordered short-circuit checks on the effective
// region. Order matters: the first failing check names the failure, and
// nothing is persisted on any failure.
func (s *regionService) validateScope(ctx context.Context, region *models.Region, excludeID int64) error {
	// 1. included categories: non-empty, all resolve
	if len(region.IncludedCategoryIDs) == 0 {
		return &domain.ValidationError{Message: "included_category_ids must not be empty", Field: "included_category_ids"}
	}
	catIDs := dedupeIDs(region.IncludedCategoryIDs)
	count, err := s.categoryRepo.CountExisting(ctx, catIDs)
	if err != nil {
		return err
	}
	if count != len(catIDs) {
		return &domain.ValidationError{Message: "included_category_ids reference missing categories", Field: "included_category_ids"}
	}

	// 2. excluded courses: all resolve (empty is fine)
	if len(region.ExcludedCourseIDs) > 0 {
		courseIDs := dedupeIDs(region.ExcludedCourseIDs)
		count, err := s.courseRepo.CountExisting(ctx, courseIDs)
		if err != nil {
			return err
		}
		if count != len(courseIDs) {
			return &domain.ValidationError{Message: "excluded_course_ids reference missing courses", Field: "excluded_course_ids"}
		}
	}

	// 3. languages: non-empty
	if len(region.AvailableLanguages) == 0 {
		return &domain.ValidationError{Message: "available_languages must not be empty", Field: "available_languages"}
	}

	// 4. preferred UI language within the effective set
	if !region.HasLanguage(region.PreferredUILanguage) {
		return &domain.ValidationError{
			Message: fmt.Sprintf("preferred_ui_language %q is not among available_languages", region.PreferredUILanguage),
			Field:   "preferred_ui_language",
		}
	}

	// 5. name and slug unique among other regions
	taken, err := s.regionRepo.NameTaken(ctx, region.Name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return &domain.DuplicateKeyError{Resource: "region", Field: "name", Value: region.Name}
	}
	taken, err = s.regionRepo.SlugTaken(ctx, region.Slug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return &domain.DuplicateKeyError{Resource: "region", Field: "slug", Value: region.Slug}
	}

	return nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *regionService) validateCreateRequest(req *services.CreateRegionRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxNameLength)),
		validation.Field(&req.Slug,
			validation.Required,
			validation.Length(1, config.MaxSlugLength),
			validation.Match(slugPattern).Error("slug must be lowercase alphanumerics and hyphens"),
		),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&req.PreferredUILanguage, validation.Required, validation.Length(1, config.MaxLanguageCodeLength)),
	)
}

func (s *regionService) validateUpdateRequest(req *services.UpdateRegionRequest) error {
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
	if req.PreferredUILanguage != nil {
		rules = append(rules, validation.Field(&req.PreferredUILanguage, validation.Required, validation.Length(1, config.MaxLanguageCodeLength)))
	}

	return validation.ValidateStruct(req, rules...)
}
