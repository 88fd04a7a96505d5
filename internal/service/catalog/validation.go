package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"eduweb/internal/domain"
	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
)

// slugPattern matches URL-safe slugs: lowercase alphanumerics separated by
// single hyphens.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ReferenceValidator checks that every cross-entity reference in a write
// resolves before anything is persisted. The store carries no foreign keys
// and no unique indexes, so these reads are the only referential guard.
// Validation and write are separate store calls; a concurrent delete between
// them can still slip through, which the deletion side compensates for by
// tolerating dangling rows.
type ReferenceValidator struct {
	categoryRepo repos.CategoryRepository
	courseRepo   repos.CourseRepository
	moduleRepo   repos.ModuleRepository
	lessonRepo   repos.LessonRepository
	progressRepo repos.ProgressRepository
	favoriteRepo repos.FavoriteRepository
}

// NewReferenceValidator creates a new reference validator
func NewReferenceValidator(
	categoryRepo repos.CategoryRepository,
	courseRepo repos.CourseRepository,
	moduleRepo repos.ModuleRepository,
	lessonRepo repos.LessonRepository,
	progressRepo repos.ProgressRepository,
	favoriteRepo repos.FavoriteRepository,
) *ReferenceValidator {
	return &ReferenceValidator{
		categoryRepo: categoryRepo,
		courseRepo:   courseRepo,
		moduleRepo:   moduleRepo,
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		favoriteRepo: favoriteRepo,
	}
}

// ValidateCourseCategory checks an optional category reference. Nil means
// uncategorized and is always valid.
func (v *ReferenceValidator) ValidateCourseCategory(ctx context.Context, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}

	count, err := v.categoryRepo.CountExisting(ctx, []int64{*categoryID})
	if err != nil {
		return fmt.Errorf("validate category reference: %w", err)
	}
	if count == 0 {
		return &domain.MissingParentError{Field: "category_id", Kind: "category", Value: *categoryID}
	}
	return nil
}

// ValidateModuleCourse checks a module's required course reference.
func (v *ReferenceValidator) ValidateModuleCourse(ctx context.Context, courseID int64) error {
	exists, err := v.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return fmt.Errorf("validate course reference: %w", err)
	}
	if !exists {
		return &domain.MissingParentError{Field: "course_id", Kind: "course", Value: courseID}
	}
	return nil
}

// ValidateLessonModule checks a lesson's required module reference.
func (v *ReferenceValidator) ValidateLessonModule(ctx context.Context, moduleID int64) error {
	exists, err := v.moduleRepo.Exists(ctx, moduleID)
	if err != nil {
		return fmt.Errorf("validate module reference: %w", err)
	}
	if !exists {
		return &domain.MissingParentError{Field: "module_id", Kind: "module", Value: moduleID}
	}
	return nil
}

// ValidateProgressLesson checks a progress row's required lesson reference.
func (v *ReferenceValidator) ValidateProgressLesson(ctx context.Context, lessonID int64) error {
	exists, err := v.lessonRepo.Exists(ctx, lessonID)
	if err != nil {
		return fmt.Errorf("validate lesson reference: %w", err)
	}
	if !exists {
		return &domain.MissingParentError{Field: "lesson_id", Kind: "lesson", Value: lessonID}
	}
	return nil
}

// ValidateFavoriteItem resolves a polymorphic favorite target through its
// type tag against the matching table.
func (v *ReferenceValidator) ValidateFavoriteItem(ctx context.Context, item models.FavoriteItem) error {
	var exists bool
	var err error

	switch item.Type {
	case models.ItemTypeCourse:
		exists, err = v.courseRepo.Exists(ctx, item.ID)
	case models.ItemTypeModule:
		exists, err = v.moduleRepo.Exists(ctx, item.ID)
	case models.ItemTypeLesson:
		exists, err = v.lessonRepo.Exists(ctx, item.ID)
	default:
		return &domain.ValidationError{
			Message: fmt.Sprintf("invalid item_type %q", item.Type),
			Field:   "item_type",
		}
	}

	if err != nil {
		return fmt.Errorf("validate favorite target: %w", err)
	}
	if !exists {
		return &domain.MissingParentError{Field: "item_id", Kind: string(item.Type), Value: item.ID}
	}
	return nil
}

// CheckDuplicateProgress rejects a second progress row for (user, lesson),
// reporting the existing row's id.
func (v *ReferenceValidator) CheckDuplicateProgress(ctx context.Context, userID string, lessonID int64) error {
	existing, err := v.progressRepo.FindByUserLesson(ctx, userID, lessonID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("check duplicate progress: %w", err)
	}

	return &domain.ConflictError{
		Message:      "progress for this lesson already exists",
		ResourceType: "progress",
		ExistingID:   existing.ID,
	}
}

// CheckDuplicateFavorite rejects a second favorite for (user, item),
// reporting the existing row's id.
func (v *ReferenceValidator) CheckDuplicateFavorite(ctx context.Context, userID string, item models.FavoriteItem) error {
	existing, err := v.favoriteRepo.FindByUserItem(ctx, userID, item)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("check duplicate favorite: %w", err)
	}

	return &domain.ConflictError{
		Message:      "item already favorited",
		ResourceType: "favorite",
		ExistingID:   existing.ID,
	}
}
