package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"eduweb/internal/domain"
	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
	services "eduweb/internal/domain/services/catalog"
)

// CascadeDeleter owns every destructive operation on the catalog hierarchy.
//
// The store has no FK constraints and no multi-statement transactions, so a
// force delete runs as a sequence of independent, individually-committed
// store calls, ordered leaf-first so an interruption can only leave orphaned
// children behind, never a parent pointing at nothing. Every step is
// idempotent; the recovery path for a mid-sequence failure is retrying the
// same delete, which re-runs the remaining steps as no-ops plus the ones that
// never happened.
type CascadeDeleter struct {
	categoryRepo repos.CategoryRepository
	courseRepo   repos.CourseRepository
	moduleRepo   repos.ModuleRepository
	lessonRepo   repos.LessonRepository
	progressRepo repos.ProgressRepository
	favoriteRepo repos.FavoriteRepository
	counter      *DependencyCounter
	logger       *slog.Logger
}

// NewCascadeDeleter creates a new cascade deleter
func NewCascadeDeleter(
	categoryRepo repos.CategoryRepository,
	courseRepo repos.CourseRepository,
	moduleRepo repos.ModuleRepository,
	lessonRepo repos.LessonRepository,
	progressRepo repos.ProgressRepository,
	favoriteRepo repos.FavoriteRepository,
	counter *DependencyCounter,
	logger *slog.Logger,
) *CascadeDeleter {
	return &CascadeDeleter{
		categoryRepo: categoryRepo,
		courseRepo:   courseRepo,
		moduleRepo:   moduleRepo,
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		favoriteRepo: favoriteRepo,
		counter:      counter,
		logger:       logger,
	}
}

// DeleteLesson deletes a lesson. Lessons sit at the bottom of the hierarchy
// and carry user data (progress, favorites), so there is no force override:
// any dependent blocks the delete.
func (d *CascadeDeleter) DeleteLesson(ctx context.Context, id int64) error {
	if _, err := d.lessonRepo.GetByID(ctx, id); err != nil {
		return err
	}

	counts, err := d.counter.LessonDependents(ctx, id)
	if err != nil {
		return err
	}
	if counts["progress"] > 0 {
		return &domain.BlockedError{Resource: "lesson", Dependent: "progress record", Count: counts["progress"]}
	}
	if counts["favorites"] > 0 {
		return &domain.BlockedError{Resource: "lesson", Dependent: "favorite", Count: counts["favorites"]}
	}

	if err := d.lessonRepo.Delete(ctx, id); err != nil {
		return err
	}

	d.logger.Info("lesson deleted", "id", id)
	return nil
}

// DeleteModule deletes a module. Under the block policy any lesson blocks;
// under force the module's subtree is removed leaf-first.
func (d *CascadeDeleter) DeleteModule(ctx context.Context, id int64, policy services.DeletePolicy) error {
	if _, err := d.moduleRepo.GetByID(ctx, id); err != nil {
		return err
	}

	counts, err := d.counter.ModuleDependents(ctx, id)
	if err != nil {
		return err
	}
	if policy == services.PolicyBlock && counts["lessons"] > 0 {
		return &domain.BlockedError{Resource: "module", Dependent: "lesson", Count: counts["lessons"]}
	}

	if err := d.deleteModuleSubtree(ctx, id); err != nil {
		return err
	}

	d.logger.Info("module deleted", "id", id, "policy", string(policy), "lessons", counts["lessons"])
	return nil
}

// DeleteCourse deletes a course. Under the block policy any module blocks;
// under force each module's subtree is removed in turn, then the course's own
// favorites and row.
func (d *CascadeDeleter) DeleteCourse(ctx context.Context, id int64, policy services.DeletePolicy) error {
	if _, err := d.courseRepo.GetByID(ctx, id); err != nil {
		return err
	}

	counts, err := d.counter.CourseDependents(ctx, id)
	if err != nil {
		return err
	}
	if policy == services.PolicyBlock && counts["modules"] > 0 {
		return &domain.BlockedError{Resource: "course", Dependent: "module", Count: counts["modules"]}
	}

	// Fresh read so a retry only sees modules that still exist.
	moduleIDs, err := d.moduleRepo.IDsByCourse(ctx, id)
	if err != nil {
		return &domain.CascadeError{Entity: "course", ID: id, Step: "list modules", Err: err}
	}
	for _, moduleID := range moduleIDs {
		if err := d.deleteModuleSubtree(ctx, moduleID); err != nil {
			return &domain.CascadeError{Entity: "course", ID: id, Step: fmt.Sprintf("delete module %d", moduleID), Err: err}
		}
	}

	if err := d.favoriteRepo.DeleteByItem(ctx, models.ItemTypeCourse, []int64{id}); err != nil {
		return &domain.CascadeError{Entity: "course", ID: id, Step: "delete course favorites", Err: err}
	}
	if err := d.deleteRowIgnoreMissing(d.courseRepo.Delete, ctx, id); err != nil {
		return &domain.CascadeError{Entity: "course", ID: id, Step: "delete course", Err: err}
	}

	d.logger.Info("course deleted", "id", id, "policy", string(policy), "modules", len(moduleIDs))
	return nil
}

// DeleteCategory deletes a category. Categories are organizational only:
// force never removes courses, it orphans them (category_id = NULL) and then
// deletes the category row.
func (d *CascadeDeleter) DeleteCategory(ctx context.Context, id int64, policy services.DeletePolicy) error {
	if _, err := d.categoryRepo.GetByID(ctx, id); err != nil {
		return err
	}

	counts, err := d.counter.CategoryDependents(ctx, id)
	if err != nil {
		return err
	}
	if policy == services.PolicyBlock && counts["courses"] > 0 {
		return &domain.BlockedError{Resource: "category", Dependent: "course", Count: counts["courses"]}
	}

	if err := d.courseRepo.ClearCategory(ctx, id); err != nil {
		return &domain.CascadeError{Entity: "category", ID: id, Step: "orphan courses", Err: err}
	}
	if err := d.deleteRowIgnoreMissing(d.categoryRepo.Delete, ctx, id); err != nil {
		return &domain.CascadeError{Entity: "category", ID: id, Step: "delete category", Err: err}
	}

	d.logger.Info("category deleted", "id", id, "policy", string(policy), "orphaned_courses", counts["courses"])
	return nil
}

// deleteModuleSubtree removes one module and everything under it, leaf-first:
// progress of its lessons, favorites of its lessons, the lessons, the
// module's own favorites, and finally the module row. Every step no-ops when
// its target rows are already gone.
func (d *CascadeDeleter) deleteModuleSubtree(ctx context.Context, moduleID int64) error {
	lessonIDs, err := d.lessonRepo.IDsByModule(ctx, moduleID)
	if err != nil {
		return &domain.CascadeError{Entity: "module", ID: moduleID, Step: "list lessons", Err: err}
	}

	if err := d.progressRepo.DeleteByLessonIDs(ctx, lessonIDs); err != nil {
		return &domain.CascadeError{Entity: "module", ID: moduleID, Step: "delete lesson progress", Err: err}
	}
	if err := d.favoriteRepo.DeleteByItem(ctx, models.ItemTypeLesson, lessonIDs); err != nil {
		return &domain.CascadeError{Entity: "module", ID: moduleID, Step: "delete lesson favorites", Err: err}
	}
	if err := d.lessonRepo.DeleteByModule(ctx, moduleID); err != nil {
		return &domain.CascadeError{Entity: "module", ID: moduleID, Step: "delete lessons", Err: err}
	}
	if err := d.favoriteRepo.DeleteByItem(ctx, models.ItemTypeModule, []int64{moduleID}); err != nil {
		return &domain.CascadeError{Entity: "module", ID: moduleID, Step: "delete module favorites", Err: err}
	}
	if err := d.deleteRowIgnoreMissing(d.moduleRepo.Delete, ctx, moduleID); err != nil {
		return &domain.CascadeError{Entity: "module", ID: moduleID, Step: "delete module", Err: err}
	}

	return nil
}

// deleteRowIgnoreMissing tolerates a row already deleted by an earlier,
// partially-failed run of the same cascade.
func (d *CascadeDeleter) deleteRowIgnoreMissing(del func(context.Context, int64) error, ctx context.Context, id int64) error {
	if err := del(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}
