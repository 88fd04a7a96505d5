package catalog

import (
	"context"
	"fmt"

	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
	services "eduweb/internal/domain/services/catalog"
)

// DependencyCounter counts the direct dependents of a catalog entity. It
// never recurses: the cascade deleter walks the hierarchy itself and takes a
// fresh count at every level, so counts are never stale across levels.
type DependencyCounter struct {
	courseRepo   repos.CourseRepository
	moduleRepo   repos.ModuleRepository
	lessonRepo   repos.LessonRepository
	progressRepo repos.ProgressRepository
	favoriteRepo repos.FavoriteRepository
}

// NewDependencyCounter creates a new dependency counter
func NewDependencyCounter(
	courseRepo repos.CourseRepository,
	moduleRepo repos.ModuleRepository,
	lessonRepo repos.LessonRepository,
	progressRepo repos.ProgressRepository,
	favoriteRepo repos.FavoriteRepository,
) *DependencyCounter {
	return &DependencyCounter{
		courseRepo:   courseRepo,
		moduleRepo:   moduleRepo,
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		favoriteRepo: favoriteRepo,
	}
}

// CategoryDependents counts courses pointing at the category.
func (c *DependencyCounter) CategoryDependents(ctx context.Context, categoryID int64) (services.DependentCounts, error) {
	courses, err := c.courseRepo.CountByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("count category dependents: %w", err)
	}
	return services.DependentCounts{"courses": courses}, nil
}

// CourseDependents counts modules belonging to the course.
func (c *DependencyCounter) CourseDependents(ctx context.Context, courseID int64) (services.DependentCounts, error) {
	modules, err := c.moduleRepo.CountByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("count course dependents: %w", err)
	}
	return services.DependentCounts{"modules": modules}, nil
}

// ModuleDependents counts lessons belonging to the module.
func (c *DependencyCounter) ModuleDependents(ctx context.Context, moduleID int64) (services.DependentCounts, error) {
	lessons, err := c.lessonRepo.CountByModule(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("count module dependents: %w", err)
	}
	return services.DependentCounts{"lessons": lessons}, nil
}

// LessonDependents counts progress and favorite rows pointing at the lesson.
func (c *DependencyCounter) LessonDependents(ctx context.Context, lessonID int64) (services.DependentCounts, error) {
	progress, err := c.progressRepo.CountByLesson(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("count lesson dependents: %w", err)
	}
	favorites, err := c.favoriteRepo.CountByItem(ctx, models.FavoriteItem{Type: models.ItemTypeLesson, ID: lessonID})
	if err != nil {
		return nil, fmt.Errorf("count lesson dependents: %w", err)
	}
	return services.DependentCounts{"progress": progress, "favorites": favorites}, nil
}
