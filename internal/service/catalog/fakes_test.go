package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"eduweb/internal/domain"
	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
)

// In-memory repository fakes. They keep rows in maps, hand out sequential
// ids, and honor the same ErrNotFound contract as the postgres layer, which
// is what the integrity engine keys on. Error injection hooks let tests fail
// a single cascade step and retry.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeCategoryRepo struct {
	rows   map[int64]*models.Category
	nextID int64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{rows: make(map[int64]*models.Category)}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	r.nextID++
	category.ID = r.nextID
	category.CreatedAt = time.Now()
	cp := *category
	r.rows[category.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
	}
	cp := *row
	return &cp, nil
}

func (r *fakeCategoryRepo) List(ctx context.Context, opts repos.ListOptions, filter repos.CategoryFilter) ([]models.Category, int, error) {
	var out []models.Category
	for _, row := range r.rows {
		if filter.IsActive != nil && row.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *models.Category) error {
	if _, ok := r.rows[category.ID]; !ok {
		return fmt.Errorf("category %d: %w", category.ID, domain.ErrNotFound)
	}
	cp := *category
	r.rows[category.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeCategoryRepo) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	for _, row := range r.rows {
		if row.Slug == slug && row.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	for _, row := range r.rows {
		if strings.EqualFold(row.Name, name) && row.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) CountExisting(ctx context.Context, ids []int64) (int, error) {
	n := 0
	for _, id := range ids {
		if _, ok := r.rows[id]; ok {
			n++
		}
	}
	return n, nil
}

type fakeCourseRepo struct {
	rows   map[int64]*models.Course
	nextID int64
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{rows: make(map[int64]*models.Course)}
}

func (r *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	r.nextID++
	course.ID = r.nextID
	course.CreatedAt = time.Now()
	cp := *course
	r.rows[course.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("course %d: %w", id, domain.ErrNotFound)
	}
	cp := *row
	return &cp, nil
}

func (r *fakeCourseRepo) List(ctx context.Context, opts repos.ListOptions, filter repos.CourseFilter) ([]models.Course, int, error) {
	var out []models.Course
	for _, row := range r.rows {
		if filter.CategoryID != nil {
			if row.CategoryID == nil || *row.CategoryID != *filter.CategoryID {
				continue
			}
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r *fakeCourseRepo) Update(ctx context.Context, course *models.Course) error {
	if _, ok := r.rows[course.ID]; !ok {
		return fmt.Errorf("course %d: %w", course.ID, domain.ErrNotFound)
	}
	cp := *course
	r.rows[course.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("course %d: %w", id, domain.ErrNotFound)
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeCourseRepo) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	for _, row := range r.rows {
		if row.Slug == slug && row.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCourseRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

func (r *fakeCourseRepo) CountExisting(ctx context.Context, ids []int64) (int, error) {
	n := 0
	for _, id := range ids {
		if _, ok := r.rows[id]; ok {
			n++
		}
	}
	return n, nil
}

func (r *fakeCourseRepo) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	n := 0
	for _, row := range r.rows {
		if row.CategoryID != nil && *row.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *fakeCourseRepo) ClearCategory(ctx context.Context, categoryID int64) error {
	for _, row := range r.rows {
		if row.CategoryID != nil && *row.CategoryID == categoryID {
			row.CategoryID = nil
		}
	}
	return nil
}

type fakeModuleRepo struct {
	rows   map[int64]*models.Module
	nextID int64
}

func newFakeModuleRepo() *fakeModuleRepo {
	return &fakeModuleRepo{rows: make(map[int64]*models.Module)}
}

func (r *fakeModuleRepo) Create(ctx context.Context, module *models.Module) error {
	r.nextID++
	module.ID = r.nextID
	module.CreatedAt = time.Now()
	cp := *module
	r.rows[module.ID] = &cp
	return nil
}

func (r *fakeModuleRepo) GetByID(ctx context.Context, id int64) (*models.Module, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("module %d: %w", id, domain.ErrNotFound)
	}
	cp := *row
	return &cp, nil
}

func (r *fakeModuleRepo) List(ctx context.Context, opts repos.ListOptions, filter repos.ModuleFilter) ([]models.Module, int, error) {
	var out []models.Module
	for _, row := range r.rows {
		if filter.CourseID != nil && row.CourseID != *filter.CourseID {
			continue
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r *fakeModuleRepo) Update(ctx context.Context, module *models.Module) error {
	if _, ok := r.rows[module.ID]; !ok {
		return fmt.Errorf("module %d: %w", module.ID, domain.ErrNotFound)
	}
	cp := *module
	r.rows[module.ID] = &cp
	return nil
}

func (r *fakeModuleRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("module %d: %w", id, domain.ErrNotFound)
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeModuleRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

func (r *fakeModuleRepo) CountByCourse(ctx context.Context, courseID int64) (int, error) {
	n := 0
	for _, row := range r.rows {
		if row.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (r *fakeModuleRepo) IDsByCourse(ctx context.Context, courseID int64) ([]int64, error) {
	var ids []int64
	for _, row := range r.rows {
		if row.CourseID == courseID {
			ids = append(ids, row.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type fakeLessonRepo struct {
	rows   map[int64]*models.Lesson
	nextID int64

	// When set, the next DeleteByModule call fails with this error once.
	failDeleteByModuleOnce error
}

func newFakeLessonRepo() *fakeLessonRepo {
	return &fakeLessonRepo{rows: make(map[int64]*models.Lesson)}
}

func (r *fakeLessonRepo) Create(ctx context.Context, lesson *models.Lesson) error {
	r.nextID++
	lesson.ID = r.nextID
	lesson.CreatedAt = time.Now()
	cp := *lesson
	r.rows[lesson.ID] = &cp
	return nil
}

func (r *fakeLessonRepo) GetByID(ctx context.Context, id int64) (*models.Lesson, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("lesson %d: %w", id, domain.ErrNotFound)
	}
	cp := *row
	return &cp, nil
}

func (r *fakeLessonRepo) List(ctx context.Context, opts repos.ListOptions, filter repos.LessonFilter) ([]models.Lesson, int, error) {
	var out []models.Lesson
	for _, row := range r.rows {
		if filter.ModuleID != nil && row.ModuleID != *filter.ModuleID {
			continue
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r *fakeLessonRepo) Update(ctx context.Context, lesson *models.Lesson) error {
	if _, ok := r.rows[lesson.ID]; !ok {
		return fmt.Errorf("lesson %d: %w", lesson.ID, domain.ErrNotFound)
	}
	cp := *lesson
	r.rows[lesson.ID] = &cp
	return nil
}

func (r *fakeLessonRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("lesson %d: %w", id, domain.ErrNotFound)
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeLessonRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

func (r *fakeLessonRepo) CountByModule(ctx context.Context, moduleID int64) (int, error) {
	n := 0
	for _, row := range r.rows {
		if row.ModuleID == moduleID {
			n++
		}
	}
	return n, nil
}

func (r *fakeLessonRepo) IDsByModule(ctx context.Context, moduleID int64) ([]int64, error) {
	var ids []int64
	for _, row := range r.rows {
		if row.ModuleID == moduleID {
			ids = append(ids, row.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeLessonRepo) DeleteByModule(ctx context.Context, moduleID int64) error {
	if err := r.failDeleteByModuleOnce; err != nil {
		r.failDeleteByModuleOnce = nil
		return err
	}
	for id, row := range r.rows {
		if row.ModuleID == moduleID {
			delete(r.rows, id)
		}
	}
	return nil
}

func (r *fakeLessonRepo) CountAll(ctx context.Context) (int, error) {
	return len(r.rows), nil
}

type fakeProgressRepo struct {
	rows   map[int64]*models.Progress
	nextID int64
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{rows: make(map[int64]*models.Progress)}
}

func (r *fakeProgressRepo) Create(ctx context.Context, progress *models.Progress) error {
	r.nextID++
	progress.ID = r.nextID
	progress.CreatedAt = time.Now()
	cp := *progress
	r.rows[progress.ID] = &cp
	return nil
}

func (r *fakeProgressRepo) GetByID(ctx context.Context, id int64) (*models.Progress, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("progress %d: %w", id, domain.ErrNotFound)
	}
	cp := *row
	return &cp, nil
}

func (r *fakeProgressRepo) List(ctx context.Context, opts repos.ListOptions, filter repos.ProgressFilter) ([]models.Progress, int, error) {
	var out []models.Progress
	for _, row := range r.rows {
		if filter.UserID != nil && row.UserID != *filter.UserID {
			continue
		}
		if filter.LessonID != nil && row.LessonID != *filter.LessonID {
			continue
		}
		if filter.IsCompleted != nil && row.IsCompleted != *filter.IsCompleted {
			continue
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r *fakeProgressRepo) Update(ctx context.Context, progress *models.Progress) error {
	if _, ok := r.rows[progress.ID]; !ok {
		return fmt.Errorf("progress %d: %w", progress.ID, domain.ErrNotFound)
	}
	cp := *progress
	r.rows[progress.ID] = &cp
	return nil
}

func (r *fakeProgressRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("progress %d: %w", id, domain.ErrNotFound)
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeProgressRepo) FindByUserLesson(ctx context.Context, userID string, lessonID int64) (*models.Progress, error) {
	var found *models.Progress
	for _, row := range r.rows {
		if row.UserID == userID && row.LessonID == lessonID {
			if found == nil || row.ID < found.ID {
				found = row
			}
		}
	}
	if found == nil {
		return nil, fmt.Errorf("progress for user %s lesson %d: %w", userID, lessonID, domain.ErrNotFound)
	}
	cp := *found
	return &cp, nil
}

func (r *fakeProgressRepo) CountByLesson(ctx context.Context, lessonID int64) (int, error) {
	n := 0
	for _, row := range r.rows {
		if row.LessonID == lessonID {
			n++
		}
	}
	return n, nil
}

func (r *fakeProgressRepo) DeleteByLessonIDs(ctx context.Context, lessonIDs []int64) error {
	wanted := make(map[int64]struct{}, len(lessonIDs))
	for _, id := range lessonIDs {
		wanted[id] = struct{}{}
	}
	for id, row := range r.rows {
		if _, ok := wanted[row.LessonID]; ok {
			delete(r.rows, id)
		}
	}
	return nil
}

func (r *fakeProgressRepo) CountCompletedByUser(ctx context.Context, userID string) (int, error) {
	n := 0
	for _, row := range r.rows {
		if row.UserID == userID && row.IsCompleted {
			n++
		}
	}
	return n, nil
}

func (r *fakeProgressRepo) LastCompletionByUser(ctx context.Context, userID string) (*time.Time, error) {
	var last *time.Time
	for _, row := range r.rows {
		if row.UserID != userID || row.CompletedAt == nil {
			continue
		}
		if last == nil || row.CompletedAt.After(*last) {
			t := *row.CompletedAt
			last = &t
		}
	}
	return last, nil
}

type fakeFavoriteRepo struct {
	rows   map[int64]*models.Favorite
	nextID int64

	// When set, the next DeleteByItem call fails with this error once.
	failDeleteByItemOnce error
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{rows: make(map[int64]*models.Favorite)}
}

func (r *fakeFavoriteRepo) Create(ctx context.Context, favorite *models.Favorite) error {
	r.nextID++
	favorite.ID = r.nextID
	favorite.CreatedAt = time.Now()
	cp := *favorite
	r.rows[favorite.ID] = &cp
	return nil
}

func (r *fakeFavoriteRepo) GetByID(ctx context.Context, id int64) (*models.Favorite, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("favorite %d: %w", id, domain.ErrNotFound)
	}
	cp := *row
	return &cp, nil
}

func (r *fakeFavoriteRepo) List(ctx context.Context, opts repos.ListOptions, filter repos.FavoriteFilter) ([]models.Favorite, int, error) {
	var out []models.Favorite
	for _, row := range r.rows {
		if filter.UserID != nil && row.UserID != *filter.UserID {
			continue
		}
		if filter.ItemType != nil && row.ItemType != *filter.ItemType {
			continue
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r *fakeFavoriteRepo) Update(ctx context.Context, favorite *models.Favorite) error {
	if _, ok := r.rows[favorite.ID]; !ok {
		return fmt.Errorf("favorite %d: %w", favorite.ID, domain.ErrNotFound)
	}
	cp := *favorite
	r.rows[favorite.ID] = &cp
	return nil
}

func (r *fakeFavoriteRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("favorite %d: %w", id, domain.ErrNotFound)
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeFavoriteRepo) FindByUserItem(ctx context.Context, userID string, item models.FavoriteItem) (*models.Favorite, error) {
	for _, row := range r.rows {
		if row.UserID == userID && row.ItemType == item.Type && row.ItemID == item.ID {
			cp := *row
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("favorite for user %s: %w", userID, domain.ErrNotFound)
}

func (r *fakeFavoriteRepo) DeleteByUserItem(ctx context.Context, userID string, item models.FavoriteItem) (bool, error) {
	for id, row := range r.rows {
		if row.UserID == userID && row.ItemType == item.Type && row.ItemID == item.ID {
			delete(r.rows, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFavoriteRepo) CountByItem(ctx context.Context, item models.FavoriteItem) (int, error) {
	n := 0
	for _, row := range r.rows {
		if row.ItemType == item.Type && row.ItemID == item.ID {
			n++
		}
	}
	return n, nil
}

func (r *fakeFavoriteRepo) DeleteByItem(ctx context.Context, itemType models.ItemType, itemIDs []int64) error {
	if err := r.failDeleteByItemOnce; err != nil {
		r.failDeleteByItemOnce = nil
		return err
	}
	wanted := make(map[int64]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = struct{}{}
	}
	for id, row := range r.rows {
		if row.ItemType != itemType {
			continue
		}
		if _, ok := wanted[row.ItemID]; ok {
			delete(r.rows, id)
		}
	}
	return nil
}

type fakeRegionRepo struct {
	rows   map[int64]*models.Region
	nextID int64
}

func newFakeRegionRepo() *fakeRegionRepo {
	return &fakeRegionRepo{rows: make(map[int64]*models.Region)}
}

func (r *fakeRegionRepo) Create(ctx context.Context, region *models.Region) error {
	r.nextID++
	region.ID = r.nextID
	region.CreatedAt = time.Now()
	cp := *region
	r.rows[region.ID] = &cp
	return nil
}

func (r *fakeRegionRepo) GetByID(ctx context.Context, id int64) (*models.Region, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("region %d: %w", id, domain.ErrNotFound)
	}
	cp := *row
	return &cp, nil
}

func (r *fakeRegionRepo) List(ctx context.Context, opts repos.ListOptions, filter repos.RegionFilter) ([]models.Region, int, error) {
	var out []models.Region
	for _, row := range r.rows {
		if filter.IsActive != nil && row.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r *fakeRegionRepo) Update(ctx context.Context, region *models.Region) error {
	if _, ok := r.rows[region.ID]; !ok {
		return fmt.Errorf("region %d: %w", region.ID, domain.ErrNotFound)
	}
	cp := *region
	r.rows[region.ID] = &cp
	return nil
}

func (r *fakeRegionRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("region %d: %w", id, domain.ErrNotFound)
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeRegionRepo) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	for _, row := range r.rows {
		if row.Slug == slug && row.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRegionRepo) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	for _, row := range r.rows {
		if strings.EqualFold(row.Name, name) && row.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// fixture wires the fakes into a full engine plus a populated hierarchy:
// one category, one course under it, two modules, two lessons under the
// first module, plus progress and favorites hanging off them.
type fixture struct {
	categories *fakeCategoryRepo
	courses    *fakeCourseRepo
	modules    *fakeModuleRepo
	lessons    *fakeLessonRepo
	progress   *fakeProgressRepo
	favorites  *fakeFavoriteRepo
	regions    *fakeRegionRepo

	validator *ReferenceValidator
	counter   *DependencyCounter
	deleter   *CascadeDeleter

	categoryID int64
	courseID   int64
	moduleID   int64 // first module, has the lessons
	module2ID  int64 // second module, empty
	lessonID   int64
	lesson2ID  int64
}

const testUserID = "7f0c2a4e-9b1d-4c83-a6f2-0d5e8b3c1a97"

func newFixture() *fixture {
	f := &fixture{
		categories: newFakeCategoryRepo(),
		courses:    newFakeCourseRepo(),
		modules:    newFakeModuleRepo(),
		lessons:    newFakeLessonRepo(),
		progress:   newFakeProgressRepo(),
		favorites:  newFakeFavoriteRepo(),
		regions:    newFakeRegionRepo(),
	}
	f.validator = NewReferenceValidator(f.categories, f.courses, f.modules, f.lessons, f.progress, f.favorites)
	f.counter = NewDependencyCounter(f.courses, f.modules, f.lessons, f.progress, f.favorites)
	f.deleter = NewCascadeDeleter(f.categories, f.courses, f.modules, f.lessons, f.progress, f.favorites, f.counter, testLogger())
	return f
}

func newPopulatedFixture() *fixture {
	f := newFixture()
	ctx := context.Background()

	category := &models.Category{Name: "Programming", Slug: "programming", IsActive: true}
	_ = f.categories.Create(ctx, category)
	f.categoryID = category.ID

	course := &models.Course{Title: "Backend Fundamentals", Slug: "backend-fundamentals", CategoryID: &category.ID}
	_ = f.courses.Create(ctx, course)
	f.courseID = course.ID

	module := &models.Module{CourseID: course.ID, Title: "HTTP and Routing"}
	_ = f.modules.Create(ctx, module)
	f.moduleID = module.ID

	module2 := &models.Module{CourseID: course.ID, Title: "Working with Databases"}
	_ = f.modules.Create(ctx, module2)
	f.module2ID = module2.ID

	lesson := &models.Lesson{ModuleID: module.ID, Title: "Anatomy of a Request"}
	_ = f.lessons.Create(ctx, lesson)
	f.lessonID = lesson.ID

	lesson2 := &models.Lesson{ModuleID: module.ID, Title: "Designing URL Hierarchies"}
	_ = f.lessons.Create(ctx, lesson2)
	f.lesson2ID = lesson2.ID

	_ = f.progress.Create(ctx, &models.Progress{UserID: testUserID, LessonID: lesson.ID, IsCompleted: true})
	_ = f.favorites.Create(ctx, &models.Favorite{UserID: testUserID, ItemType: models.ItemTypeLesson, ItemID: lesson.ID})
	_ = f.favorites.Create(ctx, &models.Favorite{UserID: testUserID, ItemType: models.ItemTypeModule, ItemID: module.ID})
	_ = f.favorites.Create(ctx, &models.Favorite{UserID: testUserID, ItemType: models.ItemTypeCourse, ItemID: course.ID})

	return f
}
