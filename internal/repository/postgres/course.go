package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"eduweb/internal/domain"
	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
)

// PostgresCourseRepository implements the CourseRepository interface
type PostgresCourseRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(config *RepositoryConfig) repos.CourseRepository {
	return &PostgresCourseRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresCourseRepository) orderColumn(hint string) string {
	switch hint {
	case "title":
		return "c.title"
	case "created_at":
		return "c.created_at"
	default:
		return `c."order"`
	}
}

// selectCourse is the joined projection shared by GetByID and List. The
// category join is LEFT because category_id may be NULL (uncategorized) or,
// transiently, dangling.
func (r *PostgresCourseRepository) selectCourse() string {
	return fmt.Sprintf(`
		SELECT c.id, c.title, c.slug, c.description, c.author, c.language,
		       c.category_id, c."order", c.cover_images, c.is_locked, c.created_at,
		       cat.id, cat.name, cat.color
		FROM %s c
		LEFT JOIN %s cat ON cat.id = c.category_id
	`, r.tables.Courses, r.tables.Categories)
}

func scanCourse(row interface{ Scan(...interface{}) error }) (*models.Course, error) {
	var course models.Course
	var catID *int64
	var catName, catColor *string

	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Slug,
		&course.Description,
		&course.Author,
		&course.Language,
		&course.CategoryID,
		&course.Order,
		&course.CoverImages,
		&course.IsLocked,
		&course.CreatedAt,
		&catID,
		&catName,
		&catColor,
	)
	if err != nil {
		return nil, err
	}

	if catID != nil && catName != nil && catColor != nil {
		course.Category = &models.CategoryRef{ID: *catID, Name: *catName, Color: *catColor}
	}
	return &course, nil
}

// Create creates a new course
func (r *PostgresCourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, slug, description, author, language, category_id, "order", cover_images, is_locked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, r.tables.Courses)

	err := r.pool.QueryRow(ctx, query,
		course.Title,
		course.Slug,
		course.Description,
		course.Author,
		course.Language,
		course.CategoryID,
		course.Order,
		course.CoverImages,
		course.IsLocked,
	).Scan(&course.ID, &course.CreatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("course '%s': %w", course.Slug, domain.ErrConflict)
		}
		return fmt.Errorf("create course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID, with its category summary joined in
func (r *PostgresCourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := r.selectCourse() + ` WHERE c.id = $1`

	course, err := scanCourse(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("course %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	return course, nil
}

// List returns a page of courses plus the unpaginated total
func (r *PostgresCourseRepository) List(ctx context.Context, opts repos.ListOptions, filter repos.CourseFilter) ([]models.Course, int, error) {
	opts.ApplyDefaults()

	var conds []string
	var args []interface{}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf("c.category_id = $%d", len(args)))
	}
	if filter.IsLocked != nil {
		args = append(args, *filter.IsLocked)
		conds = append(conds, fmt.Sprintf("c.is_locked = $%d", len(args)))
	}
	if filter.Language != nil {
		args = append(args, *filter.Language)
		conds = append(conds, fmt.Sprintf("c.language = $%d", len(args)))
	}
	where := whereClause(conds)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s c %s`, r.tables.Courses, where)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	query := fmt.Sprintf(`%s %s ORDER BY %s %s, c.id ASC LIMIT $%d OFFSET $%d`,
		r.selectCourse(), where, r.orderColumn(opts.OrderBy), sortDirection(opts.Ascending), len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, *course)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate courses: %w", err)
	}

	return courses, total, nil
}

// Update persists all mutable fields of the course
func (r *PostgresCourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, slug = $2, description = $3, author = $4, language = $5,
		    category_id = $6, "order" = $7, cover_images = $8, is_locked = $9
		WHERE id = $10
	`, r.tables.Courses)

	result, err := r.pool.Exec(ctx, query,
		course.Title,
		course.Slug,
		course.Description,
		course.Author,
		course.Language,
		course.CategoryID,
		course.Order,
		course.CoverImages,
		course.IsLocked,
		course.ID,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("course '%s': %w", course.Slug, domain.ErrConflict)
		}
		return fmt.Errorf("update course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("course %d: %w", course.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes the course row only
func (r *PostgresCourseRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Courses)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("course %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// SlugTaken reports whether another course owns slug
func (r *PostgresCourseRepository) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE slug = $1 AND id <> $2)
	`, r.tables.Courses)

	var taken bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check course slug: %w", err)
	}
	return taken, nil
}

// Exists reports whether a course row with the given id exists
func (r *PostgresCourseRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, r.tables.Courses)

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check course exists: %w", err)
	}
	return exists, nil
}

// CountExisting returns how many of the given ids exist
func (r *PostgresCourseRepository) CountExisting(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE id = ANY($1)`, r.tables.Courses)

	var count int
	if err := r.pool.QueryRow(ctx, query, ids).Scan(&count); err != nil {
		return 0, fmt.Errorf("count courses by id: %w", err)
	}
	return count, nil
}

// CountByCategory counts courses pointing at the category
func (r *PostgresCourseRepository) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE category_id = $1`, r.tables.Courses)

	var count int
	if err := r.pool.QueryRow(ctx, query, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count courses by category: %w", err)
	}
	return count, nil
}

// ClearCategory orphans every course of the category
func (r *PostgresCourseRepository) ClearCategory(ctx context.Context, categoryID int64) error {
	query := fmt.Sprintf(`UPDATE %s SET category_id = NULL WHERE category_id = $1`, r.tables.Courses)

	if _, err := r.pool.Exec(ctx, query, categoryID); err != nil {
		return fmt.Errorf("clear course category: %w", err)
	}
	return nil
}
