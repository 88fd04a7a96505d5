package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"eduweb/internal/domain"
	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
)

// PostgresLessonRepository implements the LessonRepository interface
type PostgresLessonRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(config *RepositoryConfig) repos.LessonRepository {
	return &PostgresLessonRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresLessonRepository) orderColumn(hint string) string {
	switch hint {
	case "title":
		return "l.title"
	case "created_at":
		return "l.created_at"
	default:
		return `l."order"`
	}
}

func (r *PostgresLessonRepository) selectLesson() string {
	return fmt.Sprintf(`
		SELECT l.id, l.module_id, l.title, l.video_url, l.support_content,
		       l."order", l.drip_delay_minutes, l.created_at,
		       m.id, m.title, m.course_id
		FROM %s l
		LEFT JOIN %s m ON m.id = l.module_id
	`, r.tables.Lessons, r.tables.Modules)
}

func scanLesson(row interface{ Scan(...interface{}) error }) (*models.Lesson, error) {
	var lesson models.Lesson
	var moduleID, moduleCourseID *int64
	var moduleTitle *string

	err := row.Scan(
		&lesson.ID,
		&lesson.ModuleID,
		&lesson.Title,
		&lesson.VideoURL,
		&lesson.SupportContent,
		&lesson.Order,
		&lesson.DripDelayMinutes,
		&lesson.CreatedAt,
		&moduleID,
		&moduleTitle,
		&moduleCourseID,
	)
	if err != nil {
		return nil, err
	}

	if moduleID != nil && moduleTitle != nil && moduleCourseID != nil {
		lesson.Module = &models.ModuleRef{ID: *moduleID, Title: *moduleTitle, CourseID: *moduleCourseID}
	}
	return &lesson, nil
}

// Create creates a new lesson
func (r *PostgresLessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (module_id, title, video_url, support_content, "order", drip_delay_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, r.tables.Lessons)

	err := r.pool.QueryRow(ctx, query,
		lesson.ModuleID,
		lesson.Title,
		lesson.VideoURL,
		lesson.SupportContent,
		lesson.Order,
		lesson.DripDelayMinutes,
	).Scan(&lesson.ID, &lesson.CreatedAt)

	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}

	return nil
}

// GetByID retrieves a lesson by ID, with its module summary joined in
func (r *PostgresLessonRepository) GetByID(ctx context.Context, id int64) (*models.Lesson, error) {
	query := r.selectLesson() + ` WHERE l.id = $1`

	lesson, err := scanLesson(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("lesson %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get lesson: %w", err)
	}

	return lesson, nil
}

// List returns a page of lessons plus the unpaginated total
func (r *PostgresLessonRepository) List(ctx context.Context, opts repos.ListOptions, filter repos.LessonFilter) ([]models.Lesson, int, error) {
	opts.ApplyDefaults()

	var conds []string
	var args []interface{}

	if filter.ModuleID != nil {
		args = append(args, *filter.ModuleID)
		conds = append(conds, fmt.Sprintf("l.module_id = $%d", len(args)))
	}
	where := whereClause(conds)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s l %s`, r.tables.Lessons, where)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count lessons: %w", err)
	}

	query := fmt.Sprintf(`%s %s ORDER BY %s %s, l.id ASC LIMIT $%d OFFSET $%d`,
		r.selectLesson(), where, r.orderColumn(opts.OrderBy), sortDirection(opts.Ascending), len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, *lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate lessons: %w", err)
	}

	return lessons, total, nil
}

// Update persists all mutable fields of the lesson
func (r *PostgresLessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET module_id = $1, title = $2, video_url = $3, support_content = $4, "order" = $5, drip_delay_minutes = $6
		WHERE id = $7
	`, r.tables.Lessons)

	result, err := r.pool.Exec(ctx, query,
		lesson.ModuleID,
		lesson.Title,
		lesson.VideoURL,
		lesson.SupportContent,
		lesson.Order,
		lesson.DripDelayMinutes,
		lesson.ID,
	)

	if err != nil {
		return fmt.Errorf("update lesson: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lesson %d: %w", lesson.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes the lesson row only
func (r *PostgresLessonRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Lessons)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lesson %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Exists reports whether a lesson row with the given id exists
func (r *PostgresLessonRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, r.tables.Lessons)

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check lesson exists: %w", err)
	}
	return exists, nil
}

// CountByModule counts lessons belonging to the module
func (r *PostgresLessonRepository) CountByModule(ctx context.Context, moduleID int64) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE module_id = $1`, r.tables.Lessons)

	var count int
	if err := r.pool.QueryRow(ctx, query, moduleID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count lessons by module: %w", err)
	}
	return count, nil
}

// IDsByModule returns the ids of the module's lessons
func (r *PostgresLessonRepository) IDsByModule(ctx context.Context, moduleID int64) ([]int64, error) {
	query := fmt.Sprintf(`SELECT id FROM %s WHERE module_id = $1 ORDER BY id ASC`, r.tables.Lessons)

	rows, err := r.pool.Query(ctx, query, moduleID)
	if err != nil {
		return nil, fmt.Errorf("list lesson ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan lesson id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lesson ids: %w", err)
	}

	return ids, nil
}

// DeleteByModule removes every lesson of the module
func (r *PostgresLessonRepository) DeleteByModule(ctx context.Context, moduleID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE module_id = $1`, r.tables.Lessons)

	if _, err := r.pool.Exec(ctx, query, moduleID); err != nil {
		return fmt.Errorf("delete lessons by module: %w", err)
	}
	return nil
}

// CountAll counts every lesson in the catalog
func (r *PostgresLessonRepository) CountAll(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Lessons)

	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count lessons: %w", err)
	}
	return count, nil
}
