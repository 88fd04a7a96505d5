package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"eduweb/internal/domain"
	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
)

// PostgresProgressRepository implements the ProgressRepository interface
type PostgresProgressRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(config *RepositoryConfig) repos.ProgressRepository {
	return &PostgresProgressRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresProgressRepository) orderColumn(hint string) string {
	switch hint {
	case "completed_at":
		return "p.completed_at"
	default:
		return "p.created_at"
	}
}

func (r *PostgresProgressRepository) selectProgress() string {
	return fmt.Sprintf(`
		SELECT p.id, p.user_id, p.lesson_id, p.is_completed, p.completed_at, p.created_at,
		       l.id, l.title, l.module_id
		FROM %s p
		LEFT JOIN %s l ON l.id = p.lesson_id
	`, r.tables.UserProgress, r.tables.Lessons)
}

func scanProgress(row interface{ Scan(...interface{}) error }) (*models.Progress, error) {
	var progress models.Progress
	var lessonID, lessonModuleID *int64
	var lessonTitle *string

	err := row.Scan(
		&progress.ID,
		&progress.UserID,
		&progress.LessonID,
		&progress.IsCompleted,
		&progress.CompletedAt,
		&progress.CreatedAt,
		&lessonID,
		&lessonTitle,
		&lessonModuleID,
	)
	if err != nil {
		return nil, err
	}

	if lessonID != nil && lessonTitle != nil && lessonModuleID != nil {
		progress.Lesson = &models.LessonRef{ID: *lessonID, Title: *lessonTitle, ModuleID: *lessonModuleID}
	}
	return &progress, nil
}

// Create creates a new progress row
func (r *PostgresProgressRepository) Create(ctx context.Context, progress *models.Progress) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, lesson_id, is_completed, completed_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, r.tables.UserProgress)

	err := r.pool.QueryRow(ctx, query,
		progress.UserID,
		progress.LessonID,
		progress.IsCompleted,
		progress.CompletedAt,
	).Scan(&progress.ID, &progress.CreatedAt)

	if err != nil {
		return fmt.Errorf("create progress: %w", err)
	}

	return nil
}

// GetByID retrieves a progress row by ID, with its lesson summary joined in
func (r *PostgresProgressRepository) GetByID(ctx context.Context, id int64) (*models.Progress, error) {
	query := r.selectProgress() + ` WHERE p.id = $1`

	progress, err := scanProgress(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("progress %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}

	return progress, nil
}

// List returns a page of progress rows plus the unpaginated total
func (r *PostgresProgressRepository) List(ctx context.Context, opts repos.ListOptions, filter repos.ProgressFilter) ([]models.Progress, int, error) {
	opts.ApplyDefaults()

	var conds []string
	var args []interface{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conds = append(conds, fmt.Sprintf("p.user_id = $%d", len(args)))
	}
	if filter.LessonID != nil {
		args = append(args, *filter.LessonID)
		conds = append(conds, fmt.Sprintf("p.lesson_id = $%d", len(args)))
	}
	if filter.IsCompleted != nil {
		args = append(args, *filter.IsCompleted)
		conds = append(conds, fmt.Sprintf("p.is_completed = $%d", len(args)))
	}
	where := whereClause(conds)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s p %s`, r.tables.UserProgress, where)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count progress: %w", err)
	}

	query := fmt.Sprintf(`%s %s ORDER BY %s %s, p.id ASC LIMIT $%d OFFSET $%d`,
		r.selectProgress(), where, r.orderColumn(opts.OrderBy), sortDirection(opts.Ascending), len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var items []models.Progress
	for rows.Next() {
		progress, err := scanProgress(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan progress: %w", err)
		}
		items = append(items, *progress)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate progress: %w", err)
	}

	return items, total, nil
}

// Update persists the completion state of the progress row
func (r *PostgresProgressRepository) Update(ctx context.Context, progress *models.Progress) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_completed = $1, completed_at = $2
		WHERE id = $3
	`, r.tables.UserProgress)

	result, err := r.pool.Exec(ctx, query,
		progress.IsCompleted,
		progress.CompletedAt,
		progress.ID,
	)

	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("progress %d: %w", progress.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes the progress row
func (r *PostgresProgressRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.UserProgress)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("progress %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// FindByUserLesson returns the progress row for (user, lesson)
func (r *PostgresProgressRepository) FindByUserLesson(ctx context.Context, userID string, lessonID int64) (*models.Progress, error) {
	query := r.selectProgress() + ` WHERE p.user_id = $1 AND p.lesson_id = $2 ORDER BY p.id ASC LIMIT 1`

	progress, err := scanProgress(r.pool.QueryRow(ctx, query, userID, lessonID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("progress for user %s lesson %d: %w", userID, lessonID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find progress: %w", err)
	}

	return progress, nil
}

// CountByLesson counts progress rows pointing at the lesson
func (r *PostgresProgressRepository) CountByLesson(ctx context.Context, lessonID int64) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE lesson_id = $1`, r.tables.UserProgress)

	var count int
	if err := r.pool.QueryRow(ctx, query, lessonID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count progress by lesson: %w", err)
	}
	return count, nil
}

// DeleteByLessonIDs removes progress for the given lessons
func (r *PostgresProgressRepository) DeleteByLessonIDs(ctx context.Context, lessonIDs []int64) error {
	if len(lessonIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE lesson_id = ANY($1)`, r.tables.UserProgress)

	if _, err := r.pool.Exec(ctx, query, lessonIDs); err != nil {
		return fmt.Errorf("delete progress by lessons: %w", err)
	}
	return nil
}

// CountCompletedByUser counts the user's completed rows
func (r *PostgresProgressRepository) CountCompletedByUser(ctx context.Context, userID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = $1 AND is_completed`, r.tables.UserProgress)

	var count int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count completed progress: %w", err)
	}
	return count, nil
}

// LastCompletionByUser returns the user's most recent completed_at
func (r *PostgresProgressRepository) LastCompletionByUser(ctx context.Context, userID string) (*time.Time, error) {
	query := fmt.Sprintf(`
		SELECT MAX(completed_at) FROM %s WHERE user_id = $1 AND is_completed
	`, r.tables.UserProgress)

	var last *time.Time
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&last); err != nil {
		return nil, fmt.Errorf("last completion: %w", err)
	}
	return last, nil
}
