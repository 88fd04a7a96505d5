package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"eduweb/internal/domain"
	models "eduweb/internal/domain/models/reporting"
	repos "eduweb/internal/domain/repositories/reporting"
)

// MySQLRecordedSessionRepository implements RecordedSessionRepository against
// the reporting database. That schema is owned by the classroom system, so
// the table names here are fixed rather than prefixed.
type MySQLRecordedSessionRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewRecordedSessionRepository creates a new recorded session repository
func NewRecordedSessionRepository(db *sql.DB, logger *slog.Logger) repos.RecordedSessionRepository {
	return &MySQLRecordedSessionRepository{db: db, logger: logger}
}

const selectSession = `
	SELECT
		crs.id,
		crs.classroom_id,
		crs.title,
		crs.description,
		crs.video_embeded_code,
		crs.recorded_at,
		crs.created_at,
		crs.updated_at,
		c.title AS classroom_name,
		u.id AS educator_id,
		u.name AS educator_name,
		cat.title AS category_name
	FROM classroom_recorded_sessions crs
	LEFT JOIN classrooms c ON c.id = crs.classroom_id
	LEFT JOIN users u ON u.id = c.user_id
	LEFT JOIN categories cat ON cat.id = c.category_id
`

func scanSession(row interface{ Scan(...interface{}) error }) (*models.RecordedSession, error) {
	var session models.RecordedSession
	err := row.Scan(
		&session.ID,
		&session.ClassroomID,
		&session.Title,
		&session.Description,
		&session.VideoEmbedCode,
		&session.RecordedAt,
		&session.CreatedAt,
		&session.UpdatedAt,
		&session.ClassroomName,
		&session.EducatorID,
		&session.EducatorName,
		&session.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// List returns a page of sessions plus the unpaginated total
func (r *MySQLRecordedSessionRepository) List(ctx context.Context, limit, offset int, filter repos.SessionFilter) ([]models.RecordedSession, int, error) {
	var conds []string
	var args []interface{}

	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		conds = append(conds, "(crs.title LIKE ? OR crs.description LIKE ? OR u.name LIKE ?)")
		args = append(args, term, term, term)
	}
	if filter.EducatorID != nil {
		conds = append(conds, "u.id = ?")
		args = append(args, *filter.EducatorID)
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM classroom_recorded_sessions crs
		LEFT JOIN classrooms c ON c.id = crs.classroom_id
		LEFT JOIN users u ON u.id = c.user_id
		%s
	`, where)

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count recorded sessions: %w", err)
	}

	query := fmt.Sprintf(`%s %s ORDER BY crs.created_at DESC LIMIT ? OFFSET ?`, selectSession, where)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list recorded sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.RecordedSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan recorded session: %w", err)
		}
		sessions = append(sessions, *session)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate recorded sessions: %w", err)
	}

	return sessions, total, nil
}

// GetByID retrieves a session by ID
func (r *MySQLRecordedSessionRepository) GetByID(ctx context.Context, id int64) (*models.RecordedSession, error) {
	query := selectSession + ` WHERE crs.id = ?`

	session, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("recorded session %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get recorded session: %w", err)
	}

	return session, nil
}

// Update patches the editorial fields of a session
func (r *MySQLRecordedSessionRepository) Update(ctx context.Context, id int64, patch repos.SessionPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	var fields []string
	var args []interface{}

	if patch.Title != nil {
		fields = append(fields, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		fields = append(fields, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.VideoEmbedCode != nil {
		fields = append(fields, "video_embeded_code = ?")
		args = append(args, *patch.VideoEmbedCode)
	}
	if patch.RecordedAt != nil {
		fields = append(fields, "recorded_at = ?")
		args = append(args, *patch.RecordedAt)
	}
	fields = append(fields, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE classroom_recorded_sessions
		SET %s
		WHERE id = ?
	`, strings.Join(fields, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update recorded session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update recorded session: %w", err)
	}
	if affected == 0 {
		// MySQL also reports 0 when the row exists but nothing changed,
		// so confirm the miss before reporting not found.
		var exists int
		err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM classroom_recorded_sessions WHERE id = ?`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("recorded session %d: %w", id, domain.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("update recorded session: %w", err)
		}
	}

	return nil
}

// Delete removes a session row
func (r *MySQLRecordedSessionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM classroom_recorded_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recorded session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete recorded session: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("recorded session %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Ping verifies the reporting database connection
func (r *MySQLRecordedSessionRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
