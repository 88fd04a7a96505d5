package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"eduweb/internal/domain"
	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
)

// PostgresModuleRepository implements the ModuleRepository interface
type PostgresModuleRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewModuleRepository creates a new module repository
func NewModuleRepository(config *RepositoryConfig) repos.ModuleRepository {
	return &PostgresModuleRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresModuleRepository) orderColumn(hint string) string {
	switch hint {
	case "title":
		return "m.title"
	case "created_at":
		return "m.created_at"
	default:
		return `m."order"`
	}
}

func (r *PostgresModuleRepository) selectModule() string {
	return fmt.Sprintf(`
		SELECT m.id, m.course_id, m.title, m.description, m.module_images,
		       m."order", m.is_locked, m.created_at,
		       c.id, c.title, c.slug
		FROM %s m
		LEFT JOIN %s c ON c.id = m.course_id
	`, r.tables.Modules, r.tables.Courses)
}

func scanModule(row interface{ Scan(...interface{}) error }) (*models.Module, error) {
	var module models.Module
	var courseID *int64
	var courseTitle, courseSlug *string

	err := row.Scan(
		&module.ID,
		&module.CourseID,
		&module.Title,
		&module.Description,
		&module.ModuleImages,
		&module.Order,
		&module.IsLocked,
		&module.CreatedAt,
		&courseID,
		&courseTitle,
		&courseSlug,
	)
	if err != nil {
		return nil, err
	}

	if courseID != nil && courseTitle != nil && courseSlug != nil {
		module.Course = &models.CourseRef{ID: *courseID, Title: *courseTitle, Slug: *courseSlug}
	}
	return &module, nil
}

// Create creates a new module
func (r *PostgresModuleRepository) Create(ctx context.Context, module *models.Module) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (course_id, title, description, module_images, "order", is_locked)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, r.tables.Modules)

	err := r.pool.QueryRow(ctx, query,
		module.CourseID,
		module.Title,
		module.Description,
		module.ModuleImages,
		module.Order,
		module.IsLocked,
	).Scan(&module.ID, &module.CreatedAt)

	if err != nil {
		return fmt.Errorf("create module: %w", err)
	}

	return nil
}

// GetByID retrieves a module by ID, with its course summary joined in
func (r *PostgresModuleRepository) GetByID(ctx context.Context, id int64) (*models.Module, error) {
	query := r.selectModule() + ` WHERE m.id = $1`

	module, err := scanModule(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("module %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get module: %w", err)
	}

	return module, nil
}

// List returns a page of modules plus the unpaginated total
func (r *PostgresModuleRepository) List(ctx context.Context, opts repos.ListOptions, filter repos.ModuleFilter) ([]models.Module, int, error) {
	opts.ApplyDefaults()

	var conds []string
	var args []interface{}

	if filter.CourseID != nil {
		args = append(args, *filter.CourseID)
		conds = append(conds, fmt.Sprintf("m.course_id = $%d", len(args)))
	}
	if filter.IsLocked != nil {
		args = append(args, *filter.IsLocked)
		conds = append(conds, fmt.Sprintf("m.is_locked = $%d", len(args)))
	}
	where := whereClause(conds)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s m %s`, r.tables.Modules, where)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count modules: %w", err)
	}

	query := fmt.Sprintf(`%s %s ORDER BY %s %s, m.id ASC LIMIT $%d OFFSET $%d`,
		r.selectModule(), where, r.orderColumn(opts.OrderBy), sortDirection(opts.Ascending), len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	var modules []models.Module
	for rows.Next() {
		module, err := scanModule(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan module: %w", err)
		}
		modules = append(modules, *module)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate modules: %w", err)
	}

	return modules, total, nil
}

// Update persists all mutable fields of the module
func (r *PostgresModuleRepository) Update(ctx context.Context, module *models.Module) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET course_id = $1, title = $2, description = $3, module_images = $4, "order" = $5, is_locked = $6
		WHERE id = $7
	`, r.tables.Modules)

	result, err := r.pool.Exec(ctx, query,
		module.CourseID,
		module.Title,
		module.Description,
		module.ModuleImages,
		module.Order,
		module.IsLocked,
		module.ID,
	)

	if err != nil {
		return fmt.Errorf("update module: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("module %d: %w", module.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes the module row only
func (r *PostgresModuleRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Modules)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete module: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("module %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Exists reports whether a module row with the given id exists
func (r *PostgresModuleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, r.tables.Modules)

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check module exists: %w", err)
	}
	return exists, nil
}

// CountByCourse counts modules belonging to the course
func (r *PostgresModuleRepository) CountByCourse(ctx context.Context, courseID int64) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE course_id = $1`, r.tables.Modules)

	var count int
	if err := r.pool.QueryRow(ctx, query, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count modules by course: %w", err)
	}
	return count, nil
}

// IDsByCourse returns the ids of the course's modules
func (r *PostgresModuleRepository) IDsByCourse(ctx context.Context, courseID int64) ([]int64, error) {
	query := fmt.Sprintf(`SELECT id FROM %s WHERE course_id = $1 ORDER BY id ASC`, r.tables.Modules)

	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("list module ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan module id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate module ids: %w", err)
	}

	return ids, nil
}
