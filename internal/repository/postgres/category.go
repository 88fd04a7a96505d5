package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"eduweb/internal/domain"
	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
)

// PostgresCategoryRepository implements the CategoryRepository interface
type PostgresCategoryRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(config *RepositoryConfig) repos.CategoryRepository {
	return &PostgresCategoryRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// orderColumn whitelists caller-supplied sort hints. Anything unrecognized
// falls back to the display order.
func (r *PostgresCategoryRepository) orderColumn(hint string) string {
	switch hint {
	case "name":
		return "name"
	case "created_at":
		return "created_at"
	case "order", "":
		return `"order"`
	default:
		return `"order"`
	}
}

// Create creates a new category
func (r *PostgresCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, slug, description, color, icon, "order", is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, r.tables.Categories)

	err := r.pool.QueryRow(ctx, query,
		category.Name,
		category.Slug,
		category.Description,
		category.Color,
		category.Icon,
		category.Order,
		category.IsActive,
	).Scan(&category.ID, &category.CreatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("category '%s': %w", category.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by ID
func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug, description, color, icon, "order", is_active, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Categories)

	var category models.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.Color,
		&category.Icon,
		&category.Order,
		&category.IsActive,
		&category.CreatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	return &category, nil
}

// List returns a page of categories plus the unpaginated total
func (r *PostgresCategoryRepository) List(ctx context.Context, opts repos.ListOptions, filter repos.CategoryFilter) ([]models.Category, int, error) {
	opts.ApplyDefaults()

	var conds []string
	var args []interface{}

	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conds = append(conds, fmt.Sprintf("is_active = $%d", len(args)))
	}
	where := whereClause(conds)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, r.tables.Categories, where)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, slug, description, color, icon, "order", is_active, created_at
		FROM %s
		%s
		ORDER BY %s %s, id ASC
		LIMIT $%d OFFSET $%d
	`, r.tables.Categories, where, r.orderColumn(opts.OrderBy), sortDirection(opts.Ascending), len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.Description,
			&category.Color,
			&category.Icon,
			&category.Order,
			&category.IsActive,
			&category.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, total, nil
}

// Update persists all mutable fields of the category
func (r *PostgresCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, slug = $2, description = $3, color = $4, icon = $5, "order" = $6, is_active = $7
		WHERE id = $8
	`, r.tables.Categories)

	result, err := r.pool.Exec(ctx, query,
		category.Name,
		category.Slug,
		category.Description,
		category.Color,
		category.Icon,
		category.Order,
		category.IsActive,
		category.ID,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("category '%s': %w", category.Name, domain.ErrConflict)
		}
		return fmt.Errorf("update category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("category %d: %w", category.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes the category row only
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Categories)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// SlugTaken reports whether another category owns slug
func (r *PostgresCategoryRepository) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE slug = $1 AND id <> $2)
	`, r.tables.Categories)

	var taken bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check category slug: %w", err)
	}
	return taken, nil
}

// NameTaken reports whether another category owns name
func (r *PostgresCategoryRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE name = $1 AND id <> $2)
	`, r.tables.Categories)

	var taken bool
	if err := r.pool.QueryRow(ctx, query, name, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return taken, nil
}

// CountExisting returns how many of the given ids exist
func (r *PostgresCategoryRepository) CountExisting(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s WHERE id = ANY($1)
	`, r.tables.Categories)

	var count int
	if err := r.pool.QueryRow(ctx, query, ids).Scan(&count); err != nil {
		return 0, fmt.Errorf("count categories by id: %w", err)
	}
	return count, nil
}
