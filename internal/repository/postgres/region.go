package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"eduweb/internal/domain"
	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
)

// PostgresRegionRepository implements the RegionRepository interface
type PostgresRegionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewRegionRepository creates a new region repository
func NewRegionRepository(config *RepositoryConfig) repos.RegionRepository {
	return &PostgresRegionRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresRegionRepository) orderColumn(hint string) string {
	switch hint {
	case "created_at":
		return "created_at"
	default:
		return "name"
	}
}

// Create creates a new region
func (r *PostgresRegionRepository) Create(ctx context.Context, region *models.Region) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, slug, description, included_category_ids, excluded_course_ids,
		                available_languages, preferred_ui_language, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, r.tables.Regions)

	err := r.pool.QueryRow(ctx, query,
		region.Name,
		region.Slug,
		region.Description,
		region.IncludedCategoryIDs,
		region.ExcludedCourseIDs,
		region.AvailableLanguages,
		region.PreferredUILanguage,
		region.IsActive,
	).Scan(&region.ID, &region.CreatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("region '%s': %w", region.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create region: %w", err)
	}

	return nil
}

// GetByID retrieves a region by ID
func (r *PostgresRegionRepository) GetByID(ctx context.Context, id int64) (*models.Region, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug, description, included_category_ids, excluded_course_ids,
		       available_languages, preferred_ui_language, is_active, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Regions)

	var region models.Region
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&region.ID,
		&region.Name,
		&region.Slug,
		&region.Description,
		&region.IncludedCategoryIDs,
		&region.ExcludedCourseIDs,
		&region.AvailableLanguages,
		&region.PreferredUILanguage,
		&region.IsActive,
		&region.CreatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("region %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get region: %w", err)
	}

	return &region, nil
}

// List returns a page of regions plus the unpaginated total
func (r *PostgresRegionRepository) List(ctx context.Context, opts repos.ListOptions, filter repos.RegionFilter) ([]models.Region, int, error) {
	opts.ApplyDefaults()

	var conds []string
	var args []interface{}

	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conds = append(conds, fmt.Sprintf("is_active = $%d", len(args)))
	}
	where := whereClause(conds)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, r.tables.Regions, where)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count regions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, slug, description, included_category_ids, excluded_course_ids,
		       available_languages, preferred_ui_language, is_active, created_at
		FROM %s
		%s
		ORDER BY %s %s, id ASC
		LIMIT $%d OFFSET $%d
	`, r.tables.Regions, where, r.orderColumn(opts.OrderBy), sortDirection(opts.Ascending), len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list regions: %w", err)
	}
	defer rows.Close()

	var regions []models.Region
	for rows.Next() {
		var region models.Region
		err := rows.Scan(
			&region.ID,
			&region.Name,
			&region.Slug,
			&region.Description,
			&region.IncludedCategoryIDs,
			&region.ExcludedCourseIDs,
			&region.AvailableLanguages,
			&region.PreferredUILanguage,
			&region.IsActive,
			&region.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan region: %w", err)
		}
		regions = append(regions, region)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate regions: %w", err)
	}

	return regions, total, nil
}

// Update persists all mutable fields of the region
func (r *PostgresRegionRepository) Update(ctx context.Context, region *models.Region) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, slug = $2, description = $3, included_category_ids = $4,
		    excluded_course_ids = $5, available_languages = $6, preferred_ui_language = $7, is_active = $8
		WHERE id = $9
	`, r.tables.Regions)

	result, err := r.pool.Exec(ctx, query,
		region.Name,
		region.Slug,
		region.Description,
		region.IncludedCategoryIDs,
		region.ExcludedCourseIDs,
		region.AvailableLanguages,
		region.PreferredUILanguage,
		region.IsActive,
		region.ID,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("region '%s': %w", region.Name, domain.ErrConflict)
		}
		return fmt.Errorf("update region: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("region %d: %w", region.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes the region row
func (r *PostgresRegionRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Regions)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete region: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("region %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// SlugTaken reports whether another region owns slug
func (r *PostgresRegionRepository) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE slug = $1 AND id <> $2)
	`, r.tables.Regions)

	var taken bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check region slug: %w", err)
	}
	return taken, nil
}

// NameTaken reports whether another region owns name
func (r *PostgresRegionRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE name = $1 AND id <> $2)
	`, r.tables.Regions)

	var taken bool
	if err := r.pool.QueryRow(ctx, query, name, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check region name: %w", err)
	}
	return taken, nil
}
