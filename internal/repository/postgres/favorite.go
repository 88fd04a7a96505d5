package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"eduweb/internal/domain"
	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
)

// PostgresFavoriteRepository implements the FavoriteRepository interface
type PostgresFavoriteRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(config *RepositoryConfig) repos.FavoriteRepository {
	return &PostgresFavoriteRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// selectFavorite joins all three candidate target tables; the item_type
// predicate in each join condition makes at most one of them match. A
// favorite whose target is gone scans with all join columns NULL and comes
// back without item details.
func (r *PostgresFavoriteRepository) selectFavorite() string {
	return fmt.Sprintf(`
		SELECT f.id, f.user_id, f.item_type, f.item_id, f.created_at,
		       c.id, c.title, c.slug,
		       m.id, m.title, m.course_id,
		       l.id, l.title, l.module_id
		FROM %s f
		LEFT JOIN %s c ON f.item_type = 'course' AND c.id = f.item_id
		LEFT JOIN %s m ON f.item_type = 'module' AND m.id = f.item_id
		LEFT JOIN %s l ON f.item_type = 'lesson' AND l.id = f.item_id
	`, r.tables.Favorites, r.tables.Courses, r.tables.Modules, r.tables.Lessons)
}

func scanFavorite(row interface{ Scan(...interface{}) error }) (*models.Favorite, error) {
	var favorite models.Favorite
	var courseID, moduleID, moduleCourseID, lessonID, lessonModuleID *int64
	var courseTitle, courseSlug, moduleTitle, lessonTitle *string

	err := row.Scan(
		&favorite.ID,
		&favorite.UserID,
		&favorite.ItemType,
		&favorite.ItemID,
		&favorite.CreatedAt,
		&courseID, &courseTitle, &courseSlug,
		&moduleID, &moduleTitle, &moduleCourseID,
		&lessonID, &lessonTitle, &lessonModuleID,
	)
	if err != nil {
		return nil, err
	}

	switch {
	case courseID != nil && courseTitle != nil && courseSlug != nil:
		favorite.ItemDetails = &models.FavoriteItemDetails{ID: *courseID, Title: *courseTitle, Slug: *courseSlug}
	case moduleID != nil && moduleTitle != nil && moduleCourseID != nil:
		favorite.ItemDetails = &models.FavoriteItemDetails{ID: *moduleID, Title: *moduleTitle, CourseID: *moduleCourseID}
	case lessonID != nil && lessonTitle != nil && lessonModuleID != nil:
		favorite.ItemDetails = &models.FavoriteItemDetails{ID: *lessonID, Title: *lessonTitle, ModuleID: *lessonModuleID}
	}
	return &favorite, nil
}

// Create creates a new favorite
func (r *PostgresFavoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, item_type, item_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, r.tables.Favorites)

	err := r.pool.QueryRow(ctx, query,
		favorite.UserID,
		string(favorite.ItemType),
		favorite.ItemID,
	).Scan(&favorite.ID, &favorite.CreatedAt)

	if err != nil {
		return fmt.Errorf("create favorite: %w", err)
	}

	return nil
}

// GetByID retrieves a favorite by ID, with its target summary joined in
func (r *PostgresFavoriteRepository) GetByID(ctx context.Context, id int64) (*models.Favorite, error) {
	query := r.selectFavorite() + ` WHERE f.id = $1`

	favorite, err := scanFavorite(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("favorite %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get favorite: %w", err)
	}

	return favorite, nil
}

// List returns a page of favorites plus the unpaginated total
func (r *PostgresFavoriteRepository) List(ctx context.Context, opts repos.ListOptions, filter repos.FavoriteFilter) ([]models.Favorite, int, error) {
	opts.ApplyDefaults()

	var conds []string
	var args []interface{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conds = append(conds, fmt.Sprintf("f.user_id = $%d", len(args)))
	}
	if filter.ItemType != nil {
		args = append(args, string(*filter.ItemType))
		conds = append(conds, fmt.Sprintf("f.item_type = $%d", len(args)))
	}
	if filter.ItemID != nil {
		args = append(args, *filter.ItemID)
		conds = append(conds, fmt.Sprintf("f.item_id = $%d", len(args)))
	}
	where := whereClause(conds)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s f %s`, r.tables.Favorites, where)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count favorites: %w", err)
	}

	// newest first
	query := fmt.Sprintf(`%s %s ORDER BY f.created_at %s, f.id DESC LIMIT $%d OFFSET $%d`,
		r.selectFavorite(), where, sortDirection(opts.Ascending), len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []models.Favorite
	for rows.Next() {
		favorite, err := scanFavorite(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, *favorite)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate favorites: %w", err)
	}

	return favorites, total, nil
}

// Update persists the favorite's target
func (r *PostgresFavoriteRepository) Update(ctx context.Context, favorite *models.Favorite) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET item_type = $1, item_id = $2
		WHERE id = $3
	`, r.tables.Favorites)

	result, err := r.pool.Exec(ctx, query,
		string(favorite.ItemType),
		favorite.ItemID,
		favorite.ID,
	)

	if err != nil {
		return fmt.Errorf("update favorite: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("favorite %d: %w", favorite.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes the favorite row
func (r *PostgresFavoriteRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Favorites)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("favorite %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// FindByUserItem returns the favorite for (user, item)
func (r *PostgresFavoriteRepository) FindByUserItem(ctx context.Context, userID string, item models.FavoriteItem) (*models.Favorite, error) {
	query := r.selectFavorite() + ` WHERE f.user_id = $1 AND f.item_type = $2 AND f.item_id = $3 ORDER BY f.id ASC LIMIT 1`

	favorite, err := scanFavorite(r.pool.QueryRow(ctx, query, userID, string(item.Type), item.ID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("favorite for user %s %s %d: %w", userID, item.Type, item.ID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find favorite: %w", err)
	}

	return favorite, nil
}

// DeleteByUserItem removes the favorite for (user, item)
func (r *PostgresFavoriteRepository) DeleteByUserItem(ctx context.Context, userID string, item models.FavoriteItem) (bool, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE user_id = $1 AND item_type = $2 AND item_id = $3
	`, r.tables.Favorites)

	result, err := r.pool.Exec(ctx, query, userID, string(item.Type), item.ID)
	if err != nil {
		return false, fmt.Errorf("delete favorite by item: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// CountByItem counts favorites pointing at the item
func (r *PostgresFavoriteRepository) CountByItem(ctx context.Context, item models.FavoriteItem) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s WHERE item_type = $1 AND item_id = $2
	`, r.tables.Favorites)

	var count int
	if err := r.pool.QueryRow(ctx, query, string(item.Type), item.ID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count favorites by item: %w", err)
	}
	return count, nil
}

// DeleteByItem removes every favorite of the given type pointing at the ids
func (r *PostgresFavoriteRepository) DeleteByItem(ctx context.Context, itemType models.ItemType, itemIDs []int64) error {
	if len(itemIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		DELETE FROM %s WHERE item_type = $1 AND item_id = ANY($2)
	`, r.tables.Favorites)

	if _, err := r.pool.Exec(ctx, query, string(itemType), itemIDs); err != nil {
		return fmt.Errorf("delete favorites by item: %w", err)
	}
	return nil
}
