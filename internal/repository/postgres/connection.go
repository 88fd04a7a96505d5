package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Categories   string
	Courses      string
	Modules      string
	Lessons      string
	UserProgress string
	Favorites    string
	Regions      string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Categories:   fmt.Sprintf("%scategories", prefix),
		Courses:      fmt.Sprintf("%scourses", prefix),
		Modules:      fmt.Sprintf("%smodules", prefix),
		Lessons:      fmt.Sprintf("%slessons", prefix),
		UserProgress: fmt.Sprintf("%suser_progress", prefix),
		Favorites:    fmt.Sprintf("%sfavorites", prefix),
		Regions:      fmt.Sprintf("%sregions", prefix),
	}
}

// CreateConnectionPool creates a new pgx connection pool with automatic PgBouncer compatibility.
//
// By default pgx prepares statements (QueryExecModeCacheStatement), which
// PgBouncer's transaction pooling mode (port 6543 on Supabase) does not
// support. When the pooler port is detected and the caller did not override
// the mode in the connection string, we switch to QueryExecModeCacheDescribe:
// it still uses the extended protocol (so array and JSONB parameters encode
// correctly) but caches statement descriptions instead of prepared
// statements, which PgBouncer tolerates.
//
// The fmt.Sprintf table-name interpolation used by the repositories is safe
// with prepared statements: the SQL string is assembled before it is sent, so
// each environment prefix produces its own distinct statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
