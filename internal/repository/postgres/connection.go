package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds the shared dependencies of repository
// implementations.
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds environment-prefixed table names (dev_, test_, prod_).
type TableNames struct {
	Users           string
	Churches        string
	Sermons         string
	BibleStudies    string
	PrayerRequests  string
	FlaggedContents string
}

// NewTableNames creates table names with the given prefix.
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Users:           fmt.Sprintf("%susers", prefix),
		Churches:        fmt.Sprintf("%schurches", prefix),
		Sermons:         fmt.Sprintf("%ssermons", prefix),
		BibleStudies:    fmt.Sprintf("%sbible_studies", prefix),
		PrayerRequests:  fmt.Sprintf("%sprayer_requests", prefix),
		FlaggedContents: fmt.Sprintf("%sflagged_contents", prefix),
	}
}

// CreateConnectionPool creates a pgx connection pool.
//
// Table name interpolation via fmt.Sprintf is safe with prepared
// statements because the SQL string is fixed before it reaches the
// database; each environment prefix yields its own statement set.
//
// Port 6543 is a transaction pooler (PgBouncer) which does not support
// prepared statements, so cache_describe mode is auto-selected there. An
// explicit default_query_exec_mode in the connection string wins.
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
