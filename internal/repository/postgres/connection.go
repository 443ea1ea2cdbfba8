package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"cobalt/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Projects        string
	ProjectFiles    string
	AdditionalFiles string
	UploadSessions  string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Projects:        fmt.Sprintf("%sprojects", prefix),
		ProjectFiles:    fmt.Sprintf("%sproject_files", prefix),
		AdditionalFiles: fmt.Sprintf("%sadditional_files", prefix),
		UploadSessions:  fmt.Sprintf("%supload_sessions", prefix),
	}
}

// CreateConnectionPool creates a new pgx connection pool and verifies
// connectivity.
//
// Dynamic table prefixes (dev_, test_, prod_) are interpolated into SQL
// before statements reach the server, so each environment gets its own
// prepared statements and prefixing stays injection-safe.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction from the context when one is present,
// otherwise the pool. Repositories call this so their queries automatically
// participate in a surrounding transaction.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
