package upload

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"cobalt/internal/domain"
	models "cobalt/internal/domain/models/upload"
	uploadRepo "cobalt/internal/domain/repositories/upload"
	"cobalt/internal/repository/postgres"
)

// PostgresUploadSessionRepository implements the UploadSessionRepository
// interface.
type PostgresUploadSessionRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewUploadSessionRepository creates a new upload session repository
func NewUploadSessionRepository(config *postgres.RepositoryConfig) uploadRepo.UploadSessionRepository {
	return &PostgresUploadSessionRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a session row and populates ID and timestamps.
func (r *PostgresUploadSessionRepository) Create(ctx context.Context, session *models.UploadSession) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (session_id, status, upload_method, total_files,
			processed_files, failed_files, errors, warnings, project_id,
			expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, r.tables.UploadSessions)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		session.SessionID,
		session.Status,
		session.UploadMethod,
		session.TotalFiles,
		session.ProcessedFiles,
		session.FailedFiles,
		session.Errors,
		session.Warnings,
		session.ProjectID,
		session.ExpiresAt,
		session.CreatedAt,
		session.UpdatedAt,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return fmt.Errorf("upload session %s: %w", session.SessionID, domain.ErrConflict)
		}
		return fmt.Errorf("create upload session: %w", err)
	}

	return nil
}

// GetBySessionID retrieves a session by its external token.
func (r *PostgresUploadSessionRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.UploadSession, error) {
	query := fmt.Sprintf(`
		SELECT id, session_id, status, upload_method, total_files,
			processed_files, failed_files, errors, warnings, project_id,
			expires_at, created_at, updated_at
		FROM %s
		WHERE session_id = $1
	`, r.tables.UploadSessions)

	var session models.UploadSession
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, sessionID).Scan(
		&session.ID,
		&session.SessionID,
		&session.Status,
		&session.UploadMethod,
		&session.TotalFiles,
		&session.ProcessedFiles,
		&session.FailedFiles,
		&session.Errors,
		&session.Warnings,
		&session.ProjectID,
		&session.ExpiresAt,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("upload session %s: %w", sessionID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get upload session: %w", err)
	}

	return &session, nil
}

// Update persists the session's mutable fields.
func (r *PostgresUploadSessionRepository) Update(ctx context.Context, session *models.UploadSession) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, upload_method = $2, total_files = $3,
			processed_files = $4, failed_files = $5, errors = $6,
			warnings = $7, project_id = $8, updated_at = NOW()
		WHERE id = $9
	`, r.tables.UploadSessions)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		session.Status,
		session.UploadMethod,
		session.TotalFiles,
		session.ProcessedFiles,
		session.FailedFiles,
		session.Errors,
		session.Warnings,
		session.ProjectID,
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("update upload session: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("upload session %s: %w", session.SessionID, domain.ErrNotFound)
	}

	return nil
}
