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

// PostgresAdditionalFileRepository implements the AdditionalFileRepository
// interface. Content lives in a BYTEA column; list queries leave it out so
// a project with large attachments stays cheap to enumerate.
type PostgresAdditionalFileRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewAdditionalFileRepository creates a new additional file repository
func NewAdditionalFileRepository(config *postgres.RepositoryConfig) uploadRepo.AdditionalFileRepository {
	return &PostgresAdditionalFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a file row and populates ID, UUID and timestamps.
func (r *PostgresAdditionalFileRepository) Create(ctx context.Context, file *models.AdditionalFile) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, filename, file_size, description,
			content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, uuid, created_at, updated_at
	`, r.tables.AdditionalFiles)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		file.ProjectID,
		file.Filename,
		file.FileSize,
		file.Description,
		file.Content,
		file.CreatedAt,
		file.UpdatedAt,
	).Scan(&file.ID, &file.UUID, &file.CreatedAt, &file.UpdatedAt)

	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("project %d: %w", file.ProjectID, domain.ErrNotFound)
		}
		return fmt.Errorf("create additional file: %w", err)
	}

	return nil
}

// GetByID retrieves a file by id within a project, content included.
func (r *PostgresAdditionalFileRepository) GetByID(ctx context.Context, projectID, fileID int64) (*models.AdditionalFile, error) {
	query := fmt.Sprintf(`
		SELECT id, uuid, project_id, filename, file_size, description,
			content, created_at, updated_at
		FROM %s
		WHERE id = $1 AND project_id = $2
	`, r.tables.AdditionalFiles)

	var file models.AdditionalFile
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, fileID, projectID).Scan(
		&file.ID,
		&file.UUID,
		&file.ProjectID,
		&file.Filename,
		&file.FileSize,
		&file.Description,
		&file.Content,
		&file.CreatedAt,
		&file.UpdatedAt,
	)

	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("additional file %d in project %d: %w", fileID, projectID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get additional file: %w", err)
	}

	return &file, nil
}

// ListByProject retrieves a project's additional files without content.
func (r *PostgresAdditionalFileRepository) ListByProject(ctx context.Context, projectID int64) ([]models.AdditionalFile, error) {
	query := fmt.Sprintf(`
		SELECT id, uuid, project_id, filename, file_size, description,
			created_at, updated_at
		FROM %s
		WHERE project_id = $1
		ORDER BY id
	`, r.tables.AdditionalFiles)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list additional files: %w", err)
	}
	defer rows.Close()

	files := []models.AdditionalFile{}
	for rows.Next() {
		var f models.AdditionalFile
		err := rows.Scan(
			&f.ID,
			&f.UUID,
			&f.ProjectID,
			&f.Filename,
			&f.FileSize,
			&f.Description,
			&f.CreatedAt,
			&f.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan additional file: %w", err)
		}
		files = append(files, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate additional files: %w", err)
	}

	return files, nil
}

// UpdateDescription replaces the file's description.
func (r *PostgresAdditionalFileRepository) UpdateDescription(ctx context.Context, projectID, fileID int64, description *string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET description = $1, updated_at = NOW()
		WHERE id = $2 AND project_id = $3
	`, r.tables.AdditionalFiles)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, description, fileID, projectID)
	if err != nil {
		return fmt.Errorf("update additional file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("additional file %d in project %d: %w", fileID, projectID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a file.
func (r *PostgresAdditionalFileRepository) Delete(ctx context.Context, projectID, fileID int64) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE id = $1 AND project_id = $2
	`, r.tables.AdditionalFiles)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, fileID, projectID)
	if err != nil {
		return fmt.Errorf("delete additional file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("additional file %d in project %d: %w", fileID, projectID, domain.ErrNotFound)
	}

	return nil
}
