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

// PostgresProjectFileRepository implements the ProjectFileRepository
// interface. File rows are insert-only.
type PostgresProjectFileRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewProjectFileRepository creates a new project file repository
func NewProjectFileRepository(config *postgres.RepositoryConfig) uploadRepo.ProjectFileRepository {
	return &PostgresProjectFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a file row and populates ID and created_at.
func (r *PostgresProjectFileRepository) Create(ctx context.Context, file *models.ProjectFile) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, filename, file_path, relative_path,
			file_extension, file_size, content, content_hash, parsed_data,
			language, loc, is_binary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`, r.tables.ProjectFiles)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		file.ProjectID,
		file.Filename,
		file.FilePath,
		file.RelativePath,
		file.FileExtension,
		file.FileSize,
		file.Content,
		file.ContentHash,
		file.ParsedData,
		file.Language,
		file.Loc,
		file.IsBinary,
		file.CreatedAt,
	).Scan(&file.ID, &file.CreatedAt)

	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("project %d: %w", file.ProjectID, domain.ErrNotFound)
		}
		return fmt.Errorf("create project file: %w", err)
	}

	return nil
}

// ListByProject retrieves all files of a project in insertion order.
func (r *PostgresProjectFileRepository) ListByProject(ctx context.Context, projectID int64) ([]models.ProjectFile, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, filename, file_path, relative_path,
			file_extension, file_size, content, content_hash, parsed_data,
			language, loc, is_binary, created_at
		FROM %s
		WHERE project_id = $1
		ORDER BY id
	`, r.tables.ProjectFiles)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project files: %w", err)
	}
	defer rows.Close()

	files := []models.ProjectFile{}
	for rows.Next() {
		var f models.ProjectFile
		err := rows.Scan(
			&f.ID,
			&f.ProjectID,
			&f.Filename,
			&f.FilePath,
			&f.RelativePath,
			&f.FileExtension,
			&f.FileSize,
			&f.Content,
			&f.ContentHash,
			&f.ParsedData,
			&f.Language,
			&f.Loc,
			&f.IsBinary,
			&f.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan project file: %w", err)
		}
		files = append(files, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project files: %w", err)
	}

	return files, nil
}
