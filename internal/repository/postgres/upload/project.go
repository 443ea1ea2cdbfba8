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

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *postgres.RepositoryConfig) uploadRepo.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a project row and populates ID, UUID and timestamps.
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, description, upload_method, upload_status,
			original_filename, file_size, parser_response, parser_version,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, uuid, created_at, updated_at
	`, r.tables.Projects)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		project.Name,
		project.Description,
		project.UploadMethod,
		project.UploadStatus,
		project.OriginalFilename,
		project.FileSize,
		project.ParserResponse,
		project.ParserVersion,
		project.CreatedAt,
		project.UpdatedAt,
	).Scan(&project.ID, &project.UUID, &project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project by numeric id.
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, uuid, name, description, upload_method, upload_status,
			original_filename, file_size, parser_response, parser_version,
			created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Projects)

	var project models.Project
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.UUID,
		&project.Name,
		&project.Description,
		&project.UploadMethod,
		&project.UploadStatus,
		&project.OriginalFilename,
		&project.FileSize,
		&project.ParserResponse,
		&project.ParserVersion,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &project, nil
}

// List retrieves project summaries with aggregate file counts, newest first.
func (r *PostgresProjectRepository) List(ctx context.Context, opts models.ProjectListOptions) ([]models.ProjectSummary, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.uuid, p.name, p.description, p.upload_method,
			p.upload_status, COUNT(f.id), COALESCE(p.file_size, 0),
			p.created_at
		FROM %s p
		LEFT JOIN %s f ON f.project_id = p.id
		WHERE ($1::text IS NULL OR p.upload_method = $1)
		GROUP BY p.id
		ORDER BY p.created_at DESC
		OFFSET $2 LIMIT $3
	`, r.tables.Projects, r.tables.ProjectFiles)

	var method *string
	if opts.UploadMethod != nil {
		m := string(*opts.UploadMethod)
		method = &m
	}

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, method, opts.Skip, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	summaries := []models.ProjectSummary{}
	for rows.Next() {
		var s models.ProjectSummary
		err := rows.Scan(
			&s.ID,
			&s.UUID,
			&s.Name,
			&s.Description,
			&s.UploadMethod,
			&s.UploadStatus,
			&s.FileCount,
			&s.TotalSize,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan project summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return summaries, nil
}

// UpdateStatus sets the project's upload status.
func (r *PostgresProjectRepository) UpdateStatus(ctx context.Context, id int64, status models.UploadStatus) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET upload_status = $1, updated_at = NOW()
		WHERE id = $2
	`, r.tables.Projects)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update project status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a project; file rows go with it via ON DELETE CASCADE.
func (r *PostgresProjectRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Projects)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
