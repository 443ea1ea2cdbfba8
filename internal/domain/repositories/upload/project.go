package upload

import (
	"context"

	models "cobalt/internal/domain/models/upload"
)

// ProjectRepository defines data access for Project entities.
type ProjectRepository interface {
	// Create inserts a project row and populates ID, UUID and timestamps
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project by numeric id
	GetByID(ctx context.Context, id int64) (*models.Project, error)

	// List retrieves project summaries with aggregate file counts,
	// newest first
	List(ctx context.Context, opts models.ProjectListOptions) ([]models.ProjectSummary, error)

	// UpdateStatus sets the project's upload status
	UpdateStatus(ctx context.Context, id int64, status models.UploadStatus) error

	// Delete removes a project and, via cascade, its files
	Delete(ctx context.Context, id int64) error
}

// ProjectFileRepository defines data access for ProjectFile entities.
// Files are created once and never updated.
type ProjectFileRepository interface {
	// Create inserts a file row and populates ID and created_at
	Create(ctx context.Context, file *models.ProjectFile) error

	// ListByProject retrieves all files belonging to a project in
	// insertion order
	ListByProject(ctx context.Context, projectID int64) ([]models.ProjectFile, error)
}
