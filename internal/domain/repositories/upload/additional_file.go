package upload

import (
	"context"

	models "cobalt/internal/domain/models/upload"
)

// AdditionalFileRepository defines data access for AdditionalFile entities.
// Lookups are always scoped to a project so a file id from one project can
// never address another project's file.
type AdditionalFileRepository interface {
	// Create inserts a file row and populates ID, UUID and timestamps
	Create(ctx context.Context, file *models.AdditionalFile) error

	// GetByID retrieves a file by id within a project, content included
	GetByID(ctx context.Context, projectID, fileID int64) (*models.AdditionalFile, error)

	// ListByProject retrieves a project's additional files without content,
	// in insertion order
	ListByProject(ctx context.Context, projectID int64) ([]models.AdditionalFile, error)

	// UpdateDescription replaces the file's description
	UpdateDescription(ctx context.Context, projectID, fileID int64, description *string) error

	// Delete removes a file
	Delete(ctx context.Context, projectID, fileID int64) error
}
