package upload

import (
	"context"

	models "cobalt/internal/domain/models/upload"
)

// UploadProjectRequest carries one upload attempt's input.
type UploadProjectRequest struct {
	Name        string
	Description *string
	Filename    string
	Payload     []byte
}

// UploadResult is the caller-facing outcome of an upload attempt.
type UploadResult struct {
	Success      bool                `json:"success"`
	SessionID    string              `json:"session_id"`
	ProjectID    *int64              `json:"project_id"`
	UploadMethod models.UploadMethod `json:"upload_method"`
	Message      string              `json:"message"`
	Warnings     []string            `json:"warnings,omitempty"`
}

// UploadService owns the upload session lifecycle: it extracts and
// classifies the payload, attempts parser ingestion, falls back to direct
// ingestion on any parser failure, and finalizes session and project state.
type UploadService interface {
	// UploadProject runs one complete ingestion attempt. On fatal failure
	// the returned error carries the session token via *domain.IngestionError
	// and the session row holds a non-empty error list.
	UploadProject(ctx context.Context, req *UploadProjectRequest) (*UploadResult, error)

	// GetSession retrieves an upload session by its external token
	GetSession(ctx context.Context, sessionID string) (*models.UploadSession, error)
}

// AddFileRequest carries one additional-file upload.
type AddFileRequest struct {
	ProjectID   int64
	Filename    string
	Description *string
	Content     []byte
}

// AdditionalFileService manages supplementary documents attached to a
// project outside the ingestion pipeline.
type AdditionalFileService interface {
	// AddFile stores a supplementary file under an existing project
	AddFile(ctx context.Context, req *AddFileRequest) (*models.AdditionalFile, error)

	// GetFile retrieves one additional file, content included
	GetFile(ctx context.Context, projectID, fileID int64) (*models.AdditionalFile, error)

	// ListFiles retrieves a project's additional files without content
	ListFiles(ctx context.Context, projectID int64) ([]models.AdditionalFile, error)

	// UpdateDescription replaces an additional file's description; the
	// content itself is immutable (delete and re-upload instead)
	UpdateDescription(ctx context.Context, projectID, fileID int64, description *string) (*models.AdditionalFile, error)

	// DeleteFile removes an additional file
	DeleteFile(ctx context.Context, projectID, fileID int64) error
}

// ProjectService exposes read and delete operations over ingested projects.
type ProjectService interface {
	// GetProject retrieves a project; includeFiles controls whether the
	// file records are loaded alongside it
	GetProject(ctx context.Context, id int64, includeFiles bool) (*models.Project, []models.ProjectFile, error)

	// ListProjects retrieves project summaries with pagination and
	// optional upload-method filtering
	ListProjects(ctx context.Context, opts models.ProjectListOptions) ([]models.ProjectSummary, error)

	// DeleteProject removes a project and its files
	DeleteProject(ctx context.Context, id int64) error
}
