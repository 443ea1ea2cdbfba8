package upload

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"cobalt/internal/config"
	"cobalt/internal/domain"
	models "cobalt/internal/domain/models/upload"
	uploadRepo "cobalt/internal/domain/repositories/upload"
	uploadSvc "cobalt/internal/domain/services/upload"
)

// additionalFileService manages supplementary project documents. These
// bypass the ingestion pipeline entirely: no extraction, no classification,
// no session; content is stored as uploaded.
type additionalFileService struct {
	projects     uploadRepo.ProjectRepository
	files        uploadRepo.AdditionalFileRepository
	maxFileBytes int64
	logger       *slog.Logger
}

// NewAdditionalFileService creates a new additional file service. A
// maxFileBytes of zero disables the size check.
func NewAdditionalFileService(
	projects uploadRepo.ProjectRepository,
	files uploadRepo.AdditionalFileRepository,
	maxFileBytes int64,
	logger *slog.Logger,
) uploadSvc.AdditionalFileService {
	return &additionalFileService{
		projects:     projects,
		files:        files,
		maxFileBytes: maxFileBytes,
		logger:       logger,
	}
}

// AddFile stores a supplementary file under an existing project.
func (s *additionalFileService) AddFile(ctx context.Context, req *uploadSvc.AddFileRequest) (*models.AdditionalFile, error) {
	if err := s.validateAddFile(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if s.maxFileBytes > 0 && int64(len(req.Content)) > s.maxFileBytes {
		return nil, &domain.PayloadTooLargeError{LimitBytes: s.maxFileBytes}
	}

	// Verify the project exists first for a better error message
	if _, err := s.projects.GetByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	now := time.Now()
	file := &models.AdditionalFile{
		ProjectID:   req.ProjectID,
		Filename:    req.Filename,
		FileSize:    int64(len(req.Content)),
		Description: req.Description,
		Content:     req.Content,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.files.Create(ctx, file); err != nil {
		return nil, err
	}

	s.logger.Info("additional file added",
		"project_id", req.ProjectID,
		"file_id", file.ID,
		"filename", file.Filename,
		"size", file.FileSize,
	)

	return file, nil
}

// GetFile retrieves one additional file, content included.
func (s *additionalFileService) GetFile(ctx context.Context, projectID, fileID int64) (*models.AdditionalFile, error) {
	return s.files.GetByID(ctx, projectID, fileID)
}

// ListFiles retrieves a project's additional files without content.
func (s *additionalFileService) ListFiles(ctx context.Context, projectID int64) ([]models.AdditionalFile, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.files.ListByProject(ctx, projectID)
}

// UpdateDescription replaces an additional file's description and returns
// the updated record.
func (s *additionalFileService) UpdateDescription(ctx context.Context, projectID, fileID int64, description *string) (*models.AdditionalFile, error) {
	if err := s.files.UpdateDescription(ctx, projectID, fileID, description); err != nil {
		return nil, err
	}
	return s.files.GetByID(ctx, projectID, fileID)
}

// DeleteFile removes an additional file.
func (s *additionalFileService) DeleteFile(ctx context.Context, projectID, fileID int64) error {
	if err := s.files.Delete(ctx, projectID, fileID); err != nil {
		return err
	}

	s.logger.Info("additional file deleted",
		"project_id", projectID,
		"file_id", fileID,
	)
	return nil
}

func (s *additionalFileService) validateAddFile(req *uploadSvc.AddFileRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
		validation.Field(&req.Filename,
			validation.Required,
			validation.Length(1, config.MaxFilePathLength),
		),
		validation.Field(&req.Content, validation.Required),
	)
}
