package upload

import (
	"context"
	"log/slog"

	models "cobalt/internal/domain/models/upload"
	uploadRepo "cobalt/internal/domain/repositories/upload"
	uploadSvc "cobalt/internal/domain/services/upload"
)

// projectService implements read and delete operations over ingested
// projects.
type projectService struct {
	projects uploadRepo.ProjectRepository
	files    uploadRepo.ProjectFileRepository
	logger   *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projects uploadRepo.ProjectRepository,
	files uploadRepo.ProjectFileRepository,
	logger *slog.Logger,
) uploadSvc.ProjectService {
	return &projectService{
		projects: projects,
		files:    files,
		logger:   logger,
	}
}

// GetProject retrieves a project, optionally with its file records.
func (s *projectService) GetProject(ctx context.Context, id int64, includeFiles bool) (*models.Project, []models.ProjectFile, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if !includeFiles {
		return project, nil, nil
	}

	files, err := s.files.ListByProject(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return project, files, nil
}

// ListProjects retrieves project summaries.
func (s *projectService) ListProjects(ctx context.Context, opts models.ProjectListOptions) ([]models.ProjectSummary, error) {
	opts.ApplyDefaults()
	return s.projects.List(ctx, opts)
}

// DeleteProject removes a project and its files.
func (s *projectService) DeleteProject(ctx context.Context, id int64) error {
	// Verify the project exists first for a better error message
	if _, err := s.projects.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("project deleted", "id", id)
	return nil
}
