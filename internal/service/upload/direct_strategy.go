package upload

import (
	"context"
	"fmt"
	"log/slog"

	models "cobalt/internal/domain/models/upload"
	"cobalt/internal/domain/repositories"
	uploadRepo "cobalt/internal/domain/repositories/upload"
	uploadSvc "cobalt/internal/domain/services/upload"
)

// directStrategy ingests files locally, without the external parser.
//
// Unlike the parser strategy it tolerates per-file failures: a file that
// fails row building is skipped, counted and recorded on the accumulator,
// and processing continues. File rows are buffered and written in one
// transaction together with the final status updates, so the observable
// result is still atomic even though logical failure is per-file.
type directStrategy struct {
	projects uploadRepo.ProjectRepository
	files    uploadRepo.ProjectFileRepository
	sessions uploadRepo.UploadSessionRepository
	tx       repositories.TransactionManager
	logger   *slog.Logger
}

// NewDirectStrategy creates the local ingestion strategy.
func NewDirectStrategy(
	projects uploadRepo.ProjectRepository,
	files uploadRepo.ProjectFileRepository,
	sessions uploadRepo.UploadSessionRepository,
	tx repositories.TransactionManager,
	logger *slog.Logger,
) uploadSvc.IngestionStrategy {
	return &directStrategy{
		projects: projects,
		files:    files,
		sessions: sessions,
		tx:       tx,
		logger:   logger,
	}
}

func (s *directStrategy) Method() models.UploadMethod {
	return models.MethodDirect
}

func (s *directStrategy) Ingest(
	ctx context.Context,
	meta uploadSvc.ProjectMeta,
	files []uploadSvc.ClassifiedFile,
	session *models.UploadSession,
	acc *uploadSvc.SessionAccumulator,
) (*models.Project, error) {
	// Buffer rows first; per-file failures happen here, not mid-commit.
	rows := make([]*models.ProjectFile, 0, len(files))
	for _, f := range files {
		row, err := buildFileRow(f, nil)
		if err != nil {
			acc.FailedFiles++
			acc.AddError(fmt.Sprintf("Failed to process %s: %v", f.Filename, err))
			s.logger.Warn("failed to process file",
				"filename", f.Filename,
				"error", err,
			)
			continue
		}
		rows = append(rows, row)
	}
	acc.ProcessedFiles = len(rows)

	// Final status policy: a project with at least one ingested file is
	// usable; only exhaustive failure fails the attempt.
	projectStatus := models.UploadStatusCompleted
	sessionStatus := models.SessionStatusCompleted
	switch {
	case acc.FailedFiles == 0:
	case acc.ProcessedFiles > 0:
		acc.AddWarning(fmt.Sprintf("%d files failed to process", acc.FailedFiles))
	default:
		projectStatus = models.UploadStatusFailed
		sessionStatus = models.SessionStatusFailed
	}

	project := newProject(meta, models.MethodDirect)

	err := s.tx.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.projects.Create(txCtx, project); err != nil {
			return fmt.Errorf("create project: %w", err)
		}

		for _, row := range rows {
			row.ProjectID = project.ID
			if err := s.files.Create(txCtx, row); err != nil {
				return fmt.Errorf("create project file %s: %w", row.Filename, err)
			}
		}

		project.UploadStatus = projectStatus
		if err := s.projects.UpdateStatus(txCtx, project.ID, projectStatus); err != nil {
			return fmt.Errorf("finalize project status: %w", err)
		}

		acc.ApplyTo(session)
		session.Status = sessionStatus
		session.UploadMethod = models.MethodDirect
		session.ProjectID = &project.ID
		if err := s.sessions.Update(txCtx, session); err != nil {
			return fmt.Errorf("finalize session: %w", err)
		}

		return nil
	})
	if err != nil {
		// Nothing was committed, so the processed count must not survive
		// into the failure-boundary session update.
		acc.ProcessedFiles = 0
		session.Status = models.SessionStatusActive
		session.ProjectID = nil
		return nil, err
	}

	s.logger.Info("direct ingestion complete",
		"project_id", project.ID,
		"session_id", session.SessionID,
		"processed", acc.ProcessedFiles,
		"failed", acc.FailedFiles,
	)

	return project, nil
}
