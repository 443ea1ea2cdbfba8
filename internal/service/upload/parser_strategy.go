package upload

import (
	"context"
	"fmt"
	"log/slog"

	"cobalt/internal/domain"
	models "cobalt/internal/domain/models/upload"
	"cobalt/internal/domain/repositories"
	uploadRepo "cobalt/internal/domain/repositories/upload"
	uploadSvc "cobalt/internal/domain/services/upload"
)

// parserStrategy delegates content analysis to the external parser service.
//
// The whole attempt is all-or-nothing: one remote round trip, then one
// transaction covering the project row, every file row and the final status
// updates. Any failure abandons the attempt and is returned to the
// orchestrator, which owns the fallback decision; this strategy never marks
// the session failed itself.
type parserStrategy struct {
	parser   uploadSvc.ParserClient
	enabled  bool
	projects uploadRepo.ProjectRepository
	files    uploadRepo.ProjectFileRepository
	sessions uploadRepo.UploadSessionRepository
	tx       repositories.TransactionManager
	logger   *slog.Logger
}

// NewParserStrategy creates the parser-delegated ingestion strategy.
func NewParserStrategy(
	parser uploadSvc.ParserClient,
	enabled bool,
	projects uploadRepo.ProjectRepository,
	files uploadRepo.ProjectFileRepository,
	sessions uploadRepo.UploadSessionRepository,
	tx repositories.TransactionManager,
	logger *slog.Logger,
) uploadSvc.IngestionStrategy {
	return &parserStrategy{
		parser:   parser,
		enabled:  enabled,
		projects: projects,
		files:    files,
		sessions: sessions,
		tx:       tx,
		logger:   logger,
	}
}

func (s *parserStrategy) Method() models.UploadMethod {
	return models.MethodParser
}

func (s *parserStrategy) Ingest(
	ctx context.Context,
	meta uploadSvc.ProjectMeta,
	files []uploadSvc.ClassifiedFile,
	session *models.UploadSession,
	acc *uploadSvc.SessionAccumulator,
) (*models.Project, error) {
	if !s.enabled {
		return nil, domain.ErrParserDisabled
	}

	req := &uploadSvc.ParseRequest{
		ProjectName: meta.Name,
		Files:       make([]uploadSvc.ParserFile, 0, len(files)),
	}
	for _, f := range files {
		req.Files = append(req.Files, uploadSvc.ParserFile{
			Filename: f.Filename,
			Path:     f.RelativePath,
			Content:  f.Content,
			Size:     f.Size,
		})
	}

	resp, err := s.parser.Parse(ctx, req)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		reason := "unknown error"
		if resp.Error != nil {
			reason = *resp.Error
		}
		return nil, &domain.ParserRejectedError{Reason: reason}
	}

	project := newProject(meta, models.MethodParser)
	project.ParserResponse = resp.Data
	if resp.Version != "" {
		project.ParserVersion = &resp.Version
	}

	err = s.tx.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.projects.Create(txCtx, project); err != nil {
			return fmt.Errorf("create project: %w", err)
		}

		for _, f := range files {
			row, err := buildFileRow(f, resp.FilePayload(f.RelativePath))
			if err != nil {
				return fmt.Errorf("build file row %s: %w", f.Filename, err)
			}
			row.ProjectID = project.ID
			if err := s.files.Create(txCtx, row); err != nil {
				return fmt.Errorf("create project file %s: %w", f.Filename, err)
			}
		}

		project.UploadStatus = models.UploadStatusCompleted
		if err := s.projects.UpdateStatus(txCtx, project.ID, models.UploadStatusCompleted); err != nil {
			return fmt.Errorf("finalize project status: %w", err)
		}

		acc.ProcessedFiles = len(files)
		acc.ApplyTo(session)
		session.Status = models.SessionStatusCompleted
		session.UploadMethod = models.MethodParser
		session.ProjectID = &project.ID
		if err := s.sessions.Update(txCtx, session); err != nil {
			return fmt.Errorf("finalize session: %w", err)
		}

		return nil
	})
	if err != nil {
		// Nothing from this attempt is visible after rollback; undo the
		// in-memory session mutations so the fallback starts clean.
		acc.ProcessedFiles = 0
		session.Status = models.SessionStatusActive
		session.ProjectID = nil
		return nil, err
	}

	s.logger.Info("parser ingestion complete",
		"project_id", project.ID,
		"session_id", session.SessionID,
		"files", len(files),
		"parser_version", resp.Version,
	)

	return project, nil
}
