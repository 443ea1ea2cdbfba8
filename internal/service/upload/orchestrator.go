package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"cobalt/internal/config"
	"cobalt/internal/domain"
	models "cobalt/internal/domain/models/upload"
	uploadRepo "cobalt/internal/domain/repositories/upload"
	uploadSvc "cobalt/internal/domain/services/upload"
	"cobalt/internal/metrics"
)

// uploadService orchestrates one ingestion attempt: session lifecycle,
// extraction, classification, parser attempt, direct fallback, finalization.
type uploadService struct {
	extractor  uploadSvc.ArchiveExtractor
	classifier uploadSvc.FileClassifier
	parser     uploadSvc.IngestionStrategy
	direct     uploadSvc.IngestionStrategy
	sessions   uploadRepo.UploadSessionRepository
	metrics    *metrics.UploadMetrics
	logger     *slog.Logger
}

// NewUploadService creates the upload orchestrator.
func NewUploadService(
	extractor uploadSvc.ArchiveExtractor,
	classifier uploadSvc.FileClassifier,
	parser uploadSvc.IngestionStrategy,
	direct uploadSvc.IngestionStrategy,
	sessions uploadRepo.UploadSessionRepository,
	m *metrics.UploadMetrics,
	logger *slog.Logger,
) uploadSvc.UploadService {
	return &uploadService{
		extractor:  extractor,
		classifier: classifier,
		parser:     parser,
		direct:     direct,
		sessions:   sessions,
		metrics:    m,
		logger:     logger,
	}
}

// UploadProject runs one complete ingestion attempt.
func (s *uploadService) UploadProject(ctx context.Context, req *uploadSvc.UploadProjectRequest) (*uploadSvc.UploadResult, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	start := time.Now()

	// The session row is created outside any strategy transaction so it
	// survives whatever happens to the attempt itself.
	session := &models.UploadSession{
		SessionID:    uuid.NewString(),
		Status:       models.SessionStatusActive,
		UploadMethod: models.MethodParser, // tentative until a strategy settles it
		ExpiresAt:    time.Now().Add(config.SessionTTL),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create upload session: %w", err)
	}

	s.logger.Info("upload session created",
		"session_id", session.SessionID,
		"filename", req.Filename,
	)

	acc := &uploadSvc.SessionAccumulator{}

	project, err := s.run(ctx, req, session, acc)
	if err != nil {
		// Single failure boundary: whatever stage raised, the session is
		// finalized as failed with a non-empty error list.
		acc.AddError(err.Error())
		acc.ApplyTo(session)
		session.Status = models.SessionStatusFailed
		session.UpdatedAt = time.Now()
		if updateErr := s.sessions.Update(ctx, session); updateErr != nil {
			s.logger.Error("failed to finalize failed session",
				"session_id", session.SessionID,
				"error", updateErr,
			)
		}
		s.metrics.ObserveUpload(string(session.UploadMethod), "failed", time.Since(start))
		s.logger.Error("upload failed",
			"session_id", session.SessionID,
			"error", err,
		)
		return nil, &domain.IngestionError{SessionID: session.SessionID, Err: err}
	}

	s.metrics.ObserveUpload(string(session.UploadMethod), string(session.Status), time.Since(start))
	s.metrics.AddFileOutcomes(session.ProcessedFiles, session.FailedFiles)

	result := &uploadSvc.UploadResult{
		Success:      session.Status == models.SessionStatusCompleted,
		SessionID:    session.SessionID,
		ProjectID:    &project.ID,
		UploadMethod: session.UploadMethod,
		Message: fmt.Sprintf("Project '%s' uploaded successfully using %s method",
			project.Name, session.UploadMethod),
	}
	if len(session.Warnings) > 0 {
		result.Warnings = session.Warnings
	}
	if !result.Success {
		result.Message = fmt.Sprintf("Project '%s' upload finished with no processable files", project.Name)
	}

	return result, nil
}

// run executes extraction, classification and the strategy chain. Fatal
// errors bubble up to the single failure boundary in UploadProject.
func (s *uploadService) run(
	ctx context.Context,
	req *uploadSvc.UploadProjectRequest,
	session *models.UploadSession,
	acc *uploadSvc.SessionAccumulator,
) (*models.Project, error) {
	raw, err := s.extractor.Extract(ctx, req.Filename, req.Payload)
	if err != nil {
		return nil, err
	}

	files, warnings := s.classifier.Classify(raw)
	for _, w := range warnings {
		acc.AddWarning(w)
	}
	acc.TotalFiles = len(files)

	s.logger.Info("files extracted",
		"session_id", session.SessionID,
		"total", len(raw),
		"filtered", len(files),
	)

	if len(files) == 0 {
		return nil, &domain.NoValidFilesError{}
	}

	// Record the file count before any strategy runs so session progress
	// is observable while ingestion is in flight.
	session.TotalFiles = len(files)
	session.UpdatedAt = time.Now()
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("record session file count: %w", err)
	}

	meta := uploadSvc.ProjectMeta{
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		OriginalFilename: req.Filename,
		TotalSize:        totalSize(files),
	}

	project, err := s.parser.Ingest(ctx, meta, files, session, acc)
	if err == nil {
		return project, nil
	}
	if !errors.Is(err, domain.ErrParserDisabled) {
		// Any parser failure falls back to direct ingestion. The method
		// switch is recorded on the session so callers can see which
		// path actually ran.
		s.logger.Warn("parser ingestion failed, falling back to direct",
			"session_id", session.SessionID,
			"error", err,
		)
		acc.AddError(fmt.Sprintf("Parser failed: %v", err))
		s.metrics.IncParserFallback()
	}
	session.UploadMethod = models.MethodDirect

	return s.direct.Ingest(ctx, meta, files, session, acc)
}

// GetSession retrieves an upload session by its external token.
func (s *uploadService) GetSession(ctx context.Context, sessionID string) (*models.UploadSession, error) {
	return s.sessions.GetBySessionID(ctx, sessionID)
}

func (s *uploadService) validateRequest(req *uploadSvc.UploadProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxProjectNameLength),
		),
		validation.Field(&req.Filename, validation.Required),
		validation.Field(&req.Payload, validation.Required),
	)
}

func totalSize(files []uploadSvc.ClassifiedFile) int64 {
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total
}
