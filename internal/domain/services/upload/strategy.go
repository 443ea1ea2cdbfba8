package upload

import (
	"context"

	models "cobalt/internal/domain/models/upload"
)

// IngestionStrategy turns a classified file list into a persisted project.
//
// The parser variant is all-or-nothing: any failure (network, non-2xx,
// success=false, persistence) abandons the whole attempt and surfaces as an
// error for the orchestrator's fallback logic. The direct variant tolerates
// per-file failures, recording them on the accumulator and continuing; it
// fails the attempt only when nothing could be committed at all.
//
// Each implementation issues its writes (project row, file rows, final
// status updates, session update) as a single atomic commit.
type IngestionStrategy interface {
	// Method returns the upload method this strategy records on the
	// projects it creates
	Method() models.UploadMethod

	// Ingest creates the project and its file rows, finalizes session
	// and project status, and commits everything atomically
	Ingest(
		ctx context.Context,
		meta ProjectMeta,
		files []ClassifiedFile,
		session *models.UploadSession,
		acc *SessionAccumulator,
	) (*models.Project, error)
}
