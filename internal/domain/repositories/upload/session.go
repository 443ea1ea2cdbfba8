package upload

import (
	"context"

	models "cobalt/internal/domain/models/upload"
)

// UploadSessionRepository defines data access for UploadSession entities.
// Sessions are never deleted by the ingestion core.
type UploadSessionRepository interface {
	// Create inserts a session row and populates ID and timestamps
	Create(ctx context.Context, session *models.UploadSession) error

	// GetBySessionID retrieves a session by its external token
	GetBySessionID(ctx context.Context, sessionID string) (*models.UploadSession, error)

	// Update persists the session's mutable fields (status, method,
	// counters, errors, warnings, project reference)
	Update(ctx context.Context, session *models.UploadSession) error
}
