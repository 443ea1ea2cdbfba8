package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	uploadSvc "cobalt/internal/domain/services/upload"
	"cobalt/internal/httputil"
)

var (
	errInvalidProjectID = errors.New("project id must be a positive integer")
	errInvalidFileID    = errors.New("file id must be a positive integer")
)

// HealthHandler reports service liveness, including the parser service's
// reachability. The probe never participates in ingestion.
type HealthHandler struct {
	parser        uploadSvc.ParserClient
	parserEnabled bool
	logger        *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(parser uploadSvc.ParserClient, parserEnabled bool, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		parser:        parser,
		parserEnabled: parserEnabled,
		logger:        logger,
	}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	parserStatus := "disabled"
	if h.parserEnabled {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.parser.Health(ctx); err != nil {
			h.logger.Debug("parser health probe failed", "error", err)
			parserStatus = "unreachable"
		} else {
			parserStatus = "ok"
		}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"parser": parserStatus,
	})
}
