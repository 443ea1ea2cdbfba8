package handler

import (
	"io"
	"log/slog"
	"net/http"

	uploadSvc "cobalt/internal/domain/services/upload"
	"cobalt/internal/httputil"
)

// multipartMemoryLimit bounds the in-memory portion of multipart parsing;
// larger payloads spill to temp files. The aggregate project size cap is
// enforced downstream by the extractor.
const multipartMemoryLimit = 32 << 20

// UploadHandler handles project upload HTTP requests.
type UploadHandler struct {
	uploads uploadSvc.UploadService
	logger  *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploads uploadSvc.UploadService, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		uploads: uploads,
		logger:  logger,
	}
}

// UploadProject ingests a project archive or single file.
// POST /api/upload/project
//
// Multipart form fields:
//   - project_name: required
//   - project_description: optional
//   - file: required, archive or single source file
func (h *UploadHandler) UploadProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	name := r.FormValue("project_name")
	if name == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project_name form field is required")
		return
	}

	var description *string
	if d := r.FormValue("project_description"); d != "" {
		description = &d
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("failed to read uploaded file",
			"filename", header.Filename,
			"error", err,
		)
		httputil.RespondError(w, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}

	h.logger.Info("project upload request",
		"name", name,
		"filename", header.Filename,
		"size", len(payload),
	)

	result, err := h.uploads.UploadProject(r.Context(), &uploadSvc.UploadProjectRequest{
		Name:        name,
		Description: description,
		Filename:    header.Filename,
		Payload:     payload,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// GetSession returns an upload session's status and progress.
// GET /api/upload/session/{session_id}
func (h *UploadHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")
	if sessionID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	session, err := h.uploads.GetSession(r.Context(), sessionID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, session)
}
