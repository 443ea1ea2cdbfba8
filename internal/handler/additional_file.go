package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	uploadSvc "cobalt/internal/domain/services/upload"
	"cobalt/internal/httputil"
)

// AdditionalFileHandler handles supplementary project document requests.
type AdditionalFileHandler struct {
	files  uploadSvc.AdditionalFileService
	logger *slog.Logger
}

// NewAdditionalFileHandler creates a new additional file handler
func NewAdditionalFileHandler(files uploadSvc.AdditionalFileService, logger *slog.Logger) *AdditionalFileHandler {
	return &AdditionalFileHandler{
		files:  files,
		logger: logger,
	}
}

// AddFile attaches a supplementary file to a project.
// POST /api/upload/projects/{id}/additional_files
//
// Multipart form fields:
//   - file: required
//   - description: optional
func (h *AdditionalFileHandler) AddFile(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseProjectID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	var description *string
	if d := r.FormValue("description"); d != "" {
		description = &d
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("failed to read uploaded file",
			"filename", header.Filename,
			"error", err,
		)
		httputil.RespondError(w, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}

	created, err := h.files.AddFile(r.Context(), &uploadSvc.AddFileRequest{
		ProjectID:   projectID,
		Filename:    header.Filename,
		Description: description,
		Content:     content,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, created)
}

// ListFiles lists a project's additional files.
// GET /api/upload/projects/{id}/additional_files
func (h *AdditionalFileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseProjectID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	files, err := h.files.ListFiles(r.Context(), projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, files)
}

// GetFile returns one additional file's metadata.
// GET /api/upload/projects/{id}/additional_files/{file_id}
func (h *AdditionalFileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	projectID, fileID, err := parseFileIDs(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, err := h.files.GetFile(r.Context(), projectID, fileID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// updateFileRequest is the JSON body for metadata updates. Only the
// description can change; content is immutable.
type updateFileRequest struct {
	Description *string `json:"description"`
}

// UpdateFile updates an additional file's description.
// PUT /api/upload/projects/{id}/additional_files/{file_id}
func (h *AdditionalFileHandler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	projectID, fileID, err := parseFileIDs(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.files.UpdateDescription(r.Context(), projectID, fileID, req.Description)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, updated)
}

// DeleteFile removes an additional file.
// DELETE /api/upload/projects/{id}/additional_files/{file_id}
func (h *AdditionalFileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	projectID, fileID, err := parseFileIDs(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.files.DeleteFile(r.Context(), projectID, fileID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseFileIDs(r *http.Request) (projectID, fileID int64, err error) {
	projectID, err = parseProjectID(r)
	if err != nil {
		return 0, 0, err
	}
	fileID, err = strconv.ParseInt(r.PathValue("file_id"), 10, 64)
	if err != nil || fileID <= 0 {
		return 0, 0, errInvalidFileID
	}
	return projectID, fileID, nil
}
