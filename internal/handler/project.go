package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	models "cobalt/internal/domain/models/upload"
	uploadSvc "cobalt/internal/domain/services/upload"
	"cobalt/internal/httputil"
)

// ProjectHandler handles project read/delete HTTP requests.
type ProjectHandler struct {
	projects uploadSvc.ProjectService
	logger   *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projects uploadSvc.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		logger:   logger,
	}
}

// projectResponse is the detail view of a project with optional files.
type projectResponse struct {
	*models.Project
	Files []models.ProjectFile `json:"files,omitempty"`
}

// ListProjects lists project summaries.
// GET /api/upload/projects?skip=&limit=&upload_method=
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	opts := models.ProjectListOptions{}

	if v := r.URL.Query().Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "skip must be an integer")
			return
		}
		opts.Skip = n
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		opts.Limit = n
	}
	if v := r.URL.Query().Get("upload_method"); v != "" {
		method := models.UploadMethod(v)
		if method != models.MethodParser && method != models.MethodDirect {
			httputil.RespondError(w, http.StatusBadRequest, "upload_method must be parser or direct")
			return
		}
		opts.UploadMethod = &method
	}

	summaries, err := h.projects.ListProjects(r.Context(), opts)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, summaries)
}

// GetProject returns one project, with files unless include_files=false.
// GET /api/upload/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseProjectID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	includeFiles := r.URL.Query().Get("include_files") != "false"

	project, files, err := h.projects.GetProject(r.Context(), id, includeFiles)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, projectResponse{
		Project: project,
		Files:   files,
	})
}

// DeleteProject removes a project and its files.
// DELETE /api/upload/projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseProjectID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.projects.DeleteProject(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseProjectID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidProjectID
	}
	return id, nil
}
