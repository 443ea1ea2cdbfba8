package upload

import "context"

// ParserFile is one file entry in a parse request.
type ParserFile struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Content  string `json:"content"`
	Size     int64  `json:"size"`
}

// ParseRequest is the body sent to the external parser service.
type ParseRequest struct {
	ProjectName string       `json:"project_name"`
	Files       []ParserFile `json:"files"`
}

// ParseResponse is the external parser service's answer. Data is an opaque
// payload stored verbatim on the project; per-file payloads, when present,
// live under data.files keyed by relative path.
type ParseResponse struct {
	Success bool           `json:"success"`
	Version string         `json:"version"`
	Data    map[string]any `json:"data"`
	Error   *string        `json:"error"`
}

// FilePayload looks up the per-file analysis payload for a relative path.
// The parser is expected to echo paths back unchanged; a miss returns nil
// and is not an error.
func (r *ParseResponse) FilePayload(relativePath string) map[string]any {
	if r.Data == nil {
		return nil
	}
	files, ok := r.Data["files"].(map[string]any)
	if !ok {
		return nil
	}
	payload, ok := files[relativePath].(map[string]any)
	if !ok {
		return nil
	}
	return payload
}

// ParserClient talks to the external parser service.
type ParserClient interface {
	// Parse submits the project for analysis. Transport errors, timeouts
	// and non-2xx responses return *domain.ParserUnavailableError.
	Parse(ctx context.Context, req *ParseRequest) (*ParseResponse, error)

	// Health probes the service's liveness endpoint. Not part of the
	// ingestion path.
	Health(ctx context.Context) error
}
