package upload

import (
	"time"
)

// UploadMethod identifies which ingestion strategy produced a project.
type UploadMethod string

const (
	MethodParser UploadMethod = "parser"
	MethodDirect UploadMethod = "direct"
)

// UploadStatus tracks a project's position in the ingestion lifecycle.
type UploadStatus string

const (
	UploadStatusPending    UploadStatus = "pending"
	UploadStatusProcessing UploadStatus = "processing"
	UploadStatusCompleted  UploadStatus = "completed"
	UploadStatusFailed     UploadStatus = "failed"
)

// Project is one ingested codebase. It owns its ProjectFile set; deleting a
// project cascades to its files.
type Project struct {
	ID               int64          `json:"id" db:"id"`
	UUID             string         `json:"uuid" db:"uuid"`
	Name             string         `json:"name" db:"name"`
	Description      *string        `json:"description,omitempty" db:"description"`
	UploadMethod     UploadMethod   `json:"upload_method" db:"upload_method"`
	UploadStatus     UploadStatus   `json:"upload_status" db:"upload_status"`
	OriginalFilename string         `json:"original_filename" db:"original_filename"`
	FileSize         int64          `json:"file_size" db:"file_size"`
	ParserResponse   map[string]any `json:"parser_response,omitempty" db:"parser_response"`
	ParserVersion    *string        `json:"parser_version,omitempty" db:"parser_version"`
	CreatedAt        time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at" db:"updated_at"`
}

// ProjectFile is one source file ingested under a project. Rows are created
// once and never updated; they go away only with their parent project.
type ProjectFile struct {
	ID            int64          `json:"id" db:"id"`
	ProjectID     int64          `json:"project_id" db:"project_id"`
	Filename      string         `json:"filename" db:"filename"`
	FilePath      string         `json:"file_path" db:"file_path"`
	RelativePath  string         `json:"relative_path" db:"relative_path"`
	FileExtension string         `json:"file_extension" db:"file_extension"`
	FileSize      int64          `json:"file_size" db:"file_size"`
	Content       string         `json:"content" db:"content"`
	ContentHash   string         `json:"content_hash" db:"content_hash"`
	ParsedData    map[string]any `json:"parsed_data,omitempty" db:"parsed_data"`
	Language      *string        `json:"language,omitempty" db:"language"`
	Loc           int            `json:"loc" db:"loc"`
	IsBinary      bool           `json:"is_binary" db:"is_binary"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
}

// ProjectSummary is the list-view projection of a project with aggregate
// file statistics.
type ProjectSummary struct {
	ID           int64        `json:"id"`
	UUID         string       `json:"uuid"`
	Name         string       `json:"name"`
	Description  *string      `json:"description,omitempty"`
	UploadMethod UploadMethod `json:"upload_method"`
	UploadStatus UploadStatus `json:"upload_status"`
	FileCount    int          `json:"file_count"`
	TotalSize    int64        `json:"total_size"`
	CreatedAt    time.Time    `json:"created_at"`
}

// ProjectListOptions controls pagination and filtering for project listings.
type ProjectListOptions struct {
	Skip         int
	Limit        int
	UploadMethod *UploadMethod
}

// ApplyDefaults normalizes pagination values in place.
func (o *ProjectListOptions) ApplyDefaults() {
	if o.Limit <= 0 || o.Limit > 200 {
		o.Limit = 50
	}
	if o.Skip < 0 {
		o.Skip = 0
	}
}
