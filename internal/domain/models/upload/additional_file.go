package upload

import (
	"time"
)

// AdditionalFile is a supplementary document attached to a project after
// ingestion: requirements, diagrams, notes. It is not part of the ingested
// codebase and never passes through the classifier or a strategy; content
// is stored as raw bytes and only the description is mutable.
type AdditionalFile struct {
	ID          int64     `json:"id" db:"id"`
	UUID        string    `json:"uuid" db:"uuid"`
	ProjectID   int64     `json:"project_id" db:"project_id"`
	Filename    string    `json:"filename" db:"filename"`
	FileSize    int64     `json:"file_size" db:"file_size"`
	Description *string   `json:"description,omitempty" db:"description"`
	Content     []byte    `json:"-" db:"content"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
