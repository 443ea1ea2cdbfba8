package upload

import (
	"time"
)

// SessionStatus tracks the lifecycle of one upload attempt.
// Transitions: active -> completed | failed. "expired" is terminal and is
// only ever assigned by external time-based cleanup; the ingestion core
// never sets it.
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusFailed    SessionStatus = "failed"
	SessionStatusExpired   SessionStatus = "expired"
)

// UploadSession is the bookkeeping record for one ingestion attempt. It
// references the project it produced (if any) by id but does not own its
// lifecycle.
//
// Invariant: ProcessedFiles + FailedFiles <= TotalFiles.
type UploadSession struct {
	ID             int64         `json:"id" db:"id"`
	SessionID      string        `json:"session_id" db:"session_id"`
	Status         SessionStatus `json:"status" db:"status"`
	UploadMethod   UploadMethod  `json:"upload_method" db:"upload_method"`
	TotalFiles     int           `json:"total_files" db:"total_files"`
	ProcessedFiles int           `json:"processed_files" db:"processed_files"`
	FailedFiles    int           `json:"failed_files" db:"failed_files"`
	Errors         []string      `json:"errors" db:"errors"`
	Warnings       []string      `json:"warnings" db:"warnings"`
	ProjectID      *int64        `json:"project_id,omitempty" db:"project_id"`
	ExpiresAt      time.Time     `json:"expires_at" db:"expires_at"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" db:"updated_at"`
}
