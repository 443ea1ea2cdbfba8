package upload

import (
	models "cobalt/internal/domain/models/upload"
)

// SessionAccumulator collects progress counters and error/warning strings
// for one ingestion attempt. It is threaded through the pipeline as a plain
// value and applied onto the UploadSession row when that row is persisted,
// instead of mutating shared session state piecemeal.
type SessionAccumulator struct {
	TotalFiles     int
	ProcessedFiles int
	FailedFiles    int
	Errors         []string
	Warnings       []string
}

// AddError appends an error string to the accumulator.
func (a *SessionAccumulator) AddError(msg string) {
	a.Errors = append(a.Errors, msg)
}

// AddWarning appends a warning string to the accumulator.
func (a *SessionAccumulator) AddWarning(msg string) {
	a.Warnings = append(a.Warnings, msg)
}

// ApplyTo copies the accumulated counters and message lists onto a session.
func (a *SessionAccumulator) ApplyTo(s *models.UploadSession) {
	s.TotalFiles = a.TotalFiles
	s.ProcessedFiles = a.ProcessedFiles
	s.FailedFiles = a.FailedFiles
	s.Errors = a.Errors
	s.Warnings = a.Warnings
}
