package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface keeps handler-level error mapping extensible.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation failed")

	// ErrParserDisabled signals that parser integration is switched off by
	// configuration. It is absorbed by the orchestrator's fallback path and
	// never reaches a caller.
	ErrParserDisabled = errors.New("parser integration disabled")
)

type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }

func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// PayloadTooLargeError indicates the upload exceeds the aggregate project
// size cap. Raised before any decompression work is attempted.
type PayloadTooLargeError struct {
	LimitBytes int64
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("file too large, max size: %d MB", e.LimitBytes/(1024*1024))
}

func (e *PayloadTooLargeError) StatusCode() int { return http.StatusRequestEntityTooLarge }

// NoValidFilesError indicates extraction and filtering removed every
// candidate file, leaving nothing to ingest.
type NoValidFilesError struct{}

func (e *NoValidFilesError) Error() string { return "No valid files to process" }

func (e *NoValidFilesError) StatusCode() int { return http.StatusBadRequest }

// ParserUnavailableError indicates the external parser service could not be
// reached or answered with a non-2xx status. Recovered by falling back to
// direct ingestion; never surfaced to callers on its own.
type ParserUnavailableError struct {
	Reason string
}

func (e *ParserUnavailableError) Error() string {
	return fmt.Sprintf("parser service unavailable: %s", e.Reason)
}

// ParserRejectedError indicates the parser service answered but reported
// failure (success=false). Same recovery as ParserUnavailableError.
type ParserRejectedError struct {
	Reason string
}

func (e *ParserRejectedError) Error() string {
	return fmt.Sprintf("parser rejected project: %s", e.Reason)
}

// IngestionError wraps a fatal failure of an upload attempt after the
// session row exists. The session's error list carries the diagnostic
// detail; this error is what the caller sees.
type IngestionError struct {
	SessionID string
	Err       error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("upload failed: %v", e.Err)
}

func (e *IngestionError) Unwrap() error { return e.Err }

func (e *IngestionError) StatusCode() int {
	var httpErr HTTPError
	if errors.As(e.Err, &httpErr) {
		return httpErr.StatusCode()
	}
	return http.StatusInternalServerError
}
