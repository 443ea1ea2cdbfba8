package config

import "time"

const (
	// MaxProjectNameLength is the maximum length for project names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxProjectNameLength = 255

	// MaxFilePathLength is the maximum length for a file's logical path
	// within a project. Paths beyond this indicate pathological archive
	// layouts and fail the file rather than the whole upload.
	MaxFilePathLength = 1024

	// SessionTTL is the advisory lifetime of an upload session. Sessions
	// are not actively reaped; expiry is metadata for external cleanup.
	SessionTTL = 24 * time.Hour
)
