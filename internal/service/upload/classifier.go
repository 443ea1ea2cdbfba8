package upload

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path"
	"strings"

	uploadSvc "cobalt/internal/domain/services/upload"
	"cobalt/internal/langmap"
)

// fileClassifier applies the extension allow-list and computes per-file
// metadata. Dropping a file for a disallowed extension is not an error;
// dropping it for the single-file size cap produces a session warning.
type fileClassifier struct {
	allowed      map[string]struct{}
	maxFileBytes int64
	languages    *langmap.Registry
	logger       *slog.Logger
}

// NewFileClassifier creates a classifier with the given extension
// allow-list (lowercase, leading dot) and single-file size cap in bytes.
// A cap of zero disables the per-file check.
func NewFileClassifier(
	allowedExtensions []string,
	maxFileBytes int64,
	languages *langmap.Registry,
	logger *slog.Logger,
) uploadSvc.FileClassifier {
	allowed := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	return &fileClassifier{
		allowed:      allowed,
		maxFileBytes: maxFileBytes,
		languages:    languages,
		logger:       logger,
	}
}

// Classify filters raw files and computes language, line count and content
// hash for the survivors. Input order is preserved.
func (c *fileClassifier) Classify(files []uploadSvc.RawFile) ([]uploadSvc.ClassifiedFile, []string) {
	classified := make([]uploadSvc.ClassifiedFile, 0, len(files))
	var warnings []string

	for _, f := range files {
		ext := strings.ToLower(path.Ext(f.Filename))

		// Extensionless files always pass the filter
		if ext != "" {
			if _, ok := c.allowed[ext]; !ok {
				c.logger.Warn("skipping file with disallowed extension",
					"filename", f.Filename,
					"extension", ext,
				)
				continue
			}
		}

		if c.maxFileBytes > 0 && f.Size > c.maxFileBytes {
			warnings = append(warnings, fmt.Sprintf(
				"Skipped %s: exceeds single-file size limit", f.Filename))
			c.logger.Warn("skipping oversized file",
				"filename", f.Filename,
				"size", f.Size,
			)
			continue
		}

		classified = append(classified, uploadSvc.ClassifiedFile{
			Filename:     f.Filename,
			RelativePath: f.RelativePath,
			Content:      f.Content,
			Size:         f.Size,
			IsBinary:     f.IsBinary,
			Extension:    ext,
			Language:     c.languages.Detect(ext),
			Loc:          lineCount(f.Content, f.IsBinary),
			ContentHash:  hashContent(f.Content),
		})
	}

	return classified, warnings
}

// lineCount counts newline-delimited segments. Binary files get zero.
func lineCount(content string, isBinary bool) int {
	if isBinary {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

// hashContent returns the hex SHA-256 of the (possibly lossily decoded)
// text content. Stored as a dedup signal only, not enforced unique.
func hashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
