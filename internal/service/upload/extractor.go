package upload

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"unicode/utf8"

	"cobalt/internal/domain"
	uploadSvc "cobalt/internal/domain/services/upload"
)

// skipSubstrings are path fragments that mark VCS, IDE and build artifacts.
// Any archive entry whose path contains one of these is dropped.
var skipSubstrings = []string{
	"__pycache__", ".git", ".svn", ".hg", "node_modules",
	".DS_Store", "Thumbs.db", ".vscode", ".idea",
	"dist", "build", "target", "bin", "obj",
}

// archiveExtractor turns uploaded payloads into flat raw-file lists.
//
// Detection is by filename suffix only; content sniffing is intentionally
// not performed. The aggregate size cap is enforced twice: on the raw
// payload before any decompression, and on the running decompressed total
// during extraction, which bounds decompression amplification.
type archiveExtractor struct {
	maxProjectBytes int64
	logger          *slog.Logger
}

// NewArchiveExtractor creates an extractor enforcing the given aggregate
// size cap in bytes.
func NewArchiveExtractor(maxProjectBytes int64, logger *slog.Logger) uploadSvc.ArchiveExtractor {
	return &archiveExtractor{
		maxProjectBytes: maxProjectBytes,
		logger:          logger,
	}
}

// Extract produces raw files from an archive or single-file payload.
func (e *archiveExtractor) Extract(ctx context.Context, filename string, payload []byte) ([]uploadSvc.RawFile, error) {
	if int64(len(payload)) > e.maxProjectBytes {
		return nil, &domain.PayloadTooLargeError{LimitBytes: e.maxProjectBytes}
	}

	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return e.extractZip(payload)
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return e.extractTar(payload, true)
	case strings.HasSuffix(lower, ".tar"):
		return e.extractTar(payload, false)
	default:
		content, isBinary := decodeContent(payload)
		return []uploadSvc.RawFile{{
			Filename:     filename,
			RelativePath: filename,
			Content:      content,
			Size:         int64(len(payload)),
			IsBinary:     isBinary,
		}}, nil
	}
}

// extractZip iterates zip entries in container order.
func (e *archiveExtractor) extractZip(payload []byte) ([]uploadSvc.RawFile, error) {
	reader, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return nil, fmt.Errorf("open zip archive: %w", err)
	}

	var files []uploadSvc.RawFile
	var decompressed int64

	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if shouldSkipPath(entry.Name) {
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			e.logger.Warn("failed to open archive entry", "entry", entry.Name, "error", err)
			continue
		}
		data, err := io.ReadAll(io.LimitReader(rc, e.maxProjectBytes-decompressed+1))
		rc.Close()
		if err != nil {
			e.logger.Warn("failed to read archive entry", "entry", entry.Name, "error", err)
			continue
		}

		decompressed += int64(len(data))
		if decompressed > e.maxProjectBytes {
			return nil, &domain.PayloadTooLargeError{LimitBytes: e.maxProjectBytes}
		}

		files = append(files, rawFileFromEntry(entry.Name, data))
	}

	return files, nil
}

// extractTar iterates tar entries, optionally through a gzip layer.
func (e *archiveExtractor) extractTar(payload []byte, gzipped bool) ([]uploadSvc.RawFile, error) {
	var src io.Reader = bytes.NewReader(payload)
	if gzipped {
		gz, err := gzip.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	reader := tar.NewReader(src)

	var files []uploadSvc.RawFile
	var decompressed int64

	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		if shouldSkipPath(header.Name) {
			continue
		}

		data, err := io.ReadAll(io.LimitReader(reader, e.maxProjectBytes-decompressed+1))
		if err != nil {
			e.logger.Warn("failed to read archive entry", "entry", header.Name, "error", err)
			continue
		}

		decompressed += int64(len(data))
		if decompressed > e.maxProjectBytes {
			return nil, &domain.PayloadTooLargeError{LimitBytes: e.maxProjectBytes}
		}

		files = append(files, rawFileFromEntry(header.Name, data))
	}

	return files, nil
}

// rawFileFromEntry builds a RawFile from an archive entry path and bytes.
func rawFileFromEntry(entryPath string, data []byte) uploadSvc.RawFile {
	content, isBinary := decodeContent(data)
	return uploadSvc.RawFile{
		Filename:     path.Base(entryPath),
		RelativePath: entryPath,
		Content:      content,
		Size:         int64(len(data)),
		IsBinary:     isBinary,
	}
}

// decodeContent attempts strict UTF-8 decoding; on failure it re-decodes
// with lossy replacement and reports the content as binary.
func decodeContent(data []byte) (string, bool) {
	if utf8.Valid(data) {
		return string(data), false
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError)), true
}

// shouldSkipPath reports whether an archive entry path matches the skip
// rules: a known VCS/IDE/build fragment anywhere in the path, or a hidden
// basename.
func shouldSkipPath(entryPath string) bool {
	for _, fragment := range skipSubstrings {
		if strings.Contains(entryPath, fragment) {
			return true
		}
	}
	return strings.HasPrefix(path.Base(entryPath), ".")
}
