package upload

import "context"

// ArchiveExtractor turns an uploaded payload into a flat list of raw files.
//
// Archive detection is by filename suffix only (.zip, .tar, .tar.gz, .tgz);
// anything else is treated as a single file. Entries matching the skip rules
// (VCS/IDE/build directories, hidden basenames) are dropped, and per-entry
// extraction failures are logged and skipped rather than aborting the whole
// extraction. Entry order follows the container's iteration order.
type ArchiveExtractor interface {
	Extract(ctx context.Context, filename string, payload []byte) ([]RawFile, error)
}
