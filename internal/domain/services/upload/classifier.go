package upload

// FileClassifier applies the extension allow-list and computes per-file
// metadata (language tag, line count, content hash).
//
// A file passes the filter if its lowercase extension is allowed or if it
// has no extension at all. Files failing the filter are dropped silently;
// files dropped for other reasons (single-file size cap) are reported as
// warnings. Classification is idempotent: re-classifying an already
// classified list is a no-op.
type FileClassifier interface {
	Classify(files []RawFile) (classified []ClassifiedFile, warnings []string)
}
