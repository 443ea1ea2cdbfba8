package upload

// RawFile is one file as it came out of the uploaded payload, before any
// filtering or metadata computation. Binary content is carried after lossy
// UTF-8 decoding with IsBinary set.
type RawFile struct {
	Filename     string
	RelativePath string
	Content      string
	Size         int64
	IsBinary     bool
}

// ClassifiedFile is a raw file that survived extension filtering, with its
// language tag, line count and content hash computed.
type ClassifiedFile struct {
	Filename     string
	RelativePath string
	Content      string
	Size         int64
	IsBinary     bool
	Extension    string
	Language     *string
	Loc          int
	ContentHash  string
}

// ProjectMeta carries the caller-supplied attributes of the project being
// ingested.
type ProjectMeta struct {
	Name             string
	Description      *string
	OriginalFilename string
	TotalSize        int64
}
