package upload

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"cobalt/internal/config"
	models "cobalt/internal/domain/models/upload"
	uploadSvc "cobalt/internal/domain/services/upload"
)

// newProject builds the Project row shared by both strategies. The status
// starts at processing; the owning strategy finalizes it.
func newProject(meta uploadSvc.ProjectMeta, method models.UploadMethod) *models.Project {
	now := time.Now()
	return &models.Project{
		Name:             meta.Name,
		Description:      meta.Description,
		UploadMethod:     method,
		UploadStatus:     models.UploadStatusProcessing,
		OriginalFilename: meta.OriginalFilename,
		FileSize:         meta.TotalSize,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// buildFileRow turns a classified file into a ProjectFile row. The project
// id is attached later, once the project row exists inside the strategy's
// transaction. Validation failures here are the direct strategy's per-file
// failure point.
func buildFileRow(f uploadSvc.ClassifiedFile, parsedData map[string]any) (*models.ProjectFile, error) {
	if err := validateFileRow(f); err != nil {
		return nil, err
	}

	return &models.ProjectFile{
		Filename:      f.Filename,
		FilePath:      f.RelativePath,
		RelativePath:  f.RelativePath,
		FileExtension: f.Extension,
		FileSize:      f.Size,
		Content:       f.Content,
		ContentHash:   f.ContentHash,
		ParsedData:    parsedData,
		Language:      f.Language,
		Loc:           f.Loc,
		IsBinary:      f.IsBinary,
		CreatedAt:     time.Now(),
	}, nil
}

func validateFileRow(f uploadSvc.ClassifiedFile) error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Filename, validation.Required),
		validation.Field(&f.RelativePath,
			validation.Required,
			validation.Length(1, config.MaxFilePathLength),
		),
	)
}
