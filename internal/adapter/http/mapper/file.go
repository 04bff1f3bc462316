package mapper

import (
	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/core/domain"
)

func ToFileItems(files []domain.File) []dto.FileItem {
	items := make([]dto.FileItem, 0, len(files))
	for _, file := range files {
		items = append(items, ToFileItem(file))
	}
	return items
}

// ToFileItem leaves out the storage key; clients download through the file
// id only.
func ToFileItem(file domain.File) dto.FileItem {
	return dto.FileItem{
		ID:           file.ID,
		TaskID:       file.TaskID,
		ProjectID:    file.ProjectID,
		UserID:       file.UserID,
		UploaderName: file.UploaderName,
		OriginalName: file.OriginalName,
		FileSize:     file.Size,
		FileType:     file.MimeType,
		CreatedAt:    file.CreatedAt.Format(dateTimeLayout),
	}
}
