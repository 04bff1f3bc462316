package domain

import (
	"io"
	"time"
)

// File is an attachment owned by exactly one task or exactly one project.
type File struct {
	ID           uint64
	TaskID       *uint64
	ProjectID    *uint64
	UserID       uint64
	Filename     string
	OriginalName string
	Size         int64
	MimeType     string
	CreatedAt    time.Time

	UploaderName string
}

func (f File) IsProjectFile() bool {
	return f.ProjectID != nil && f.TaskID == nil
}

type UploadInput struct {
	OriginalName string
	MimeType     string
	Content      io.Reader
}
