package dto

type FileItem struct {
	ID           uint64  `json:"id"`
	TaskID       *uint64 `json:"task_id"`
	ProjectID    *uint64 `json:"project_id"`
	UserID       uint64  `json:"user_id"`
	UploaderName string  `json:"uploader_name"`
	OriginalName string  `json:"original_name"`
	FileSize     int64   `json:"file_size"`
	FileType     string  `json:"file_type"`
	CreatedAt    string  `json:"created_at"`
}
