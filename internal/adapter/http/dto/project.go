package dto

type ProjectItem struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Color       string  `json:"color"`
	CreatedBy   uint64  `json:"created_by"`
	Archived    bool    `json:"archived"`
	CompletedAt *string `json:"completed_at"`
	CreatedAt   string  `json:"created_at"`
}

type ProjectSummaryItem struct {
	ProjectItem
	TaskCount   int    `json:"task_count"`
	DoneCount   int    `json:"done_count"`
	FileCount   int    `json:"file_count"`
	CreatorName string `json:"creator_name"`
}

type ProjectListResponse struct {
	Active   []ProjectSummaryItem `json:"active"`
	Archived []ProjectSummaryItem `json:"archived"`
}

type ProjectRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"max=65535"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
}
