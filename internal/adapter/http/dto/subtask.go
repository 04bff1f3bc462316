package dto

type SubtaskItem struct {
	ID              uint64  `json:"id"`
	TaskID          uint64  `json:"task_id"`
	Title           string  `json:"title"`
	Completed       bool    `json:"completed"`
	CompletedBy     *uint64 `json:"completed_by"`
	CompletedByName *string `json:"completed_by_name,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type CreateSubtaskRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

// SubtaskChangeResponse carries the raw subtask progress of the task after
// the change. Subtask is omitted after a delete.
type SubtaskChangeResponse struct {
	Subtask  *SubtaskItem `json:"subtask,omitempty"`
	TaskID   uint64       `json:"task_id"`
	Progress int          `json:"progress"`
}
