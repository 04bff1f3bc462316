package dto

type TaskItem struct {
	ID              uint64        `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	ProjectID       *uint64       `json:"project_id"`
	ProjectName     *string       `json:"project_name,omitempty"`
	ProjectColor    *string       `json:"project_color,omitempty"`
	AssignedTo      *uint64       `json:"assigned_to"`
	AssigneeName    *string       `json:"assignee_name,omitempty"`
	CreatedBy       uint64        `json:"created_by"`
	DueDate         *string       `json:"due_date"`
	Priority        string        `json:"priority"`
	Status          string        `json:"status"`
	CompletedAt     *string       `json:"completed_at"`
	Position        int           `json:"position"`
	CreatedAt       string        `json:"created_at"`
	UpdatedAt       string        `json:"updated_at"`
	Progress        int           `json:"progress"`
	SubtaskProgress int           `json:"subtask_progress"`
	Subtasks        []SubtaskItem `json:"subtasks"`
}

// TaskDetail is the single-task view; comments and files are always arrays.
type TaskDetail struct {
	TaskItem
	Comments []CommentItem `json:"comments"`
	Files    []FileItem    `json:"files"`
}

type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=65535"`
	ProjectID   *uint64  `json:"project_id" binding:"omitempty,gt=0"`
	AssignedTo  *uint64  `json:"assigned_to" binding:"omitempty,gt=0"`
	DueDate     *string  `json:"due_date" binding:"omitempty,max=10"`
	Priority    *string  `json:"priority" binding:"omitempty,max=16"`
	Status      *string  `json:"status" binding:"omitempty,max=16"`
	Subtasks    []string `json:"subtasks" binding:"omitempty,max=100,dive,max=255"`
}

// UpdateTaskRequest replaces every editable field. Omitted or null optional
// fields are cleared.
type UpdateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	ProjectID   *uint64 `json:"project_id" binding:"omitempty,gt=0"`
	AssignedTo  *uint64 `json:"assigned_to" binding:"omitempty,gt=0"`
	DueDate     *string `json:"due_date" binding:"omitempty,max=10"`
	Priority    *string `json:"priority" binding:"omitempty,max=16"`
	Status      *string `json:"status" binding:"omitempty,max=16"`
}

type MoveTaskRequest struct {
	Status   string `json:"status" binding:"required,max=16"`
	Position *int   `json:"position" binding:"omitempty,gte=0"`
}

type CalendarResponse struct {
	Year        int        `json:"year"`
	Month       int        `json:"month"`
	DaysInMonth int        `json:"days_in_month"`
	Tasks       []TaskItem `json:"tasks"`
}
