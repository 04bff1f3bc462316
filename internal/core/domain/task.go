package domain

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uint64
	Title       string
	Description string
	ProjectID   *uint64
	AssigneeID  *uint64
	CreatedBy   uint64
	DueDate     *time.Time
	Priority    TaskPriority
	Status      TaskStatus
	CompletedAt *time.Time
	Position    int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined on reads.
	Project  *ProjectRef
	Assignee *UserRef

	// Derived on reads by the service layer.
	Subtasks        []Subtask
	Comments        []Comment
	Files           []File
	Progress        int
	SubtaskProgress int
}

// SetStatus moves the task to status and keeps CompletedAt non-nil exactly
// while the task is done. Re-entering done from done keeps the original
// completion time.
func (t *Task) SetStatus(status TaskStatus, now time.Time) {
	if status == TaskStatusDone {
		if t.Status != TaskStatusDone || t.CompletedAt == nil {
			completedAt := now
			t.CompletedAt = &completedAt
		}
	} else {
		t.CompletedAt = nil
	}
	t.Status = status
}

type ProjectRef struct {
	ID    uint64
	Name  string
	Color string
}

type UserRef struct {
	ID       uint64
	FullName string
}

type CreateTaskInput struct {
	Title       string
	Description string
	ProjectID   *uint64
	AssigneeID  *uint64
	DueDate     *time.Time
	Priority    TaskPriority
	Status      TaskStatus
	Subtasks    []string
}

type UpdateTaskInput struct {
	Title       string
	Description string
	ProjectID   *uint64
	AssigneeID  *uint64
	DueDate     *time.Time
	Priority    TaskPriority
	Status      TaskStatus
}

type MoveTaskInput struct {
	Status   TaskStatus
	Position *int
}

// TaskFilter narrows task listings. A nil field does not filter.
type TaskFilter struct {
	ProjectID  *uint64
	AssigneeID *uint64
	Status     *TaskStatus
	DueFrom    *time.Time
	DueTo      *time.Time
	// HideArchivedBefore drops tasks whose project was completed at or
	// before this instant.
	HideArchivedBefore *time.Time
	OrderByDueDate     bool
}

type TaskCounts struct {
	Total int
	Done  int
}

type CalendarMonth struct {
	Year        int
	Month       time.Month
	DaysInMonth int
	Tasks       []Task
}
