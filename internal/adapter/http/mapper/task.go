package mapper

import (
	"time"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/core/domain"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = time.RFC3339
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:              task.ID,
		Title:           task.Title,
		Description:     task.Description,
		ProjectID:       task.ProjectID,
		AssignedTo:      task.AssigneeID,
		CreatedBy:       task.CreatedBy,
		Priority:        string(task.Priority),
		Status:          string(task.Status),
		Position:        task.Position,
		CreatedAt:       task.CreatedAt.Format(dateTimeLayout),
		UpdatedAt:       task.UpdatedAt.Format(dateTimeLayout),
		Progress:        task.Progress,
		SubtaskProgress: task.SubtaskProgress,
		Subtasks:        ToSubtaskItems(task.Subtasks),
	}

	if task.DueDate != nil {
		value := task.DueDate.Format(dateLayout)
		item.DueDate = &value
	}

	if task.CompletedAt != nil {
		value := task.CompletedAt.Format(dateTimeLayout)
		item.CompletedAt = &value
	}

	if task.Project != nil {
		name, color := task.Project.Name, task.Project.Color
		item.ProjectName = &name
		item.ProjectColor = &color
	}

	if task.Assignee != nil {
		name := task.Assignee.FullName
		item.AssigneeName = &name
	}

	return item
}

func ToTaskDetail(task domain.Task) dto.TaskDetail {
	return dto.TaskDetail{
		TaskItem: ToTaskItem(task),
		Comments: ToCommentItems(task.Comments),
		Files:    ToFileItems(task.Files),
	}
}

func ToCalendarResponse(month domain.CalendarMonth) dto.CalendarResponse {
	return dto.CalendarResponse{
		Year:        month.Year,
		Month:       int(month.Month),
		DaysInMonth: month.DaysInMonth,
		Tasks:       ToTaskItems(month.Tasks),
	}
}
