package mapper

import (
	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/core/domain"
)

func ToSubtaskItems(subtasks []domain.Subtask) []dto.SubtaskItem {
	items := make([]dto.SubtaskItem, 0, len(subtasks))
	for _, subtask := range subtasks {
		items = append(items, ToSubtaskItem(subtask))
	}
	return items
}

func ToSubtaskItem(subtask domain.Subtask) dto.SubtaskItem {
	item := dto.SubtaskItem{
		ID:          subtask.ID,
		TaskID:      subtask.TaskID,
		Title:       subtask.Title,
		Completed:   subtask.Completed,
		CompletedBy: subtask.CompletedBy,
		CreatedAt:   subtask.CreatedAt.Format(dateTimeLayout),
	}
	if subtask.CompletedByName != "" {
		name := subtask.CompletedByName
		item.CompletedByName = &name
	}
	return item
}

func ToSubtaskChangeResponse(change domain.SubtaskChange) dto.SubtaskChangeResponse {
	response := dto.SubtaskChangeResponse{
		TaskID:   change.TaskID,
		Progress: change.Progress,
	}
	if change.Subtask != nil {
		item := ToSubtaskItem(*change.Subtask)
		response.Subtask = &item
	}
	return response
}
