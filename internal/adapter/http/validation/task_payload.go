package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/core/domain"
)

var (
	ErrInvalidTaskPayload = errors.New("invalid task payload")
	ErrInvalidDate        = errors.New("invalid date")
)

const dateLayout = "2006-01-02"

func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	if explicitNull(raw, "status", "priority", "title", "subtasks") {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	dueDate, err := ParseDate(req.DueDate)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	return domain.CreateTaskInput{
		Title:       req.Title,
		Description: valueOf(req.Description),
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssignedTo,
		DueDate:     dueDate,
		Priority:    domain.TaskPriority(valueOf(req.Priority)),
		Status:      domain.TaskStatus(valueOf(req.Status)),
		Subtasks:    req.Subtasks,
	}, nil
}

// BuildUpdateTaskInput builds a full replacement of the task fields. Optional
// references and dates that are omitted or null are cleared.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if len(raw) == 0 || explicitNull(raw, "status", "priority", "title") {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	dueDate, err := ParseDate(req.DueDate)
	if err != nil {
		return domain.UpdateTaskInput{}, err
	}

	return domain.UpdateTaskInput{
		Title:       req.Title,
		Description: valueOf(req.Description),
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssignedTo,
		DueDate:     dueDate,
		Priority:    domain.TaskPriority(valueOf(req.Priority)),
		Status:      domain.TaskStatus(valueOf(req.Status)),
	}, nil
}

func BuildMoveTaskInput(req dto.MoveTaskRequest, raw map[string]json.RawMessage) (domain.MoveTaskInput, error) {
	if explicitNull(raw, "position") {
		return domain.MoveTaskInput{}, ErrInvalidTaskPayload
	}
	return domain.MoveTaskInput{
		Status:   domain.TaskStatus(strings.TrimSpace(req.Status)),
		Position: req.Position,
	}, nil
}

// ParseDate reads an optional calendar date. Dates are kept at midnight UTC.
func ParseDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(dateLayout, strings.TrimSpace(*value), time.UTC)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &parsed, nil
}

func explicitNull(raw map[string]json.RawMessage, fields ...string) bool {
	for _, field := range fields {
		if value, ok := raw[field]; ok && isJSONNull(value) {
			return true
		}
	}
	return false
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

func valueOf(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
