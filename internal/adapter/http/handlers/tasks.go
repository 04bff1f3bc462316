package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/adapter/http/mapper"
	"tasktracker/internal/adapter/http/validation"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
	"tasktracker/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskService ports.TaskService
	now         func() time.Time
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService, now: time.Now}
}

// ListTasks accepts the project_id, assigned_to and status filters and the
// include_archived flag.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	filter, includeArchived, err := taskFilterFromQuery(c)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidQuery)
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), p, filter, includeArchived)
	if err != nil {
		respondError(c, err, "failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) MyTasks(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.MyTasks(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "failed to list own tasks", zap.Uint64("user_id", p.UserID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

// Calendar defaults to the current month when year or month is missing.
func (h *TaskHandler) Calendar(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	now := h.now()
	year, err := queryInt(c, "year", now.Year())
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidQuery)
		return
	}
	month, err := queryInt(c, "month", int(now.Month()))
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidQuery)
		return
	}

	calendar, err := h.taskService.Calendar(c.Request.Context(), p, year, month)
	if err != nil {
		respondError(c, err, "failed to load calendar", zap.Int("year", year), zap.Int("month", month))
		return
	}

	c.JSON(http.StatusOK, mapper.ToCalendarResponse(calendar))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), p, taskID)
	if err != nil {
		respondError(c, err, "failed to get task", zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskDetail(task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	raw, ok := bindJSON(c, &req)
	if !ok {
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw)
	if err != nil {
		respondPayloadError(c, err)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), p, input)
	if err != nil {
		respondError(c, err, "failed to create task")
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskDetail(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	raw, ok := bindJSON(c, &req)
	if !ok {
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		respondPayloadError(c, err)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), p, taskID, input)
	if err != nil {
		respondError(c, err, "failed to update task", zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskDetail(task))
}

func (h *TaskHandler) MoveTask(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.MoveTaskRequest
	raw, ok := bindJSON(c, &req)
	if !ok {
		return
	}

	input, err := validation.BuildMoveTaskInput(req, raw)
	if err != nil {
		respondPayloadError(c, err)
		return
	}

	task, err := h.taskService.MoveTask(c.Request.Context(), p, taskID, input)
	if err != nil {
		respondError(c, err, "failed to move task", zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskDetail(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), p, taskID); err != nil {
		respondError(c, err, "failed to delete task", zap.Uint64("task_id", taskID))
		return
	}

	c.Status(http.StatusNoContent)
}

func taskFilterFromQuery(c *gin.Context) (domain.TaskFilter, bool, error) {
	var filter domain.TaskFilter

	if value := c.Query("project_id"); value != "" {
		id, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return filter, false, err
		}
		filter.ProjectID = &id
	}

	if value := c.Query("assigned_to"); value != "" {
		id, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return filter, false, err
		}
		filter.AssigneeID = &id
	}

	if value := c.Query("status"); value != "" {
		status := domain.TaskStatus(value)
		filter.Status = &status
	}

	includeArchived := false
	if value := c.Query("include_archived"); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return filter, false, err
		}
		includeArchived = parsed
	}

	return filter, includeArchived, nil
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	value := c.Query(name)
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func respondPayloadError(c *gin.Context, err error) {
	if errors.Is(err, validation.ErrInvalidDate) {
		respondBadRequest(c, apierrors.MsgInvalidDate)
		return
	}
	respondBadRequest(c, apierrors.MsgInvalidPayload)
}
