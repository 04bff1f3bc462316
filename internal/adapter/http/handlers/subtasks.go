package handlers

import (
	"net/http"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/adapter/http/mapper"
	"tasktracker/internal/core/ports"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SubtaskHandler struct {
	subtaskService ports.SubtaskService
}

func NewSubtaskHandler(subtaskService ports.SubtaskService) *SubtaskHandler {
	return &SubtaskHandler{subtaskService: subtaskService}
}

func (h *SubtaskHandler) AddSubtask(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateSubtaskRequest
	if _, ok := bindJSON(c, &req); !ok {
		return
	}

	change, err := h.subtaskService.AddSubtask(c.Request.Context(), p, taskID, req.Title)
	if err != nil {
		respondError(c, err, "failed to add subtask", zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToSubtaskChangeResponse(change))
}

func (h *SubtaskHandler) ToggleSubtask(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	subtaskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	change, err := h.subtaskService.ToggleSubtask(c.Request.Context(), p, subtaskID)
	if err != nil {
		respondError(c, err, "failed to toggle subtask", zap.Uint64("subtask_id", subtaskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToSubtaskChangeResponse(change))
}

func (h *SubtaskHandler) DeleteSubtask(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	subtaskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	change, err := h.subtaskService.DeleteSubtask(c.Request.Context(), p, subtaskID)
	if err != nil {
		respondError(c, err, "failed to delete subtask", zap.Uint64("subtask_id", subtaskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToSubtaskChangeResponse(change))
}
