package handlers

import (
	"net/http"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/adapter/http/mapper"
	"tasktracker/internal/core/ports"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommentHandler struct {
	commentService ports.CommentService
}

func NewCommentHandler(commentService ports.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	comments, err := h.commentService.ListComments(c.Request.Context(), p, taskID)
	if err != nil {
		respondError(c, err, "failed to list comments", zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToCommentItems(comments))
}

func (h *CommentHandler) AddComment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if _, ok := bindJSON(c, &req); !ok {
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), p, taskID, req.Content)
	if err != nil {
		respondError(c, err, "failed to add comment", zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToCommentItem(comment))
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	commentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), p, commentID); err != nil {
		respondError(c, err, "failed to delete comment", zap.Uint64("comment_id", commentID))
		return
	}

	c.Status(http.StatusNoContent)
}
