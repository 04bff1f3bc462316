package handlers

import (
	"net/http"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/adapter/http/mapper"
	"tasktracker/internal/adapter/http/validation"
	"tasktracker/internal/core/ports"
	"tasktracker/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	user, err := h.userService.CurrentUser(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "failed to load current user", zap.Uint64("user_id", p.UserID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserItem(user))
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "failed to list users")
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserItems(users))
}

func (h *UserHandler) MemberStats(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	stats, err := h.userService.MemberStats(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "failed to compute member stats")
		return
	}

	c.JSON(http.StatusOK, mapper.ToMemberStatsItems(stats))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), p, userID)
	if err != nil {
		respondError(c, err, "failed to get user", zap.Uint64("user_id", userID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserItem(user))
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if _, ok := bindJSON(c, &req); !ok {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), p, validation.BuildCreateUserInput(req))
	if err != nil {
		respondError(c, err, "failed to create user")
		return
	}

	c.JSON(http.StatusCreated, mapper.ToUserItem(user))
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	raw, ok := bindJSON(c, &req)
	if !ok {
		return
	}

	input, err := validation.BuildUpdateUserInput(req, raw)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidPayload)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), p, userID, input)
	if err != nil {
		respondError(c, err, "failed to update user", zap.Uint64("user_id", userID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserItem(user))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), p, userID); err != nil {
		respondError(c, err, "failed to delete user", zap.Uint64("user_id", userID))
		return
	}

	c.Status(http.StatusNoContent)
}
