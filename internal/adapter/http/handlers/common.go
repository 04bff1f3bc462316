package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/core/domain"
	"tasktracker/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

var errorMessages = []struct {
	err error
	key string
}{
	{domain.ErrTaskNotFound, apierrors.MsgTaskNotFound},
	{domain.ErrProjectNotFound, apierrors.MsgProjectNotFound},
	{domain.ErrUserNotFound, apierrors.MsgUserNotFound},
	{domain.ErrSubtaskNotFound, apierrors.MsgSubtaskNotFound},
	{domain.ErrCommentNotFound, apierrors.MsgCommentNotFound},
	{domain.ErrFileNotFound, apierrors.MsgFileNotFound},
	{domain.ErrTitleRequired, apierrors.MsgTitleRequired},
	{domain.ErrNameRequired, apierrors.MsgNameRequired},
	{domain.ErrContentRequired, apierrors.MsgContentRequired},
	{domain.ErrUserFieldsRequired, apierrors.MsgUserFieldsRequired},
	{domain.ErrInvalidStatus, apierrors.MsgInvalidStatus},
	{domain.ErrInvalidPriority, apierrors.MsgInvalidPriority},
	{domain.ErrInvalidRole, apierrors.MsgInvalidRole},
	{domain.ErrInvalidMonth, apierrors.MsgInvalidMonth},
	{domain.ErrSelfDeletion, apierrors.MsgSelfDeletion},
	{domain.ErrOwnRoleChange, apierrors.MsgOwnRoleChange},
	{domain.ErrSubtasksIncomplete, apierrors.MsgSubtasksIncomplete},
	{domain.ErrFileRequired, apierrors.MsgFileRequired},
	{domain.ErrFileTooLarge, apierrors.MsgFileTooLarge},
	{domain.ErrInvalidCredentials, apierrors.MsgInvalidCredentials},
	{domain.ErrDuplicateUser, apierrors.MsgDuplicateUser},
	{domain.ErrBlobWriteFailed, apierrors.MsgBlobWriteFailed},
	{domain.ErrFileMetadataFailed, apierrors.MsgFileMetadataFailed},
}

var kindResponses = map[error]struct {
	status int
	key    string
}{
	domain.ErrUnauthenticated: {http.StatusUnauthorized, apierrors.MsgUnauthenticated},
	domain.ErrUnauthorized:    {http.StatusForbidden, apierrors.MsgUnauthorized},
	domain.ErrNotFound:        {http.StatusNotFound, apierrors.MsgNotFound},
	domain.ErrValidation:      {http.StatusBadRequest, apierrors.MsgValidationFailed},
	domain.ErrConflict:        {http.StatusConflict, apierrors.MsgConflict},
	domain.ErrStorage:         {http.StatusInternalServerError, apierrors.MsgInternalError},
}

// respondError writes the translated error body for a service error. Storage
// failures and errors without a kind are logged and answered with 500.
func respondError(c *gin.Context, err error, logMessage string, fields ...zap.Field) {
	lang := middleware.GetLang(c)

	response, ok := kindResponses[domain.Kind(err)]
	if !ok {
		response = kindResponses[domain.ErrStorage]
	}

	key := response.key
	for _, candidate := range errorMessages {
		if errors.Is(err, candidate.err) {
			key = candidate.key
			break
		}
	}

	if response.status >= http.StatusInternalServerError {
		zap.L().Error(logMessage, append(fields, zap.Error(err))...)
		_ = c.Error(err)
	}

	c.JSON(response.status, apierrors.CreateError(response.status, key, lang))
}

func respondBadRequest(c *gin.Context, msgKey string) {
	c.JSON(
		http.StatusBadRequest,
		apierrors.CreateError(http.StatusBadRequest, msgKey, middleware.GetLang(c)),
	)
}

// parseID reads a positive numeric path parameter and answers 400 when it is
// not one.
func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondBadRequest(c, apierrors.MsgInvalidID)
		return 0, false
	}
	return id, true
}

// bindJSON binds the body into req and also returns the raw top-level fields,
// so that callers can tell an omitted field from an explicit null.
func bindJSON(c *gin.Context, req any) (map[string]json.RawMessage, bool) {
	if err := c.ShouldBindBodyWith(req, binding.JSON); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidPayload)
		return nil, false
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidPayload)
		return nil, false
	}
	return raw, true
}

func principal(c *gin.Context) (domain.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthenticated, middleware.GetLang(c)),
		)
	}
	return p, ok
}
