package tests

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/core/domain"
	"tasktracker/pkg/apierrors"
	"tasktracker/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var (
	managerPrincipal = domain.Principal{UserID: 1, Role: domain.RoleManager}
	memberPrincipal  = domain.Principal{UserID: 2, Role: domain.RoleMember}
)

// newRouter mounts routes behind the language middleware with p already
// authenticated.
func newRouter(p domain.Principal) *gin.Engine {
	router := gin.New()
	router.Use(middleware.LanguageMiddleware(), middleware.SetPrincipal(p))
	return router
}

func perform(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, status, got.ErrDetails.Code)
	require.Equal(t, message, got.ErrDetails.Message)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var got T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func ptr[T any](value T) *T {
	return &value
}
