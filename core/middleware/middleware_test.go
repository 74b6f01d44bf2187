package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meeting-scheduler/core/constants"
	"meeting-scheduler/core/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, mw *Middleware, authHeader string) int {
	t.Helper()
	e := echo.New()
	e.POST("/run", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, mw.AuthMiddleware())

	req := httptest.NewRequest(http.MethodPost, "/run", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestAuthMiddleware_DisabledWithoutSecret(t *testing.T) {
	assert.Equal(t, http.StatusNoContent, serve(t, NewMiddleware(""), ""))
}

func TestAuthMiddleware(t *testing.T) {
	const secret = "s3cret"
	mw := NewMiddleware(secret)

	valid, err := utils.GenerateServiceToken(secret, "cron", constants.ScopeServiceToken, time.Minute)
	require.NoError(t, err)
	wrongScope, err := utils.GenerateServiceToken(secret, "cron", "other", time.Minute)
	require.NoError(t, err)
	otherKey, err := utils.GenerateServiceToken("different", "cron", constants.ScopeServiceToken, time.Minute)
	require.NoError(t, err)
	expired, err := utils.GenerateServiceToken(secret, "cron", constants.ScopeServiceToken, -time.Minute)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, serve(t, mw, "Bearer "+valid))
	assert.Equal(t, http.StatusUnauthorized, serve(t, mw, ""))
	assert.Equal(t, http.StatusUnauthorized, serve(t, mw, valid))
	assert.Equal(t, http.StatusUnauthorized, serve(t, mw, "Bearer "+otherKey))
	assert.Equal(t, http.StatusUnauthorized, serve(t, mw, "Bearer "+expired))
	assert.Equal(t, http.StatusForbidden, serve(t, mw, "Bearer "+wrongScope))
}
