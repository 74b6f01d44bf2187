package middleware

import (
	"net/http"
	"strings"
	"time"

	"meeting-scheduler/core/constants"
	"meeting-scheduler/core/controller"
	"meeting-scheduler/core/errors"
	"meeting-scheduler/core/logger"
	"meeting-scheduler/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	jwtSecret string
}

// NewMiddleware builds the shared middleware set. An empty secret turns
// AuthMiddleware into a pass-through.
func NewMiddleware(jwtSecret string) *Middleware {
	return &Middleware{jwtSecret: jwtSecret}
}

// AuthMiddleware requires a valid service token carrying the scheduling scope.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.jwtSecret == "" {
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "missing authorization header")
			}
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "invalid authorization header format")
			}

			claims, err := utils.ValidateAndParseToken(m.jwtSecret, token)
			if err != nil {
				logger.Warn("Middleware:AuthMiddleware:InvalidToken", "error", err)
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "invalid or expired token")
			}
			if claims.Scope != constants.ScopeServiceToken {
				return controller.NewErrorResponse(http.StatusForbidden, errors.ErrForbidden, "token scope does not allow this operation")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// RequestLogger logs one line per request through the shared logger.
func (m *Middleware) RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			logger.Info("HTTP:Request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", res.Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", res.Header().Get(echo.HeaderXRequestID),
			)
			return nil
		}
	}
}
