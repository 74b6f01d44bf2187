package server

import (
	"context"
	"net/http"
	"sort"
	"time"

	"meeting-scheduler/core/config"
	"meeting-scheduler/core/controller"
	"meeting-scheduler/core/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Checker is a dependency reported by /health.
type Checker interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type routeInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// NewRouter returns an Echo instance with the common middleware and the
// /health and / endpoints. Modules register their routes on it afterwards.
func NewRouter(cfg config.ServerConfig, mw *middleware.Middleware, checks map[string]Checker) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(mw.RequestLogger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	base := controller.NewBaseController()

	e.GET("/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		for name, check := range checks {
			if err := check.Ping(ctx); err != nil {
				resp.Status = "degraded"
				resp.Checks[name] = err.Error()
				continue
			}
			resp.Checks[name] = "ok"
		}
		if resp.Status != "ok" {
			return c.JSON(http.StatusServiceUnavailable, resp)
		}
		return c.JSON(http.StatusOK, resp)
	})

	e.GET("/", func(c echo.Context) error {
		routes := make([]routeInfo, 0, len(e.Routes()))
		for _, r := range e.Routes() {
			if r.Method == echo.RouteNotFound {
				continue
			}
			routes = append(routes, routeInfo{Method: r.Method, Path: r.Path})
		}
		sort.Slice(routes, func(i, j int) bool {
			if routes[i].Path != routes[j].Path {
				return routes[i].Path < routes[j].Path
			}
			return routes[i].Method < routes[j].Method
		})
		return base.SuccessResponse(c, map[string]any{
			"name":   "meeting-scheduler",
			"routes": routes,
		}, "success")
	})

	return e
}
