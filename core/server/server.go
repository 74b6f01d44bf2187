// Package server assembles the HTTP API and the queue worker from
// configuration.
package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"meeting-scheduler/core/cache"
	"meeting-scheduler/core/config"
	"meeting-scheduler/core/database"
	"meeting-scheduler/core/logger"
	"meeting-scheduler/core/middleware"
	"meeting-scheduler/core/queue"
	"meeting-scheduler/core/storage"
	"meeting-scheduler/modules/meeting"
	"meeting-scheduler/modules/notification"
	notificationservice "meeting-scheduler/modules/notification/service"
	"meeting-scheduler/modules/participant"
	"meeting-scheduler/modules/scheduling"
	"meeting-scheduler/modules/scheduling/service"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

// App holds the connections shared by the API and the worker.
type App struct {
	Config        *config.Config
	DB            *database.Database
	Cache         *cache.RedisCache
	Queue         *queue.Client
	Scheduling    *service.SchedulingService
	Notifications *notificationservice.NotificationService
}

// NewApp connects to PostgreSQL and Redis. Callers must Close the result.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.InitDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	redisCache, err := cache.NewRedisCache(ctx, cfg.Redis)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	client := queue.NewClient(cfg.Redis, cfg.Queue)
	notifications := notification.NewService(db)

	return &App{
		Config:        cfg,
		DB:            db,
		Cache:         redisCache,
		Queue:         client,
		Scheduling:    scheduling.NewService(db, redisCache, client, storage.New(cfg.Storage), notifications, cfg.Scheduling),
		Notifications: notifications,
	}, nil
}

func (a *App) Close() {
	if err := a.Queue.Close(); err != nil {
		logger.Warn("Server:Close:Queue", err)
	}
	if err := a.Cache.Close(); err != nil {
		logger.Warn("Server:Close:Cache", err)
	}
	if err := a.DB.Close(); err != nil {
		logger.Warn("Server:Close:Database", err)
	}
}

// Router builds the Echo instance with every module registered.
func (a *App) Router() *echo.Echo {
	mw := middleware.NewMiddleware(a.Config.Auth.JWTSecret)
	e := NewRouter(a.Config.Server, mw, map[string]Checker{
		"database": a.DB,
		"redis":    a.Cache,
	})

	participant.Init(e, a.DB)
	meeting.Init(e, a.DB)
	notification.Init(e, a.Notifications)
	scheduling.Init(e, a.Scheduling, mw)
	return e
}

// Worker builds the queue worker with the scheduling handlers registered.
func (a *App) Worker() *queue.Worker {
	w := queue.NewWorker(a.Config.Redis, a.Config.Queue)
	scheduling.RegisterTasks(w, a.Scheduling)
	return w
}

// ServeHTTP runs the API until ctx is cancelled, then drains in-flight
// requests for up to server.shutdown_timeout.
func (a *App) ServeHTTP(ctx context.Context) error {
	e := a.Router()
	addr := a.Config.Server.Address()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server:Start", "addr", addr)
		if err := e.Start(addr); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.Config.Server.ShutdownTimeout)
	defer cancel()
	logger.Info("Server:Shutdown")
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Serve runs the API and the worker together. The first one to fail stops
// the other.
func (a *App) Serve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.ServeHTTP(ctx) })
	g.Go(func() error { return a.Worker().Run(ctx) })
	return g.Wait()
}
