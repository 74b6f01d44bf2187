// Package queue wraps asynq for background jobs: a Client that enqueues
// tasks from request handlers and a Worker that runs registered handlers.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"meeting-scheduler/core/config"
	"meeting-scheduler/core/logger"

	"github.com/hibiken/asynq"
)

// Enqueuer is what request-side code depends on.
type Enqueuer interface {
	Enqueue(ctx context.Context, taskType string, payload any, opts ...asynq.Option) (string, error)
}

type Client struct {
	client *asynq.Client
	queue  string
	retry  int
}

var _ Enqueuer = (*Client)(nil)

func redisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
}

func NewClient(redisCfg config.RedisConfig, cfg config.QueueConfig) *Client {
	return &Client{
		client: asynq.NewClient(redisOpt(redisCfg)),
		queue:  cfg.Queue,
		retry:  cfg.MaxRetry,
	}
}

// Enqueue JSON-encodes payload and submits it. The configured queue and
// retry policy are applied before caller options, so callers can override them.
func (c *Client) Enqueue(ctx context.Context, taskType string, payload any, opts ...asynq.Option) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode %s payload: %w", taskType, err)
	}
	all := append([]asynq.Option{asynq.Queue(c.queue), asynq.MaxRetry(c.retry)}, opts...)
	info, err := c.client.EnqueueContext(ctx, asynq.NewTask(taskType, data), all...)
	if err != nil {
		logger.Error("Queue:Enqueue", "task_type", taskType, "error", err)
		return "", err
	}
	logger.Info("Queue:Enqueue:Success", "task_type", taskType, "task_id", info.ID, "queue", info.Queue)
	return info.ID, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewWorker(redisCfg config.RedisConfig, cfg config.QueueConfig) *Worker {
	server := asynq.NewServer(redisOpt(redisCfg), asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues:      map[string]int{cfg.Queue: 1},
		Logger:      asynqLogger{},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Queue:Worker:TaskFailed", "task_type", task.Type(), "error", err)
		}),
	})
	return &Worker{server: server, mux: asynq.NewServeMux()}
}

func (w *Worker) Handle(taskType string, handler asynq.HandlerFunc) {
	w.mux.HandleFunc(taskType, handler)
}

// Run blocks until ctx is cancelled, then shuts the server down.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	logger.Info("Queue:Worker:Started")
	<-ctx.Done()
	w.server.Shutdown()
	logger.Info("Queue:Worker:Stopped")
	return nil
}

// Decode unmarshals a task payload.
func Decode(task *asynq.Task, dest any) error {
	if err := json.Unmarshal(task.Payload(), dest); err != nil {
		return fmt.Errorf("decode %s payload: %w: %w", task.Type(), err, asynq.SkipRetry)
	}
	return nil
}

// asynqLogger routes asynq's internal logging through the shared logger.
type asynqLogger struct{}

func (asynqLogger) Debug(args ...any) { logger.Debug("asynq", "detail", fmt.Sprint(args...)) }
func (asynqLogger) Info(args ...any)  { logger.Info("asynq", "detail", fmt.Sprint(args...)) }
func (asynqLogger) Warn(args ...any)  { logger.Warn("asynq", "detail", fmt.Sprint(args...)) }
func (asynqLogger) Error(args ...any) { logger.Error("asynq", "detail", fmt.Sprint(args...)) }
func (asynqLogger) Fatal(args ...any) { logger.Error("asynq:fatal", "detail", fmt.Sprint(args...)) }
