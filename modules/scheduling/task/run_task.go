// Package task holds the queue handlers of the scheduling module.
package task

import (
	"context"
	"fmt"

	"meeting-scheduler/core/constants"
	"meeting-scheduler/core/logger"
	"meeting-scheduler/core/queue"
	"meeting-scheduler/modules/scheduling/dto"

	"github.com/hibiken/asynq"
)

// Runner executes an accepted scheduling run.
type Runner interface {
	ExecuteRun(ctx context.Context, runID string) error
}

// NewRunHandler returns the handler for constants.SchedulingRunTaskType.
// A run is never retried: its outcome is already recorded in the run status.
func NewRunHandler(runner Runner) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload dto.RunPayload
		if err := queue.Decode(t, &payload); err != nil {
			logger.Error("Task:SchedulingRun:Decode", err)
			return err
		}
		if payload.RunID == "" {
			return fmt.Errorf("scheduling run task without run_id: %w", asynq.SkipRetry)
		}

		logger.Info("Task:SchedulingRun:Start", "run_id", payload.RunID)
		if err := runner.ExecuteRun(ctx, payload.RunID); err != nil {
			return fmt.Errorf("run %s: %w: %w", payload.RunID, err, asynq.SkipRetry)
		}
		return nil
	}
}

// Register wires the scheduling handlers into w.
func Register(w *queue.Worker, runner Runner) {
	w.Handle(constants.SchedulingRunTaskType, NewRunHandler(runner))
}
