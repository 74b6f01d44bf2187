package task

import (
	"context"
	stderrors "errors"
	"testing"

	"meeting-scheduler/core/constants"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	runs []string
	err  error
}

func (r *stubRunner) ExecuteRun(_ context.Context, runID string) error {
	r.runs = append(r.runs, runID)
	return r.err
}

func TestRunHandler(t *testing.T) {
	runner := &stubRunner{}
	handler := NewRunHandler(runner)

	task := asynq.NewTask(constants.SchedulingRunTaskType, []byte(`{"run_id":"run_abc"}`))
	require.NoError(t, handler(context.Background(), task))
	assert.Equal(t, []string{"run_abc"}, runner.runs)
}

func TestRunHandler_NeverRetries(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		err     error
	}{
		{"bad payload", `{"run_id":`, nil},
		{"missing run id", `{}`, nil},
		{"run failed", `{"run_id":"run_abc"}`, stderrors.New("database unavailable")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewRunHandler(&stubRunner{err: tt.err})
			err := handler(context.Background(), asynq.NewTask(constants.SchedulingRunTaskType, []byte(tt.payload)))
			require.Error(t, err)
			assert.ErrorIs(t, err, asynq.SkipRetry)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}
