package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	corecontroller "meeting-scheduler/core/controller"
	"meeting-scheduler/core/errors"
	"meeting-scheduler/modules/scheduling/dto"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	startErr *errors.AppError
	latest   bool
	runID    string
	preview  *dto.PreviewRequest
}

func (s *stubService) StartRun(context.Context) (*dto.RunResponse, *errors.AppError) {
	if s.startErr != nil {
		return nil, s.startErr
	}
	return &dto.RunResponse{RunID: "run_1", Status: dto.RunStatusPending, Meetings: []dto.MeetingPlaceholder{}}, nil
}

func (s *stubService) ExecuteRun(context.Context, string) error { return nil }

func (s *stubService) GetRun(_ context.Context, runID string) (*dto.RunStatus, *errors.AppError) {
	s.runID = runID
	if runID == "run_missing" {
		return nil, errors.NewAppError(errors.ErrNotFound, "scheduling run not found", nil)
	}
	return &dto.RunStatus{RunID: runID, Status: dto.RunStatusCompleted}, nil
}

func (s *stubService) GetLatestRun(context.Context) (*dto.RunStatus, *errors.AppError) {
	s.latest = true
	return &dto.RunStatus{RunID: "run_9", Status: dto.RunStatusRunning}, nil
}

func (s *stubService) GetStatus(context.Context) ([]dto.MeetingStatusResponse, *errors.AppError) {
	return []dto.MeetingStatusResponse{}, nil
}

func (s *stubService) Preview(_ context.Context, req *dto.PreviewRequest) (*dto.PreviewResponse, *errors.AppError) {
	s.preview = req
	return &dto.PreviewResponse{Outcomes: []dto.OutcomeResponse{}}, nil
}

func newContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestRunScheduling(t *testing.T) {
	c := NewSchedulingController(&stubService{})

	ctx, rec := newContext(http.MethodPost, "")
	require.NoError(t, c.RunScheduling(ctx))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), `"run_id":"run_1"`)
}

func TestRunScheduling_Errors(t *testing.T) {
	tests := []struct {
		code   errors.ErrorCode
		status int
	}{
		{errors.ErrSchedulingInProgress, http.StatusConflict},
		{errors.ErrEnqueueFailed, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			c := NewSchedulingController(&stubService{startErr: errors.NewAppError(tt.code, "nope", nil)})

			ctx, _ := newContext(http.MethodPost, "")
			var he *echo.HTTPError
			require.ErrorAs(t, c.RunScheduling(ctx), &he)
			assert.Equal(t, tt.status, he.Code)
			body, ok := he.Message.(*corecontroller.ErrorResponse)
			require.True(t, ok)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestGetRun(t *testing.T) {
	svc := &stubService{}
	c := NewSchedulingController(svc)

	ctx, rec := newContext(http.MethodGet, "")
	ctx.SetParamNames("id")
	ctx.SetParamValues("latest")
	require.NoError(t, c.GetRun(ctx))
	assert.True(t, svc.latest)
	assert.Contains(t, rec.Body.String(), `"run_id":"run_9"`)

	ctx, _ = newContext(http.MethodGet, "")
	ctx.SetParamNames("id")
	ctx.SetParamValues("run_missing")
	var he *echo.HTTPError
	require.ErrorAs(t, c.GetRun(ctx), &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
	assert.Equal(t, "run_missing", svc.runID)
}

func TestPreview(t *testing.T) {
	svc := &stubService{}
	c := NewSchedulingController(svc)

	ctx, rec := newContext(http.MethodPost, "")
	require.NoError(t, c.Preview(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.preview.MeetingIDs)

	id := uuid.New()
	ctx, _ = newContext(http.MethodPost, `{"meeting_ids":["`+id.String()+`"]}`)
	require.NoError(t, c.Preview(ctx))
	assert.Equal(t, []uuid.UUID{id}, svc.preview.MeetingIDs)

	ctx, _ = newContext(http.MethodPost, `{"meeting_ids":`)
	var he *echo.HTTPError
	require.ErrorAs(t, c.Preview(ctx), &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
