package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	corecontroller "meeting-scheduler/core/controller"
	"meeting-scheduler/core/errors"
	"meeting-scheduler/core/params"
	"meeting-scheduler/modules/notification/dto"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	unreadOnly bool
	marked     []uuid.UUID
}

func (s *stubService) GetNotifications(_ context.Context, _ uuid.UUID, unreadOnly bool, qp params.QueryParams) (*dto.PaginatedNotificationResponse, *errors.AppError) {
	s.unreadOnly = unreadOnly
	return &dto.PaginatedNotificationResponse{Items: []dto.NotificationResponse{}, PageNumber: qp.PageNumber, PageSize: qp.PageSize}, nil
}

func (s *stubService) CountUnread(context.Context, uuid.UUID) (*dto.UnreadCountResponse, *errors.AppError) {
	return &dto.UnreadCountResponse{Count: 3}, nil
}

func (s *stubService) MarkAsRead(_ context.Context, _ uuid.UUID, ids []uuid.UUID) (*dto.MarkAsReadResponse, *errors.AppError) {
	s.marked = ids
	return &dto.MarkAsReadResponse{Updated: int64(len(ids))}, nil
}

func (s *stubService) MarkAllAsRead(context.Context, uuid.UUID) (*dto.MarkAsReadResponse, *errors.AppError) {
	return &dto.MarkAsReadResponse{}, nil
}

func (s *stubService) NotifyMeetingScheduled(context.Context, *dto.MeetingScheduled) error { return nil }

func newContext(method, target, body, id string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues(id)
	return ctx, rec
}

func TestGetNotifications(t *testing.T) {
	svc := &stubService{}
	c := NewNotificationController(svc)

	ctx, rec := newContext(http.MethodGet, "/?unread=true", "", uuid.NewString())
	require.NoError(t, c.GetNotifications(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.unreadOnly)

	ctx, _ = newContext(http.MethodGet, "/", "", "bogus")
	var he *echo.HTTPError
	require.ErrorAs(t, c.GetNotifications(ctx), &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCountUnread(t *testing.T) {
	c := NewNotificationController(&stubService{})

	ctx, rec := newContext(http.MethodGet, "/", "", uuid.NewString())
	require.NoError(t, c.CountUnread(ctx))
	assert.Contains(t, rec.Body.String(), `"count":3`)
}

func TestMarkAsRead(t *testing.T) {
	svc := &stubService{}
	c := NewNotificationController(svc)
	id := uuid.New()

	ctx, rec := newContext(http.MethodPut, "/", `{"ids":["`+id.String()+`"]}`, uuid.NewString())
	require.NoError(t, c.MarkAsRead(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uuid.UUID{id}, svc.marked)

	ctx, _ = newContext(http.MethodPut, "/", `{"ids":[]}`, uuid.NewString())
	var he *echo.HTTPError
	require.ErrorAs(t, c.MarkAsRead(ctx), &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	body, ok := he.Message.(*corecontroller.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, errors.ErrInvalidRequestData, body.Code)
}
