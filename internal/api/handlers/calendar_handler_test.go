package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/St1cky1/task-calendar/internal/entity"
	"github.com/St1cky1/task-calendar/internal/service"
	"github.com/St1cky1/task-calendar/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockCalendarService struct {
	DispatchFunc   func(ctx context.Context, name string, cmd service.Command) (service.Response, error)
	CalendarFunc   func(ctx context.Context, name string) (entity.TaskCalendar, error)
	SortedViewFunc func(ctx context.Context, name, query string, mode usecase.SortMode) (service.TasksSortedPayload, error)
	EventsFunc     func(ctx context.Context, name string, limit int) ([]entity.CalendarEvent, error)
}

func (m *MockCalendarService) Dispatch(ctx context.Context, name string, cmd service.Command) (service.Response, error) {
	return m.DispatchFunc(ctx, name, cmd)
}

func (m *MockCalendarService) Calendar(ctx context.Context, name string) (entity.TaskCalendar, error) {
	return m.CalendarFunc(ctx, name)
}

func (m *MockCalendarService) SortedView(ctx context.Context, name, query string, mode usecase.SortMode) (service.TasksSortedPayload, error) {
	return m.SortedViewFunc(ctx, name, query, mode)
}

func (m *MockCalendarService) Events(ctx context.Context, name string, limit int) ([]entity.CalendarEvent, error) {
	return m.EventsFunc(ctx, name, limit)
}

func testRouter(svc CalendarService) http.Handler {
	h := NewCalendarHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Get("/calendars/{name}", h.GetCalendar)
	r.Post("/calendars/{name}/commands", h.Dispatch)
	r.Get("/calendars/{name}/tasks", h.ListTasks)
	r.Get("/calendars/{name}/events", h.ListEvents)
	return r
}

func TestCalendarHandler_Dispatch(t *testing.T) {
	var gotName string
	var gotCmd service.Command
	svc := &MockCalendarService{
		DispatchFunc: func(ctx context.Context, name string, cmd service.Command) (service.Response, error) {
			gotName, gotCmd = name, cmd
			return service.Response{Type: service.ResponseTaskAdded, Payload: map[string]string{"ok": "yes"}}, nil
		},
	}

	body := `{"type":"addTask","payload":{"title":"Report"}}`
	req := httptest.NewRequest(http.MethodPost, "/calendars/work/commands", strings.NewReader(body))
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "work", gotName)
	assert.Equal(t, service.CommandAddTask, gotCmd.Type)
	assert.JSONEq(t, `{"title":"Report"}`, string(gotCmd.Payload))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(service.ResponseTaskAdded), resp["type"])
}

func TestCalendarHandler_DispatchErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		code int
	}{
		{name: "invalid json", body: `{`, code: http.StatusBadRequest},
		{name: "unknown command", body: `{"type":"x"}`, err: entity.ErrUnknownCommand, code: http.StatusBadRequest},
		{name: "invalid payload", body: `{"type":"addTask"}`, err: entity.ErrInvalidPayload, code: http.StatusBadRequest},
		{name: "not found", body: `{"type":"ready"}`, err: entity.ErrCalendarNotFound, code: http.StatusNotFound},
		{name: "storage", body: `{"type":"addTask"}`, err: errors.New("db down"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockCalendarService{
				DispatchFunc: func(ctx context.Context, name string, cmd service.Command) (service.Response, error) {
					return service.Response{}, tt.err
				},
			}
			req := httptest.NewRequest(http.MethodPost, "/calendars/work/commands", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			testRouter(svc).ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestCalendarHandler_GetCalendar(t *testing.T) {
	svc := &MockCalendarService{
		CalendarFunc: func(ctx context.Context, name string) (entity.TaskCalendar, error) {
			return entity.TaskCalendar{Version: entity.CurrentVersion, Tasks: []entity.Task{{ID: "t1", Title: name}}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/calendars/home", nil)
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var cal entity.TaskCalendar
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cal))
	require.Len(t, cal.Tasks, 1)
	assert.Equal(t, "home", cal.Tasks[0].Title)
}

func TestCalendarHandler_ListTasks(t *testing.T) {
	var gotQuery string
	var gotMode usecase.SortMode
	svc := &MockCalendarService{
		SortedViewFunc: func(ctx context.Context, name, query string, mode usecase.SortMode) (service.TasksSortedPayload, error) {
			gotQuery, gotMode = query, mode
			return service.TasksSortedPayload{SortMode: mode}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/calendars/work/tasks?query=rep*&sort=deadline", nil)
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rep*", gotQuery)
	assert.Equal(t, usecase.SortDeadline, gotMode)
}

func TestCalendarHandler_ListEvents(t *testing.T) {
	var gotLimit int
	svc := &MockCalendarService{
		EventsFunc: func(ctx context.Context, name string, limit int) ([]entity.CalendarEvent, error) {
			gotLimit = limit
			return []entity.CalendarEvent{{ID: 1, Calendar: name, Command: "addTask"}}, nil
		},
	}

	tests := []struct {
		name  string
		query string
		code  int
		limit int
	}{
		{name: "default", query: "", code: http.StatusOK, limit: defaultEventsLimit},
		{name: "explicit", query: "?limit=5", code: http.StatusOK, limit: 5},
		{name: "clamped", query: "?limit=100000", code: http.StatusOK, limit: maxEventsLimit},
		{name: "invalid", query: "?limit=abc", code: http.StatusBadRequest},
		{name: "zero", query: "?limit=0", code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotLimit = 0
			req := httptest.NewRequest(http.MethodGet, "/calendars/work/events"+tt.query, nil)
			rec := httptest.NewRecorder()
			testRouter(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.limit, gotLimit)
		})
	}
}

type checkFunc func(ctx context.Context) error

func (f checkFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	ok := checkFunc(func(context.Context) error { return nil })
	down := checkFunc(func(context.Context) error { return errors.New("down") })

	rec := httptest.NewRecorder()
	Health(map[string]HealthChecker{"postgres": ok})(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	Health(map[string]HealthChecker{"postgres": ok, "redis": down})(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Checks["postgres"])
	assert.Equal(t, "down", body.Checks["redis"])
}
