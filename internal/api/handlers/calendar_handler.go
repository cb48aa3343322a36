package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/St1cky1/task-calendar/internal/entity"
	"github.com/St1cky1/task-calendar/internal/service"
	"github.com/St1cky1/task-calendar/internal/usecase"
	"github.com/go-chi/chi/v5"
)

const (
	defaultEventsLimit = 50
	maxEventsLimit     = 500
)

// CalendarService - то, что хендлерам нужно от service.CalendarService
type CalendarService interface {
	Dispatch(ctx context.Context, name string, cmd service.Command) (service.Response, error)
	Calendar(ctx context.Context, name string) (entity.TaskCalendar, error)
	SortedView(ctx context.Context, name, query string, mode usecase.SortMode) (service.TasksSortedPayload, error)
	Events(ctx context.Context, name string, limit int) ([]entity.CalendarEvent, error)
}

type CalendarHandler struct {
	calendars CalendarService
	logger    *slog.Logger
}

func NewCalendarHandler(calendars CalendarService, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendars: calendars,
		logger:    logger,
	}
}

// GetCalendar отдает документ календаря целиком
func (h *CalendarHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	cal, err := h.calendars.Calendar(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cal)
}

// Dispatch принимает конверт {type, payload} и возвращает конверт ответа
func (h *CalendarHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var cmd service.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	resp, err := h.calendars.Dispatch(r.Context(), chi.URLParam(r, "name"), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListTasks - фильтр (?query=) и сортировка по секциям (?sort=manual|deadline)
func (h *CalendarHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := h.calendars.SortedView(r.Context(), chi.URLParam(r, "name"), q.Get("query"), usecase.SortMode(q.Get("sort")))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CalendarHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit := defaultEventsLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxEventsLimit)
	}

	events, err := h.calendars.Events(r.Context(), chi.URLParam(r, "name"), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *CalendarHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, entity.ErrUnknownCommand), errors.Is(err, entity.ErrInvalidPayload):
		http.Error(w, err.Error(), http.StatusBadRequest) // 400
	case errors.Is(err, entity.ErrCalendarNotFound):
		http.Error(w, "calendar not found", http.StatusNotFound) // 404
	default:
		h.logger.Error("ошибка обработки запроса", "path", r.URL.Path, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError) // 500
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
