package api

import (
	"log/slog"

	"github.com/St1cky1/task-calendar/internal/api/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(calendars handlers.CalendarService, checks map[string]handlers.HealthChecker, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	calendarHandler := handlers.NewCalendarHandler(calendars, logger)

	r.Get("/healthz", handlers.Health(checks))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/calendars/{name}", func(r chi.Router) {
			r.Get("/", calendarHandler.GetCalendar)
			r.Post("/commands", calendarHandler.Dispatch)
			r.Get("/tasks", calendarHandler.ListTasks)
			r.Get("/events", calendarHandler.ListEvents)
		})
	})

	return r
}
