package repository

import (
	"context"

	"github.com/St1cky1/task-calendar/internal/entity"
)

// ICalendarRepository - хранилище календарей по имени
type ICalendarRepository interface {
	Load(ctx context.Context, name string) (entity.TaskCalendar, error)
	Save(ctx context.Context, name string, cal entity.TaskCalendar) error
	Create(ctx context.Context, name string) (entity.TaskCalendar, error)
	Exists(ctx context.Context, name string) (bool, error)
}

// ICalendarEventRepository - журнал успешных команд
type ICalendarEventRepository interface {
	Create(ctx context.Context, event *entity.CalendarEvent) error
	ListByCalendar(ctx context.Context, calendar string, limit int) ([]entity.CalendarEvent, error)
}
