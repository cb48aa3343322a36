package repository

import (
	"context"
	"fmt"

	"github.com/St1cky1/task-calendar/internal/entity"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CalendarEventRepository struct {
	db *pgxpool.Pool
}

func NewCalendarEventRepository(db *pgxpool.Pool) *CalendarEventRepository {
	return &CalendarEventRepository{
		db: db,
	}
}

func (r *CalendarEventRepository) Create(ctx context.Context, event *entity.CalendarEvent) error {
	query := `
	INSERT INTO "calendar_event" (calendar, command, task_id, task_title, occurred_at)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		event.Calendar,
		event.Command,
		event.TaskID,
		event.TaskTitle,
		event.Timestamp,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("insert calendar event: %w", err)
	}
	return nil
}

// ListByCalendar возвращает последние события календаря, новые первыми.
func (r *CalendarEventRepository) ListByCalendar(ctx context.Context, calendar string, limit int) ([]entity.CalendarEvent, error) {
	query := `
	SELECT id, calendar, command, task_id, task_title, occurred_at
	FROM "calendar_event"
	WHERE calendar = $1
	ORDER BY occurred_at DESC, id DESC
	LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, calendar, limit)
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	defer rows.Close()

	events := []entity.CalendarEvent{}
	for rows.Next() {
		var event entity.CalendarEvent
		err := rows.Scan(
			&event.ID,
			&event.Calendar,
			&event.Command,
			&event.TaskID,
			&event.TaskTitle,
			&event.Timestamp,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
