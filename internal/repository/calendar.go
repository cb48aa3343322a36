package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/St1cky1/task-calendar/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CalendarRepository хранит календарь целиком как jsonb-документ.
type CalendarRepository struct {
	db    *pgxpool.Pool
	clock entity.Clock
}

func NewCalendarRepository(db *pgxpool.Pool, clock entity.Clock) *CalendarRepository {
	return &CalendarRepository{
		db:    db,
		clock: clock,
	}
}

func (r *CalendarRepository) Load(ctx context.Context, name string) (entity.TaskCalendar, error) {
	query := `
	SELECT document
	FROM "task_calendar"
	WHERE name = $1
	`

	var document []byte
	err := r.db.QueryRow(ctx, query, name).Scan(&document)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.TaskCalendar{}, entity.ErrCalendarNotFound
		}
		return entity.TaskCalendar{}, fmt.Errorf("load calendar %s: %w", name, err)
	}

	var cal entity.TaskCalendar
	if err := json.Unmarshal(document, &cal); err != nil {
		return entity.TaskCalendar{}, fmt.Errorf("decode calendar %s: %w", name, err)
	}
	return cal, nil
}

func (r *CalendarRepository) Save(ctx context.Context, name string, cal entity.TaskCalendar) error {
	document, err := json.Marshal(cal)
	if err != nil {
		return fmt.Errorf("encode calendar %s: %w", name, err)
	}

	query := `
	INSERT INTO "task_calendar" (name, version, document, last_modified)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (name) DO UPDATE
	SET version = EXCLUDED.version,
		document = EXCLUDED.document,
		last_modified = EXCLUDED.last_modified,
		updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(ctx, query, name, cal.Version, document, cal.LastModified); err != nil {
		return fmt.Errorf("save calendar %s: %w", name, err)
	}
	return nil
}

// Create сохраняет пустой календарь. Существующий календарь не перезаписывается.
func (r *CalendarRepository) Create(ctx context.Context, name string) (entity.TaskCalendar, error) {
	cal := entity.NewTaskCalendar(r.clock)
	document, err := json.Marshal(cal)
	if err != nil {
		return entity.TaskCalendar{}, fmt.Errorf("encode calendar %s: %w", name, err)
	}

	query := `
	INSERT INTO "task_calendar" (name, version, document, last_modified)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (name) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query, name, cal.Version, document, cal.LastModified)
	if err != nil {
		return entity.TaskCalendar{}, fmt.Errorf("create calendar %s: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return r.Load(ctx, name)
	}
	return cal, nil
}

func (r *CalendarRepository) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM "task_calendar" WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check calendar %s: %w", name, err)
	}
	return exists, nil
}
