package usecase

import (
	"testing"
	"time"

	"github.com/St1cky1/task-calendar/internal/entity"
	"github.com/St1cky1/task-calendar/internal/entity/entitytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func newGen() *entitytest.StepGenerator {
	return entitytest.NewStepGenerator(testStart, time.Minute)
}

func date(s string) *time.Time {
	t, err := entity.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &t
}

func ptr[T any](v T) *T {
	return &v
}

// fixture: календарь с одной задачей "t1" (waiting, 2026-02-01..2026-02-10, дедлайн d1 на 2026-02-05).
func fixture() entity.TaskCalendar {
	return entity.TaskCalendar{
		Version:      entity.CurrentVersion,
		LastModified: testStart,
		Tasks: []entity.Task{
			{
				ID:        "t1",
				Title:     "Write report",
				Memo:      "quarterly numbers",
				Status:    entity.StatusWaiting,
				CreatedAt: testStart,
				StartDate: date("2026-02-01"),
				EndDate:   date("2026-02-10"),
				Deadlines: []entity.Deadline{{ID: "d1", Title: "Draft", Date: date("2026-02-05")}},
				Order:     1,
				Tags:      []string{},
				Priority:  entity.PriorityMedium,
				Color:     entity.ColorBlue,
			},
			{
				ID:        "t2",
				Title:     "Unscheduled",
				Status:    entity.StatusUndefined,
				CreatedAt: testStart,
				Deadlines: []entity.Deadline{},
				Order:     2,
				Tags:      []string{},
				Priority:  entity.PriorityLow,
				Color:     entity.ColorGreen,
			},
		},
	}
}

// requireFailed проверяет ошибку валидации и то, что календарь не изменился.
func requireFailed(t *testing.T, err error, before, after entity.TaskCalendar, field string) entity.ValidationErrors {
	t.Helper()
	require.Error(t, err)
	var errs entity.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.HasField(field), "expected error for field %q, got %v", field, errs)
	assert.Equal(t, before, after)
	return errs
}

func taskIn(t *testing.T, cal entity.TaskCalendar, id string) entity.Task {
	t.Helper()
	task, ok := entity.GetTaskByID(cal, id)
	require.True(t, ok, "task %s not found", id)
	return task
}
