package usecase

import (
	"testing"
	"time"

	"github.com/St1cky1/task-calendar/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditTaskSuccess(t *testing.T) {
	cal := fixture()
	out, err := NewEditTaskUseCase(newGen()).Execute(cal, EditTaskInput{
		TaskID: "t1",
		Patch: entity.TaskPatch{
			Title:    entity.Some("Write final report"),
			Priority: entity.Some(entity.PriorityHigh),
			Tags:     entity.Some([]string{"work"}),
			EndDate:  entity.Some(date("2026-02-12")),
		},
	})

	require.NoError(t, err)
	require.NotNil(t, out.Task)
	assert.Equal(t, "Write final report", out.Task.Title)
	assert.Equal(t, entity.PriorityHigh, out.Task.Priority)
	assert.Equal(t, []string{"work"}, out.Task.Tags)
	assert.Equal(t, *date("2026-02-12"), *out.Task.EndDate)
	assert.Equal(t, "Write report", taskIn(t, cal, "t1").Title)
}

func TestEditTaskClearsDates(t *testing.T) {
	out, err := NewEditTaskUseCase(newGen()).Execute(fixture(), EditTaskInput{
		TaskID: "t1",
		Patch: entity.TaskPatch{
			StartDate: entity.Some[*time.Time](nil),
			EndDate:   entity.Some[*time.Time](nil),
		},
	})

	require.NoError(t, err)
	assert.Nil(t, out.Task.StartDate)
	assert.Nil(t, out.Task.EndDate)
}

func TestEditTaskIgnoresNonEditableFields(t *testing.T) {
	out, err := NewEditTaskUseCase(newGen()).Execute(fixture(), EditTaskInput{
		TaskID: "t1",
		Patch: entity.TaskPatch{
			Order:     entity.Some(99),
			Deadlines: entity.Some([]entity.Deadline{}),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Task.Order)
	assert.Len(t, out.Task.Deadlines, 1)
}

func TestEditTaskFailures(t *testing.T) {
	tests := []struct {
		name  string
		in    EditTaskInput
		field string
		stale bool
	}{
		{
			name:  "task not found",
			in:    EditTaskInput{TaskID: "missing", Patch: entity.TaskPatch{Title: entity.Some("x")}},
			field: "taskId",
		},
		{
			name:  "blank title",
			in:    EditTaskInput{TaskID: "t1", Patch: entity.TaskPatch{Title: entity.Some("  ")}},
			field: "title",
			stale: true,
		},
		{
			name:  "start after end",
			in:    EditTaskInput{TaskID: "t1", Patch: entity.TaskPatch{StartDate: entity.Some(date("2026-03-01"))}},
			field: "dateRange",
			stale: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := fixture()
			out, err := NewEditTaskUseCase(newGen()).Execute(cal, tt.in)
			requireFailed(t, err, cal, out.Calendar, tt.field)
			if tt.stale {
				require.NotNil(t, out.Task)
				assert.Equal(t, taskIn(t, cal, "t1"), *out.Task)
			} else {
				assert.Nil(t, out.Task)
			}
		})
	}
}

func TestEditTaskNotFoundIsSentinel(t *testing.T) {
	_, err := NewEditTaskUseCase(newGen()).Execute(fixture(), EditTaskInput{TaskID: "missing"})
	assert.ErrorIs(t, err, entity.ErrTaskNotFound)
}
