package usecase

import (
	"testing"
	"time"

	"github.com/St1cky1/task-calendar/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManageDeadlineAddExpandsEnd(t *testing.T) {
	cal := fixture()
	out, err := NewManageDeadlineUseCase(newGen()).Execute(cal, ManageDeadlineInput{
		TaskID: "t1",
		Action: DeadlineAdd,
		Title:  ptr("Ship"),
		Date:   entity.Some(date("2026-02-15")),
	})

	require.NoError(t, err)
	require.NotNil(t, out.Deadline)
	assert.Equal(t, "Ship", out.Deadline.Title)
	assert.Equal(t, *date("2026-02-15"), *out.Task.EndDate)
	assert.Equal(t, *date("2026-02-01"), *out.Task.StartDate)
	require.Len(t, out.Task.Deadlines, 2)
	assert.Equal(t, out.Deadline.ID, out.Task.Deadlines[1].ID)
	assert.Len(t, taskIn(t, cal, "t1").Deadlines, 1)
}

func TestManageDeadlineAddExpandsStart(t *testing.T) {
	out, err := NewManageDeadlineUseCase(newGen()).Execute(fixture(), ManageDeadlineInput{
		TaskID: "t1",
		Action: DeadlineAdd,
		Date:   entity.Some(date("2026-01-20")),
	})

	require.NoError(t, err)
	assert.Equal(t, *date("2026-01-20"), *out.Task.StartDate)
	assert.Equal(t, *date("2026-02-10"), *out.Task.EndDate)
}

func TestManageDeadlineAddDefaults(t *testing.T) {
	for _, in := range []entity.Optional[*time.Time]{{}, entity.Some[*time.Time](nil)} {
		out, err := NewManageDeadlineUseCase(newGen()).Execute(fixture(), ManageDeadlineInput{
			TaskID: "t1",
			Action: DeadlineAdd,
			Date:   in,
		})

		require.NoError(t, err)
		assert.Equal(t, entity.DefaultDeadlineTitle, out.Deadline.Title)
		assert.Equal(t, *date("2026-02-10"), *out.Deadline.Date)
		assert.False(t, out.Deadline.Completed)
	}
}

func TestManageDeadlineEdit(t *testing.T) {
	out, err := NewManageDeadlineUseCase(newGen()).Execute(fixture(), ManageDeadlineInput{
		TaskID:     "t1",
		Action:     DeadlineEdit,
		DeadlineID: "d1",
		Date:       entity.Some(date("2026-02-25")),
	})

	require.NoError(t, err)
	assert.Equal(t, "Draft", out.Deadline.Title)
	assert.Equal(t, *date("2026-02-25"), *out.Task.Deadlines[0].Date)
	assert.Equal(t, *date("2026-02-25"), *out.Task.EndDate)
}

func TestManageDeadlineEditClearsDate(t *testing.T) {
	out, err := NewManageDeadlineUseCase(newGen()).Execute(fixture(), ManageDeadlineInput{
		TaskID:     "t1",
		Action:     DeadlineEdit,
		DeadlineID: "d1",
		Title:      ptr("Renamed"),
		Date:       entity.Some[*time.Time](nil),
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", out.Task.Deadlines[0].Title)
	assert.Nil(t, out.Task.Deadlines[0].Date)
	assert.Equal(t, *date("2026-02-10"), *out.Task.EndDate)
}

func TestManageDeadlineDeleteKeepsPeriod(t *testing.T) {
	uc := NewManageDeadlineUseCase(newGen())
	added, err := uc.Execute(fixture(), ManageDeadlineInput{
		TaskID: "t1",
		Action: DeadlineAdd,
		Date:   entity.Some(date("2026-02-20")),
	})
	require.NoError(t, err)

	out, err := uc.Execute(added.Calendar, ManageDeadlineInput{
		TaskID:     "t1",
		Action:     DeadlineDelete,
		DeadlineID: added.Deadline.ID,
	})

	require.NoError(t, err)
	assert.Len(t, out.Task.Deadlines, 1)
	assert.Equal(t, *date("2026-02-20"), *out.Task.EndDate)
	assert.Equal(t, added.Deadline.ID, out.Deadline.ID)
}

func TestManageDeadlineToggle(t *testing.T) {
	cal := fixture()
	out, err := NewManageDeadlineUseCase(newGen()).Execute(cal, ManageDeadlineInput{
		TaskID:     "t1",
		Action:     DeadlineToggle,
		DeadlineID: "d1",
	})

	require.NoError(t, err)
	assert.True(t, out.Task.Deadlines[0].Completed)
	assert.True(t, out.Deadline.Completed)
	assert.False(t, taskIn(t, cal, "t1").Deadlines[0].Completed)
}

func TestManageDeadlineUnknownIDIsNoop(t *testing.T) {
	for _, action := range []DeadlineAction{DeadlineToggle, DeadlineDelete} {
		out, err := NewManageDeadlineUseCase(newGen()).Execute(fixture(), ManageDeadlineInput{
			TaskID:     "t1",
			Action:     action,
			DeadlineID: "missing",
		})

		require.NoError(t, err)
		assert.Nil(t, out.Deadline)
		assert.Len(t, out.Task.Deadlines, 1)
	}
}

func TestManageDeadlineFailures(t *testing.T) {
	tests := []struct {
		name  string
		in    ManageDeadlineInput
		field string
	}{
		{name: "task not found", in: ManageDeadlineInput{TaskID: "missing", Action: DeadlineAdd}, field: "taskId"},
		{name: "edit without id", in: ManageDeadlineInput{TaskID: "t1", Action: DeadlineEdit}, field: "deadlineId"},
		{name: "delete without id", in: ManageDeadlineInput{TaskID: "t1", Action: DeadlineDelete}, field: "deadlineId"},
		{name: "toggle without id", in: ManageDeadlineInput{TaskID: "t1", Action: DeadlineToggle}, field: "deadlineId"},
		{name: "edit unknown deadline", in: ManageDeadlineInput{TaskID: "t1", Action: DeadlineEdit, DeadlineID: "x"}, field: "deadlineId"},
		{name: "unknown action", in: ManageDeadlineInput{TaskID: "t1", Action: "archive"}, field: "action"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := fixture()
			out, err := NewManageDeadlineUseCase(newGen()).Execute(cal, tt.in)
			requireFailed(t, err, cal, out.Calendar, tt.field)
		})
	}
}

func TestManageDeadlineRollsBackInvalidTask(t *testing.T) {
	cal := fixture()
	cal.Tasks[0].Title = " "

	out, err := NewManageDeadlineUseCase(newGen()).Execute(cal, ManageDeadlineInput{
		TaskID: "t1",
		Action: DeadlineAdd,
		Title:  ptr("Ship"),
	})

	requireFailed(t, err, cal, out.Calendar, "title")
	require.NotNil(t, out.Deadline)
	assert.Equal(t, "Ship", out.Deadline.Title)
	assert.Len(t, out.Task.Deadlines, 1)
}
