package entity

import (
	"testing"
	"time"

	"github.com/St1cky1/task-calendar/internal/entity/entitytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func newGen() *entitytest.StepGenerator {
	return entitytest.NewStepGenerator(testStart, time.Minute)
}

func date(s string) *time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestNewTaskDefaults(t *testing.T) {
	gen := newGen()
	task := NewTask(gen, TaskPatch{})

	assert.Equal(t, "id-1", task.ID)
	assert.Equal(t, DefaultTaskTitle, task.Title)
	assert.Equal(t, "", task.Memo)
	assert.Equal(t, "", task.Link)
	assert.Equal(t, StatusUndefined, task.Status)
	assert.Equal(t, testStart, task.CreatedAt)
	assert.Nil(t, task.StartDate)
	assert.Nil(t, task.EndDate)
	assert.Empty(t, task.Deadlines)
	assert.NotNil(t, task.Deadlines)
	assert.Equal(t, 0, task.Order)
	assert.NotNil(t, task.Tags)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Equal(t, ColorBlue, task.Color)
}

func TestNewTaskUniqueIDs(t *testing.T) {
	gen := newGen()
	a := NewTask(gen, TaskPatch{})
	b := NewTask(gen, TaskPatch{})
	assert.NotEqual(t, a.ID, b.ID)

	sys := SystemGenerator()
	assert.NotEqual(t, sys.NewID(), sys.NewID())
}

func TestNewDeadlineDefaults(t *testing.T) {
	d := NewDeadline(newGen(), DeadlinePatch{})
	assert.Equal(t, DefaultDeadlineTitle, d.Title)
	assert.Nil(t, d.Date)
	assert.False(t, d.Completed)

	d = NewDeadline(newGen(), DeadlinePatch{Title: Some("Review"), Date: Some(date("2026-02-05"))})
	assert.Equal(t, "Review", d.Title)
	assert.Equal(t, *date("2026-02-05"), *d.Date)
}

func TestValidateTask(t *testing.T) {
	tests := []struct {
		name   string
		task   Task
		fields []string
	}{
		{
			name: "valid",
			task: Task{Title: "ok", StartDate: date("2026-02-01"), EndDate: date("2026-02-10")},
		},
		{
			name:   "blank title",
			task:   Task{Title: "   "},
			fields: []string{"title"},
		},
		{
			name:   "start after end",
			task:   Task{Title: "ok", StartDate: date("2026-02-10"), EndDate: date("2026-02-01")},
			fields: []string{"dateRange"},
		},
		{
			name:   "same day range",
			task:   Task{Title: "ok", StartDate: date("2026-02-10"), EndDate: date("2026-02-10")},
			fields: nil,
		},
		{
			name: "deadline before start",
			task: Task{Title: "ok", StartDate: date("2026-02-05"), Deadlines: []Deadline{
				{ID: "d1", Title: "early", Date: date("2026-02-01")},
			}},
			fields: []string{"deadline-d1"},
		},
		{
			name: "deadline after end with no start",
			task: Task{Title: "ok", EndDate: date("2026-02-05"), Deadlines: []Deadline{
				{ID: "d1", Title: "late", Date: date("2026-02-06")},
			}},
			fields: []string{"deadline-d1"},
		},
		{
			name: "undated deadline is ignored",
			task: Task{Title: "ok", StartDate: date("2026-02-05"), EndDate: date("2026-02-06"), Deadlines: []Deadline{
				{ID: "d1", Title: "someday"},
			}},
		},
		{
			name:   "title and range together",
			task:   Task{Title: "", StartDate: date("2026-02-10"), EndDate: date("2026-02-01")},
			fields: []string{"title", "dateRange"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateTask(tt.task)
			var got []string
			for _, e := range errs {
				got = append(got, e.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestValidateTaskErrorsWrapSentinel(t *testing.T) {
	errs := ValidateTask(Task{Title: ""})
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs, ErrInvalidTaskData)
	assert.Equal(t, MsgTitleRequired, errs[0].Message)
}

func TestIsTaskOverdue(t *testing.T) {
	now := *date("2026-03-01")
	assert.False(t, IsTaskOverdue(Task{}, now))
	assert.True(t, IsTaskOverdue(Task{Status: StatusWaiting, EndDate: date("2026-02-01")}, now))
	assert.False(t, IsTaskOverdue(Task{Status: StatusCompleted, EndDate: date("2026-02-01")}, now))
	assert.False(t, IsTaskOverdue(Task{Status: StatusWaiting, EndDate: date("2026-03-02")}, now))
}

func TestHasUncompletedDeadlines(t *testing.T) {
	assert.False(t, HasUncompletedDeadlines(Task{}))
	assert.False(t, HasUncompletedDeadlines(Task{Deadlines: []Deadline{{Completed: true}}}))
	assert.True(t, HasUncompletedDeadlines(Task{Deadlines: []Deadline{{Completed: true}, {}}}))
}

func TestNextDeadline(t *testing.T) {
	task := Task{Deadlines: []Deadline{
		{ID: "done", Date: date("2026-02-01"), Completed: true},
		{ID: "undated"},
		{ID: "late", Date: date("2026-02-20")},
		{ID: "first", Date: date("2026-02-05")},
		{ID: "tie", Date: date("2026-02-05")},
	}}

	next, ok := NextDeadline(task)
	require.True(t, ok)
	assert.Equal(t, "first", next.ID)

	_, ok = NextDeadline(Task{Deadlines: []Deadline{{ID: "undated"}}})
	assert.False(t, ok)
}

func TestTaskDuration(t *testing.T) {
	assert.Equal(t, 0, TaskDuration(Task{StartDate: date("2026-02-01")}))
	assert.Equal(t, 1, TaskDuration(Task{StartDate: date("2026-02-01"), EndDate: date("2026-02-01")}))
	assert.Equal(t, 10, TaskDuration(Task{StartDate: date("2026-02-01"), EndDate: date("2026-02-10")}))
	assert.Equal(t, 1, TaskDuration(Task{StartDate: date("2026-02-01T00:00:00Z"), EndDate: date("2026-02-01T23:00:00Z")}))
}

func TestMoveTaskDates(t *testing.T) {
	task := Task{
		StartDate: date("2026-02-01"),
		EndDate:   date("2026-02-10"),
		Deadlines: []Deadline{{ID: "a", Date: date("2026-02-05")}, {ID: "b"}},
	}

	moved := MoveTaskDates(task, 3)
	assert.Equal(t, *date("2026-02-04"), *moved.StartDate)
	assert.Equal(t, *date("2026-02-13"), *moved.EndDate)
	assert.Equal(t, *date("2026-02-08"), *moved.Deadlines[0].Date)
	assert.Nil(t, moved.Deadlines[1].Date)

	// исходная задача не меняется
	assert.Equal(t, *date("2026-02-01"), *task.StartDate)
	assert.Equal(t, *date("2026-02-05"), *task.Deadlines[0].Date)

	back := MoveTaskDates(task, -1)
	assert.Equal(t, *date("2026-01-31"), *back.StartDate)

	undated := MoveTaskDates(Task{}, 5)
	assert.Nil(t, undated.StartDate)
	assert.Nil(t, undated.EndDate)
}

func TestExtendTask(t *testing.T) {
	task := Task{StartDate: date("2026-02-01"), EndDate: date("2026-02-10")}

	s := ExtendTaskStart(task, *date("2026-01-20"))
	assert.Equal(t, *date("2026-01-20"), *s.StartDate)
	assert.Equal(t, *date("2026-02-10"), *s.EndDate)

	e := ExtendTaskEnd(task, *date("2026-02-20"))
	assert.Equal(t, *date("2026-02-01"), *e.StartDate)
	assert.Equal(t, *date("2026-02-20"), *e.EndDate)
	assert.Equal(t, *date("2026-02-10"), *task.EndDate)
}

func TestTaskPatchApplyDoesNotAlias(t *testing.T) {
	tags := []string{"a"}
	task := TaskPatch{Tags: Some(tags)}.Apply(Task{})
	tags[0] = "changed"
	assert.Equal(t, []string{"a"}, task.Tags)

	cleared := TaskPatch{StartDate: Some[*time.Time](nil)}.Apply(Task{StartDate: date("2026-02-01")})
	assert.Nil(t, cleared.StartDate)
}
