package usecase

import (
	"testing"

	"github.com/St1cky1/task-calendar/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTaskDefaults(t *testing.T) {
	cal := fixture()
	out := NewAddTaskUseCase(newGen()).Execute(cal, AddTaskInput{})

	require.Len(t, out.Calendar.Tasks, 3)
	assert.Equal(t, entity.DefaultTaskTitle, out.NewTask.Title)
	assert.Equal(t, entity.StatusWaiting, out.NewTask.Status)
	assert.Equal(t, "", out.NewTask.Memo)
	assert.Equal(t, "", out.NewTask.Link)
	assert.Equal(t, 3, out.NewTask.Order)
	assert.Equal(t, out.NewTask, out.Calendar.Tasks[2])
	assert.Len(t, cal.Tasks, 2)
}

func TestAddTaskWithFields(t *testing.T) {
	out := NewAddTaskUseCase(newGen()).Execute(fixture(), AddTaskInput{
		Title: ptr("Call Bob"),
		Memo:  ptr("about the offsite"),
		Link:  ptr("https://example.com"),
	})

	assert.Equal(t, "Call Bob", out.NewTask.Title)
	assert.Equal(t, "about the offsite", out.NewTask.Memo)
	assert.Equal(t, "https://example.com", out.NewTask.Link)
}
