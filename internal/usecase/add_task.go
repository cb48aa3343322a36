package usecase

import (
	"github.com/St1cky1/task-calendar/internal/entity"
)

type AddTaskInput struct {
	Title *string
	Memo  *string
	Link  *string
}

type AddTaskOutput struct {
	Calendar entity.TaskCalendar
	NewTask  entity.Task
}

// AddTaskUseCase создает задачу в статусе waiting. Никогда не падает.
type AddTaskUseCase struct {
	gen entity.Generator
}

func NewAddTaskUseCase(gen entity.Generator) *AddTaskUseCase {
	return &AddTaskUseCase{gen: gen}
}

func (uc *AddTaskUseCase) Execute(cal entity.TaskCalendar, in AddTaskInput) AddTaskOutput {
	p := entity.TaskPatch{
		Title:  entity.Some(entity.DefaultTaskTitle),
		Memo:   entity.Some(""),
		Link:   entity.Some(""),
		Status: entity.Some(entity.StatusWaiting),
	}
	if in.Title != nil {
		p.Title = entity.Some(*in.Title)
	}
	if in.Memo != nil {
		p.Memo = entity.Some(*in.Memo)
	}
	if in.Link != nil {
		p.Link = entity.Some(*in.Link)
	}

	out, task := entity.AddTask(cal, uc.gen, p)
	return AddTaskOutput{Calendar: out, NewTask: task}
}
