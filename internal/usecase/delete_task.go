package usecase

import (
	"github.com/St1cky1/task-calendar/internal/entity"
)

type DeleteTaskInput struct {
	TaskID string
}

type DeleteTaskOutput struct {
	Calendar         entity.TaskCalendar
	DeletedTaskTitle string
}

type DeleteTaskUseCase struct {
	clock entity.Clock
}

func NewDeleteTaskUseCase(clock entity.Clock) *DeleteTaskUseCase {
	return &DeleteTaskUseCase{clock: clock}
}

func (uc *DeleteTaskUseCase) Execute(cal entity.TaskCalendar, in DeleteTaskInput) (DeleteTaskOutput, error) {
	existing, ok := entity.GetTaskByID(cal, in.TaskID)
	if !ok {
		return DeleteTaskOutput{Calendar: cal}, taskNotFound()
	}
	return DeleteTaskOutput{
		Calendar:         entity.DeleteTask(cal, uc.clock, in.TaskID),
		DeletedTaskTitle: existing.Title,
	}, nil
}
