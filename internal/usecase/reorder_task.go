package usecase

import (
	"github.com/St1cky1/task-calendar/internal/entity"
)

type ReorderTaskInput struct {
	TaskID   string
	NewIndex int
}

type ReorderTaskOutput struct {
	Calendar entity.TaskCalendar
	Task     *entity.Task
}

type ReorderTaskUseCase struct {
	clock entity.Clock
}

func NewReorderTaskUseCase(clock entity.Clock) *ReorderTaskUseCase {
	return &ReorderTaskUseCase{clock: clock}
}

func (uc *ReorderTaskUseCase) Execute(cal entity.TaskCalendar, in ReorderTaskInput) (ReorderTaskOutput, error) {
	existing, ok := entity.GetTaskByID(cal, in.TaskID)
	if !ok {
		return ReorderTaskOutput{Calendar: cal}, taskNotFound()
	}
	if in.NewIndex < 0 {
		return ReorderTaskOutput{Calendar: cal, Task: &existing},
			entity.NewFieldError("newIndex", entity.MsgIndexMustBePositive, entity.ErrInvalidIndex)
	}

	out := entity.ReorderTask(cal, uc.clock, in.TaskID, in.NewIndex)
	task, _ := entity.GetTaskByID(out, in.TaskID)
	return ReorderTaskOutput{Calendar: out, Task: &task}, nil
}
