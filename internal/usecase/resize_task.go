package usecase

import (
	"time"

	"github.com/St1cky1/task-calendar/internal/entity"
)

type ResizeEdge string

const (
	EdgeStart ResizeEdge = "start"
	EdgeEnd   ResizeEdge = "end"
)

type ResizeTaskInput struct {
	TaskID  string
	Edge    ResizeEdge
	NewDate time.Time
}

type ResizeTaskOutput struct {
	Calendar entity.TaskCalendar
	Task     *entity.Task
}

type ResizeTaskUseCase struct {
	clock entity.Clock
}

func NewResizeTaskUseCase(clock entity.Clock) *ResizeTaskUseCase {
	return &ResizeTaskUseCase{clock: clock}
}

func (uc *ResizeTaskUseCase) Execute(cal entity.TaskCalendar, in ResizeTaskInput) (ResizeTaskOutput, error) {
	existing, ok := entity.GetTaskByID(cal, in.TaskID)
	if !ok {
		return ResizeTaskOutput{Calendar: cal}, taskNotFound()
	}

	var resized entity.Task
	switch in.Edge {
	case EdgeStart:
		resized = entity.ExtendTaskStart(existing, in.NewDate)
	case EdgeEnd:
		resized = entity.ExtendTaskEnd(existing, in.NewDate)
	default:
		return ResizeTaskOutput{Calendar: cal, Task: &existing},
			entity.NewFieldError("edge", entity.MsgInvalidEdge, entity.ErrInvalidEdge)
	}

	if errs := entity.ValidateTask(resized); len(errs) > 0 {
		return ResizeTaskOutput{Calendar: cal, Task: &existing}, errs
	}

	out := entity.UpdateTask(cal, uc.clock, in.TaskID, entity.TaskPatch{
		StartDate: entity.Some(resized.StartDate),
		EndDate:   entity.Some(resized.EndDate),
	})
	task, _ := entity.GetTaskByID(out, in.TaskID)
	return ResizeTaskOutput{Calendar: out, Task: &task}, nil
}
