package usecase

import (
	"github.com/St1cky1/task-calendar/internal/entity"
)

// EditTaskInput. В Patch учитываются только редактируемые поля:
// title, memo, link, status, startDate, endDate, priority, tags, color.
type EditTaskInput struct {
	TaskID string
	Patch  entity.TaskPatch
}

type EditTaskOutput struct {
	Calendar entity.TaskCalendar
	Task     *entity.Task
}

type EditTaskUseCase struct {
	clock entity.Clock
}

func NewEditTaskUseCase(clock entity.Clock) *EditTaskUseCase {
	return &EditTaskUseCase{clock: clock}
}

// Execute при ошибке валидации возвращает исходный календарь и неизмененную задачу.
func (uc *EditTaskUseCase) Execute(cal entity.TaskCalendar, in EditTaskInput) (EditTaskOutput, error) {
	existing, ok := entity.GetTaskByID(cal, in.TaskID)
	if !ok {
		return EditTaskOutput{Calendar: cal}, taskNotFound()
	}

	p := editable(in.Patch)
	if errs := entity.ValidateTask(p.Apply(existing)); len(errs) > 0 {
		return EditTaskOutput{Calendar: cal, Task: &existing}, errs
	}

	out := entity.UpdateTask(cal, uc.clock, in.TaskID, p)
	task, _ := entity.GetTaskByID(out, in.TaskID)
	return EditTaskOutput{Calendar: out, Task: &task}, nil
}

// editable отбрасывает поля, которые через EditTask менять нельзя.
func editable(p entity.TaskPatch) entity.TaskPatch {
	p.Deadlines = entity.Optional[[]entity.Deadline]{}
	p.Order = entity.Optional[int]{}
	return p
}
