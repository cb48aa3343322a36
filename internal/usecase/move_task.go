package usecase

import (
	"time"

	"github.com/St1cky1/task-calendar/internal/entity"
)

type MoveType string

const (
	MoveToCalendar   MoveType = "to-calendar"
	MoveChangeStatus MoveType = "change-status"
	MoveChangeDates  MoveType = "change-dates"
	MoveShiftDates   MoveType = "shift-dates"
)

// MoveTaskInput. Обязательные поля зависят от MoveType:
// to-calendar - TargetStartDate, change-status - TargetStatus, shift-dates - DaysDelta.
type MoveTaskInput struct {
	TaskID          string
	MoveType        MoveType
	TargetStatus    *entity.TaskStatus
	TargetStartDate *time.Time
	TargetEndDate   *time.Time
	DaysDelta       *int
}

type MoveTaskOutput struct {
	Calendar entity.TaskCalendar
	Task     *entity.Task
}

type MoveTaskUseCase struct {
	clock entity.Clock
}

func NewMoveTaskUseCase(clock entity.Clock) *MoveTaskUseCase {
	return &MoveTaskUseCase{clock: clock}
}

func (uc *MoveTaskUseCase) Execute(cal entity.TaskCalendar, in MoveTaskInput) (MoveTaskOutput, error) {
	existing, ok := entity.GetTaskByID(cal, in.TaskID)
	if !ok {
		return MoveTaskOutput{Calendar: cal}, taskNotFound()
	}
	fail := func(errs entity.ValidationErrors) (MoveTaskOutput, error) {
		return MoveTaskOutput{Calendar: cal, Task: &existing}, errs
	}

	var out entity.TaskCalendar
	switch in.MoveType {
	case MoveToCalendar:
		if in.TargetStartDate == nil {
			return fail(entity.NewFieldError("targetStartDate", entity.MsgStartDateRequired, entity.ErrFieldRequired))
		}
		// статус меняется только у задачи без расписания
		status := existing.Status
		if status == entity.StatusUndefined {
			status = entity.StatusInProgress
		}
		end := in.TargetEndDate
		if end == nil {
			end = in.TargetStartDate
		}
		out = entity.MoveTaskToStatus(cal, uc.clock, in.TaskID, status, &entity.DateRange{
			StartDate: in.TargetStartDate,
			EndDate:   end,
		})

	case MoveChangeStatus:
		if in.TargetStatus == nil || *in.TargetStatus == "" {
			return fail(entity.NewFieldError("targetStatus", entity.MsgStatusRequired, entity.ErrFieldRequired))
		}
		out = entity.MoveTaskToStatus(cal, uc.clock, in.TaskID, *in.TargetStatus, nil)

	case MoveChangeDates:
		var p entity.TaskPatch
		if in.TargetStartDate != nil {
			p.StartDate = entity.Some(in.TargetStartDate)
		}
		if in.TargetEndDate != nil {
			p.EndDate = entity.Some(in.TargetEndDate)
		}
		if errs := entity.ValidateTask(p.Apply(existing)); len(errs) > 0 {
			return fail(errs)
		}
		out = entity.UpdateTask(cal, uc.clock, in.TaskID, p)

	case MoveShiftDates:
		if in.DaysDelta == nil {
			return fail(entity.NewFieldError("daysDelta", entity.MsgDaysDeltaRequired, entity.ErrFieldRequired))
		}
		shifted := entity.MoveTaskDates(existing, *in.DaysDelta)
		out = entity.UpdateTask(cal, uc.clock, in.TaskID, entity.TaskPatch{
			StartDate: entity.Some(shifted.StartDate),
			EndDate:   entity.Some(shifted.EndDate),
			Deadlines: entity.Some(shifted.Deadlines),
		})

	default:
		return fail(entity.NewFieldError("moveType", entity.MsgInvalidMoveType, entity.ErrInvalidMoveType))
	}

	task, _ := entity.GetTaskByID(out, in.TaskID)
	return MoveTaskOutput{Calendar: out, Task: &task}, nil
}
