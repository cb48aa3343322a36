package usecase

import (
	"slices"
	"time"

	"github.com/St1cky1/task-calendar/internal/entity"
)

type DeadlineAction string

const (
	DeadlineAdd    DeadlineAction = "add"
	DeadlineEdit   DeadlineAction = "edit"
	DeadlineDelete DeadlineAction = "delete"
	DeadlineToggle DeadlineAction = "toggle"
)

// ManageDeadlineInput. Date различает "не передано" и явный null:
// для add null и отсутствие дают дату окончания задачи, для edit null очищает дату.
type ManageDeadlineInput struct {
	TaskID     string
	Action     DeadlineAction
	DeadlineID string
	Title      *string
	Date       entity.Optional[*time.Time]
}

type ManageDeadlineOutput struct {
	Calendar entity.TaskCalendar
	Task     *entity.Task
	Deadline *entity.Deadline
}

type ManageDeadlineUseCase struct {
	gen entity.Generator
}

func NewManageDeadlineUseCase(gen entity.Generator) *ManageDeadlineUseCase {
	return &ManageDeadlineUseCase{gen: gen}
}

func (uc *ManageDeadlineUseCase) Execute(cal entity.TaskCalendar, in ManageDeadlineInput) (ManageDeadlineOutput, error) {
	existing, ok := entity.GetTaskByID(cal, in.TaskID)
	if !ok {
		return ManageDeadlineOutput{Calendar: cal}, taskNotFound()
	}
	fail := func(errs entity.ValidationErrors) (ManageDeadlineOutput, error) {
		return ManageDeadlineOutput{Calendar: cal, Task: &existing}, errs
	}

	var (
		deadlines []entity.Deadline
		target    *entity.Deadline
		expandTo  *time.Time
	)

	switch in.Action {
	case DeadlineAdd:
		date := in.Date.OrElse(nil)
		if date == nil {
			date = existing.EndDate
		}
		p := entity.DeadlinePatch{Title: entity.Some(entity.DefaultDeadlineTitle), Date: entity.Some(date)}
		if in.Title != nil {
			p.Title = entity.Some(*in.Title)
		}
		d := entity.NewDeadline(uc.gen, p)
		deadlines = append(slices.Clone(existing.Deadlines), d)
		target = &d
		expandTo = d.Date

	case DeadlineEdit:
		if in.DeadlineID == "" {
			return fail(deadlineIDRequired())
		}
		deadlines = slices.Clone(existing.Deadlines)
		for i := range deadlines {
			if deadlines[i].ID != in.DeadlineID {
				continue
			}
			if in.Title != nil {
				deadlines[i].Title = *in.Title
			}
			if date, set := in.Date.Get(); set {
				deadlines[i].Date = date
			}
			d := deadlines[i]
			target = &d
		}
		if target == nil {
			return fail(entity.NewFieldError("deadlineId", entity.MsgDeadlineNotFound, entity.ErrDeadlineNotFound))
		}
		expandTo = in.Date.OrElse(nil)

	case DeadlineDelete:
		if in.DeadlineID == "" {
			return fail(deadlineIDRequired())
		}
		deadlines = make([]entity.Deadline, 0, len(existing.Deadlines))
		for _, d := range existing.Deadlines {
			if d.ID == in.DeadlineID {
				target = &d
				continue
			}
			deadlines = append(deadlines, d)
		}

	case DeadlineToggle:
		if in.DeadlineID == "" {
			return fail(deadlineIDRequired())
		}
		deadlines = slices.Clone(existing.Deadlines)
		for i := range deadlines {
			if deadlines[i].ID == in.DeadlineID {
				deadlines[i].Completed = !deadlines[i].Completed
				d := deadlines[i]
				target = &d
			}
		}

	default:
		return fail(entity.NewFieldError("action", entity.MsgInvalidAction, entity.ErrInvalidAction))
	}

	p := entity.TaskPatch{Deadlines: entity.Some(deadlines)}
	// период задачи расширяется, чтобы вместить дедлайн; при удалении не сужается
	if expandTo != nil {
		if existing.StartDate != nil && expandTo.Before(*existing.StartDate) {
			p.StartDate = entity.Some(expandTo)
		}
		if existing.EndDate != nil && expandTo.After(*existing.EndDate) {
			p.EndDate = entity.Some(expandTo)
		}
	}

	if errs := entity.ValidateTask(p.Apply(existing)); len(errs) > 0 {
		return ManageDeadlineOutput{Calendar: cal, Task: &existing, Deadline: target}, errs
	}

	out := entity.UpdateTask(cal, uc.gen, in.TaskID, p)
	task, _ := entity.GetTaskByID(out, in.TaskID)
	return ManageDeadlineOutput{Calendar: out, Task: &task, Deadline: target}, nil
}
