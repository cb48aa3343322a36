package usecase

import (
	"github.com/St1cky1/task-calendar/internal/entity"
)

func taskNotFound() entity.ValidationErrors {
	return entity.NewFieldError("taskId", entity.MsgTaskNotFound, entity.ErrTaskNotFound)
}

func deadlineIDRequired() entity.ValidationErrors {
	return entity.NewFieldError("deadlineId", entity.MsgDeadlineIDRequired, entity.ErrDeadlineIDRequired)
}
