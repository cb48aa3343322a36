package entity

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrDeadlineNotFound   = errors.New("deadline not found")
	ErrDeadlineIDRequired = errors.New("deadline id is required")
	ErrFieldRequired      = errors.New("required field missing")
	ErrInvalidTaskData    = errors.New("invalid task data")
	ErrInvalidIndex       = errors.New("index must be 0 or greater")
	ErrInvalidAction      = errors.New("invalid action")
	ErrInvalidMoveType    = errors.New("invalid move type")
	ErrInvalidEdge        = errors.New("invalid edge")
	ErrLinkNotSet         = errors.New("link is not set")
	ErrInvalidURL         = errors.New("invalid url")
	ErrCalendarNotFound   = errors.New("calendar not found")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrInvalidPayload     = errors.New("invalid payload")
)

// Сообщения, которые уходят в UI вместе с ValidationError.
const (
	DefaultTaskTitle     = "New Task"
	DefaultDeadlineTitle = "New Deadline"

	MsgTitleRequired       = "Title is required"
	MsgStartDateBeforeEnd  = "Start date must be before end date"
	MsgTaskNotFound        = "Task not found"
	MsgDeadlineNotFound    = "Deadline not found"
	MsgDeadlineIDRequired  = "Deadline ID is required"
	MsgStartDateRequired   = "Start date is required"
	MsgStatusRequired      = "Status is required"
	MsgDaysDeltaRequired   = "Days delta is required"
	MsgIndexMustBePositive = "Index must be 0 or greater"
	MsgLinkNotSet          = "Link is not set"
	MsgInvalidURL          = "Invalid URL format"
	MsgInvalidAction       = "Invalid action"
	MsgInvalidMoveType     = "Invalid move type"
	MsgInvalidEdge         = "Invalid edge"
	MsgNewDateRequired     = "New date is required"
)

// MsgDeadlineOutsidePeriod - сообщение для дедлайна вне периода задачи.
func MsgDeadlineOutsidePeriod(title string) string {
	return `Deadline "` + title + `" must be within task period`
}
