package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/St1cky1/task-calendar/internal/entity"
	"github.com/St1cky1/task-calendar/internal/usecase"
)

// Типы входящих команд
const (
	CommandReady          = "ready"
	CommandAddTask        = "addTask"
	CommandEditTask       = "editTask"
	CommandDeleteTask     = "deleteTask"
	CommandMoveTask       = "moveTask"
	CommandReorderTask    = "reorderTask"
	CommandManageDeadline = "manageDeadline"
	CommandResizeTask     = "resizeTask"
	CommandFilterTasks    = "filterTasks"
	CommandSortTasks      = "sortTasks"
	CommandOpenLink       = "openLink"
)

// Типы ответов
const (
	ResponseInit            = "init"
	ResponseTaskAdded       = "taskAdded"
	ResponseTaskEdited      = "taskEdited"
	ResponseTaskDeleted     = "taskDeleted"
	ResponseTaskMoved       = "taskMoved"
	ResponseTaskReordered   = "taskReordered"
	ResponseDeadlineManaged = "deadlineManaged"
	ResponseTaskResized     = "taskResized"
	ResponseTasksFiltered   = "tasksFiltered"
	ResponseTasksSorted     = "tasksSorted"
	ResponseLinkOpened      = "linkOpened"
)

// Command - конверт {type, payload} от клиента.
type Command struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response - конверт {type, payload} к клиенту.
type Response struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Полезная нагрузка ответов

type TaskAddedPayload struct {
	Calendar entity.TaskCalendar `json:"calendar"`
	Task     entity.Task         `json:"task"`
}

// TaskResultPayload - ответ editTask, moveTask, resizeTask и manageDeadline.
type TaskResultPayload struct {
	Success  bool                    `json:"success"`
	Calendar entity.TaskCalendar     `json:"calendar"`
	Task     *entity.Task            `json:"task"`
	Deadline *entity.Deadline        `json:"deadline,omitempty"`
	Errors   entity.ValidationErrors `json:"errors"`
}

type TaskDeletedPayload struct {
	Success          bool                `json:"success"`
	Calendar         entity.TaskCalendar `json:"calendar"`
	DeletedTaskTitle *string             `json:"deletedTaskTitle"`
	Error            *string             `json:"error"`
}

type TaskReorderedPayload struct {
	Success  bool                `json:"success"`
	Calendar entity.TaskCalendar `json:"calendar"`
	Task     *entity.Task        `json:"task"`
	Error    *string             `json:"error"`
}

type TasksFilteredPayload struct {
	FilteredTasks []entity.Task `json:"filteredTasks"`
	TotalCount    int           `json:"totalCount"`
	MatchedCount  int           `json:"matchedCount"`
}

type StatusGroupPayload struct {
	Status entity.TaskStatus `json:"status"`
	Tasks  []entity.Task     `json:"tasks"`
}

type TasksSortedPayload struct {
	SortedTasks []entity.Task        `json:"sortedTasks"`
	SortMode    usecase.SortMode     `json:"sortMode"`
	Groups      []StatusGroupPayload `json:"groups"`
}

type LinkOpenedPayload struct {
	Success bool    `json:"success"`
	Link    *string `json:"link"`
	Error   *string `json:"error"`
}

// Полезная нагрузка команд. Даты приходят строками ISO-8601 или YYYY-MM-DD.

type addTaskPayload struct {
	Title *string `json:"title"`
	Memo  *string `json:"memo"`
	Link  *string `json:"link"`
}

type editTaskPayload struct {
	TaskID    string                               `json:"taskId"`
	Title     entity.Optional[string]              `json:"title"`
	Memo      entity.Optional[string]              `json:"memo"`
	Link      entity.Optional[string]              `json:"link"`
	Status    entity.Optional[entity.TaskStatus]   `json:"status"`
	StartDate entity.Optional[*string]             `json:"startDate"`
	EndDate   entity.Optional[*string]             `json:"endDate"`
	Priority  entity.Optional[entity.TaskPriority] `json:"priority"`
	Tags      entity.Optional[[]string]            `json:"tags"`
	Color     entity.Optional[entity.TaskColor]    `json:"color"`
}

type taskIDPayload struct {
	TaskID string `json:"taskId"`
}

type moveTaskPayload struct {
	TaskID          string             `json:"taskId"`
	MoveType        usecase.MoveType   `json:"moveType"`
	TargetStatus    *entity.TaskStatus `json:"targetStatus"`
	TargetStartDate *string            `json:"targetStartDate"`
	TargetEndDate   *string            `json:"targetEndDate"`
	DaysDelta       *int               `json:"daysDelta"`
}

type reorderTaskPayload struct {
	TaskID   string `json:"taskId"`
	NewIndex *int   `json:"newIndex"`
}

type manageDeadlinePayload struct {
	TaskID     string                   `json:"taskId"`
	Action     usecase.DeadlineAction   `json:"action"`
	DeadlineID string                   `json:"deadlineId"`
	Title      *string                  `json:"title"`
	Date       entity.Optional[*string] `json:"date"`
}

type resizeTaskPayload struct {
	TaskID  string             `json:"taskId"`
	Edge    usecase.ResizeEdge `json:"edge"`
	NewDate string             `json:"newDate"`
}

type filterTasksPayload struct {
	Query string `json:"query"`
}

type sortTasksPayload struct {
	SortMode usecase.SortMode `json:"sortMode"`
}

func decodePayload(raw json.RawMessage, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidPayload, err)
	}
	return nil
}

func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := entity.ParseDate(*s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrInvalidPayload, field, err)
	}
	return &t, nil
}

// parseOptionalDate сохраняет различие между отсутствующим ключом и null.
func parseOptionalDate(field string, o entity.Optional[*string]) (entity.Optional[*time.Time], error) {
	s, set := o.Get()
	if !set {
		return entity.Optional[*time.Time]{}, nil
	}
	t, err := parseDate(field, s)
	if err != nil {
		return entity.Optional[*time.Time]{}, err
	}
	return entity.Some(t), nil
}

func (p editTaskPayload) toInput() (usecase.EditTaskInput, error) {
	if v, ok := p.Status.Get(); ok && !v.Valid() {
		return usecase.EditTaskInput{}, fmt.Errorf("%w: status %q", entity.ErrInvalidPayload, v)
	}
	if v, ok := p.Priority.Get(); ok && !v.Valid() {
		return usecase.EditTaskInput{}, fmt.Errorf("%w: priority %q", entity.ErrInvalidPayload, v)
	}
	if v, ok := p.Color.Get(); ok && !v.Valid() {
		return usecase.EditTaskInput{}, fmt.Errorf("%w: color %q", entity.ErrInvalidPayload, v)
	}

	start, err := parseOptionalDate("startDate", p.StartDate)
	if err != nil {
		return usecase.EditTaskInput{}, err
	}
	end, err := parseOptionalDate("endDate", p.EndDate)
	if err != nil {
		return usecase.EditTaskInput{}, err
	}

	return usecase.EditTaskInput{
		TaskID: p.TaskID,
		Patch: entity.TaskPatch{
			Title:     p.Title,
			Memo:      p.Memo,
			Link:      p.Link,
			Status:    p.Status,
			StartDate: start,
			EndDate:   end,
			Priority:  p.Priority,
			Tags:      p.Tags,
			Color:     p.Color,
		},
	}, nil
}

func (p moveTaskPayload) toInput() (usecase.MoveTaskInput, error) {
	if p.TargetStatus != nil && *p.TargetStatus != "" && !p.TargetStatus.Valid() {
		return usecase.MoveTaskInput{}, fmt.Errorf("%w: targetStatus %q", entity.ErrInvalidPayload, *p.TargetStatus)
	}
	start, err := parseDate("targetStartDate", p.TargetStartDate)
	if err != nil {
		return usecase.MoveTaskInput{}, err
	}
	end, err := parseDate("targetEndDate", p.TargetEndDate)
	if err != nil {
		return usecase.MoveTaskInput{}, err
	}
	return usecase.MoveTaskInput{
		TaskID:          p.TaskID,
		MoveType:        p.MoveType,
		TargetStatus:    p.TargetStatus,
		TargetStartDate: start,
		TargetEndDate:   end,
		DaysDelta:       p.DaysDelta,
	}, nil
}

func (p manageDeadlinePayload) toInput() (usecase.ManageDeadlineInput, error) {
	date, err := parseOptionalDate("date", p.Date)
	if err != nil {
		return usecase.ManageDeadlineInput{}, err
	}
	return usecase.ManageDeadlineInput{
		TaskID:     p.TaskID,
		Action:     p.Action,
		DeadlineID: p.DeadlineID,
		Title:      p.Title,
		Date:       date,
	}, nil
}

func (p resizeTaskPayload) toInput() (usecase.ResizeTaskInput, error) {
	date, err := parseDate("newDate", &p.NewDate)
	if err != nil {
		return usecase.ResizeTaskInput{}, err
	}
	if date == nil {
		return usecase.ResizeTaskInput{}, fmt.Errorf("%w: newDate: %s", entity.ErrInvalidPayload, entity.MsgNewDateRequired)
	}
	return usecase.ResizeTaskInput{TaskID: p.TaskID, Edge: p.Edge, NewDate: *date}, nil
}

// firstMessage - текст первой ошибки для ответов с одиночным полем error.
func firstMessage(err error) *string {
	if err == nil {
		return nil
	}
	if errs, ok := err.(entity.ValidationErrors); ok && len(errs) > 0 {
		return &errs[0].Message
	}
	msg := err.Error()
	return &msg
}

// validationErrors приводит ошибку use case к списку для ответа. nil дает пустой список.
func validationErrors(err error) entity.ValidationErrors {
	if err == nil {
		return entity.ValidationErrors{}
	}
	if errs, ok := err.(entity.ValidationErrors); ok {
		return errs
	}
	return entity.ValidationErrors{{Message: err.Error(), Err: err}}
}
