package usecase

import (
	"slices"
	"time"

	"github.com/St1cky1/task-calendar/internal/entity"
)

type SortMode string

const (
	SortManual   SortMode = "manual"
	SortDeadline SortMode = "deadline"
)

type SortTasksInput struct {
	SortMode SortMode
}

type SortTasksOutput struct {
	SortedTasks []entity.Task
	SortMode    SortMode
}

// StatusGroup - секция группированного представления.
type StatusGroup struct {
	Status entity.TaskStatus
	Tasks  []entity.Task
}

// GroupOrder - фиксированный порядок секций.
var GroupOrder = []entity.TaskStatus{
	entity.StatusInProgress,
	entity.StatusWaiting,
	entity.StatusCompleted,
	entity.StatusUndefined,
}

type SortTasksUseCase struct{}

func NewSortTasksUseCase() *SortTasksUseCase {
	return &SortTasksUseCase{}
}

// Execute: manual - по order; любой другой режим сортирует по дате
// (ближайший незавершенный дедлайн, иначе endDate, иначе createdAt).
func (uc *SortTasksUseCase) Execute(cal entity.TaskCalendar, in SortTasksInput) SortTasksOutput {
	return SortTasksOutput{
		SortedTasks: sortTasks(cal.Clone().Tasks, in.SortMode),
		SortMode:    in.SortMode,
	}
}

// ExecuteGrouped сортирует каждую секцию статуса независимо.
func (uc *SortTasksUseCase) ExecuteGrouped(cal entity.TaskCalendar, in SortTasksInput) []StatusGroup {
	groups := make([]StatusGroup, 0, len(GroupOrder))
	for _, status := range GroupOrder {
		var tasks []entity.Task
		for _, t := range cal.Tasks {
			if t.Status == status {
				tasks = append(tasks, t.Clone())
			}
		}
		groups = append(groups, StatusGroup{Status: status, Tasks: sortTasks(tasks, in.SortMode)})
	}
	return groups
}

func sortTasks(tasks []entity.Task, mode SortMode) []entity.Task {
	if tasks == nil {
		tasks = []entity.Task{}
	}
	if mode == SortManual {
		slices.SortStableFunc(tasks, func(a, b entity.Task) int {
			return a.Order - b.Order
		})
		return tasks
	}

	slices.SortStableFunc(tasks, compareBySortDate)
	return tasks
}

func compareBySortDate(a, b entity.Task) int {
	da, okA := sortDate(a)
	db, okB := sortDate(b)
	switch {
	case !okA && !okB:
		return a.Order - b.Order
	case !okA:
		return 1
	case !okB:
		return -1
	}
	if c := da.Compare(db); c != 0 {
		return c
	}
	return a.Order - b.Order
}

// sortDate - дата, по которой задача ранжируется в режиме deadline.
func sortDate(t entity.Task) (time.Time, bool) {
	if d, ok := entity.NextDeadline(t); ok {
		return *d.Date, true
	}
	if t.EndDate != nil {
		return *t.EndDate, true
	}
	return t.CreatedAt, !t.CreatedAt.IsZero()
}
