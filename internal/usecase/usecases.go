// Package usecase содержит команды над TaskCalendar. Каждая команда чистая:
// принимает календарь и вход, возвращает новый календарь. При ошибке
// возвращается исходный календарь и entity.ValidationErrors.
package usecase

import (
	"github.com/St1cky1/task-calendar/internal/entity"
)

// UseCases собирает все команды для слоя интеграции.
type UseCases struct {
	AddTask        *AddTaskUseCase
	EditTask       *EditTaskUseCase
	DeleteTask     *DeleteTaskUseCase
	MoveTask       *MoveTaskUseCase
	ReorderTask    *ReorderTaskUseCase
	ManageDeadline *ManageDeadlineUseCase
	ResizeTask     *ResizeTaskUseCase
	FilterTasks    *FilterTasksUseCase
	SortTasks      *SortTasksUseCase
	OpenLink       *OpenLinkUseCase
}

func New(gen entity.Generator) *UseCases {
	return &UseCases{
		AddTask:        NewAddTaskUseCase(gen),
		EditTask:       NewEditTaskUseCase(gen),
		DeleteTask:     NewDeleteTaskUseCase(gen),
		MoveTask:       NewMoveTaskUseCase(gen),
		ReorderTask:    NewReorderTaskUseCase(gen),
		ManageDeadline: NewManageDeadlineUseCase(gen),
		ResizeTask:     NewResizeTaskUseCase(gen),
		FilterTasks:    NewFilterTasksUseCase(),
		SortTasks:      NewSortTasksUseCase(),
		OpenLink:       NewOpenLinkUseCase(),
	}
}
