package entity

import (
	"slices"
	"time"
)

const CurrentVersion = "1.0.0"

// TaskCalendar - корень агрегата. Все операции ниже возвращают новое значение
// и не меняют входной календарь.
type TaskCalendar struct {
	Version      string
	Tasks        []Task
	LastModified time.Time
}

// DateRange - необязательные даты для MoveTaskToStatus.
type DateRange struct {
	StartDate *time.Time
	EndDate   *time.Time
}

func NewTaskCalendar(clock Clock) TaskCalendar {
	return TaskCalendar{
		Version:      CurrentVersion,
		Tasks:        []Task{},
		LastModified: clock.Now(),
	}
}

// Clone возвращает глубокую копию календаря.
func (c TaskCalendar) Clone() TaskCalendar {
	out := c
	out.Tasks = make([]Task, len(c.Tasks))
	for i, t := range c.Tasks {
		out.Tasks[i] = t.Clone()
	}
	return out
}

// GetTasksByStatus возвращает задачи статуса, отсортированные по Order.
func GetTasksByStatus(cal TaskCalendar, status TaskStatus) []Task {
	var group []Task
	for _, t := range cal.Tasks {
		if t.Status == status {
			group = append(group, t.Clone())
		}
	}
	slices.SortStableFunc(group, byOrder)
	return group
}

func byOrder(a, b Task) int {
	return a.Order - b.Order
}

func GetTaskByID(cal TaskCalendar, id string) (Task, bool) {
	for _, t := range cal.Tasks {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return Task{}, false
}

// AddTask добавляет задачу в конец. Order = глобальный максимум по всем задачам + 1,
// а не максимум внутри статуса.
func AddTask(cal TaskCalendar, gen Generator, p TaskPatch) (TaskCalendar, Task) {
	maxOrder := 0
	for _, t := range cal.Tasks {
		maxOrder = max(maxOrder, t.Order)
	}
	p.Order = Some(maxOrder + 1)
	task := NewTask(gen, p)

	out := cal.Clone()
	out.Tasks = append(out.Tasks, task)
	out.LastModified = gen.Now()
	return out, task.Clone()
}

// UpdateTask применяет патч к задаче с указанным id. Если задачи нет,
// возвращается копия календаря с обновленным LastModified.
func UpdateTask(cal TaskCalendar, clock Clock, id string, p TaskPatch) TaskCalendar {
	out := cal.Clone()
	for i, t := range out.Tasks {
		if t.ID == id {
			out.Tasks[i] = p.Apply(t)
		}
	}
	out.LastModified = clock.Now()
	return out
}

func DeleteTask(cal TaskCalendar, clock Clock, id string) TaskCalendar {
	out := TaskCalendar{Version: cal.Version, Tasks: []Task{}, LastModified: clock.Now()}
	for _, t := range cal.Tasks {
		if t.ID != id {
			out.Tasks = append(out.Tasks, t.Clone())
		}
	}
	return out
}

// ReorderTask вставляет задачу на позицию newIndex внутри ее статуса и
// перенумеровывает группу в 0..n-1. Индекс за пределами группы означает "в конец".
// Задачи других статусов не трогаются.
func ReorderTask(cal TaskCalendar, clock Clock, id string, newIndex int) TaskCalendar {
	task, ok := GetTaskByID(cal, id)
	if !ok {
		return cal
	}

	var group, others []Task
	for _, t := range cal.Tasks {
		switch {
		case t.Status != task.Status:
			others = append(others, t.Clone())
		case t.ID != id:
			group = append(group, t.Clone())
		}
	}
	slices.SortStableFunc(group, byOrder)

	newIndex = min(max(newIndex, 0), len(group))
	group = slices.Insert(group, newIndex, task)
	for i := range group {
		group[i].Order = i
	}

	return TaskCalendar{
		Version:      cal.Version,
		Tasks:        append(others, group...),
		LastModified: clock.Now(),
	}
}

// MoveTaskToStatus переводит задачу в статус и ставит ее последней в группе.
// Переданные даты применяются, но для undefined обе даты всегда сбрасываются.
func MoveTaskToStatus(cal TaskCalendar, clock Clock, id string, status TaskStatus, dates *DateRange) TaskCalendar {
	if _, ok := GetTaskByID(cal, id); !ok {
		return cal
	}

	maxOrder := 0
	for _, t := range cal.Tasks {
		if t.Status == status {
			maxOrder = max(maxOrder, t.Order)
		}
	}

	p := TaskPatch{Status: Some(status), Order: Some(maxOrder + 1)}
	if dates != nil {
		if dates.StartDate != nil {
			p.StartDate = Some(dates.StartDate)
		}
		if dates.EndDate != nil {
			p.EndDate = Some(dates.EndDate)
		}
	}
	if status == StatusUndefined {
		p.StartDate = Some[*time.Time](nil)
		p.EndDate = Some[*time.Time](nil)
	}
	return UpdateTask(cal, clock, id, p)
}

// ValidateCalendar валидирует все задачи, поле ошибки получает префикс "<taskId>.".
func ValidateCalendar(cal TaskCalendar) ValidationErrors {
	var all ValidationErrors
	for _, t := range cal.Tasks {
		for _, e := range ValidateTask(t) {
			e.Field = t.ID + "." + e.Field
			all = append(all, e)
		}
	}
	return all
}
