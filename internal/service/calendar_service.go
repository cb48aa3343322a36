package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/St1cky1/task-calendar/internal/entity"
	"github.com/St1cky1/task-calendar/internal/importer"
	"github.com/St1cky1/task-calendar/internal/repository"
	"github.com/St1cky1/task-calendar/internal/usecase"
)

// EventPublisher интерфейс для публикации событий календаря
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *entity.CalendarEvent) error
}

// CalendarService принимает команды клиента и применяет их к сохраненному календарю.
// Изменения одного календаря выполняются строго по очереди: загрузка, use case, сохранение.
type CalendarService struct {
	calendars repository.ICalendarRepository
	events    repository.ICalendarEventRepository
	publisher EventPublisher
	uc        *usecase.UseCases
	clock     entity.Clock
	logger    *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCalendarService. publisher и events могут быть nil: тогда события не отправляются
// и история недоступна.
func NewCalendarService(
	calendars repository.ICalendarRepository,
	events repository.ICalendarEventRepository,
	publisher EventPublisher,
	gen entity.Generator,
	logger *slog.Logger,
) *CalendarService {
	return &CalendarService{
		calendars: calendars,
		events:    events,
		publisher: publisher,
		uc:        usecase.New(gen),
		clock:     gen,
		logger:    logger,
		locks:     make(map[string]*sync.Mutex),
	}
}

// CommandImport - тип события для импорта из YAML.
const CommandImport = "import"

// Import добавляет задачи из YAML-документа в календарь name под той же
// блокировкой, что и команды. Возвращает число созданных задач.
func (s *CalendarService) Import(ctx context.Context, name string, data []byte) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: calendar name is required", entity.ErrInvalidPayload)
	}

	unlock := s.lock(name)
	defer unlock()

	cal, err := s.Calendar(ctx, name)
	if err != nil {
		return 0, err
	}

	out, n, err := importer.Import(s.uc, cal, data)
	if err != nil {
		return 0, err
	}

	if err := s.calendars.Save(ctx, name, out); err != nil {
		return 0, fmt.Errorf("save calendar %s: %w", name, err)
	}
	s.publish(ctx, name, CommandImport, nil)

	s.logger.Info("импорт завершен", "calendar", name, "tasks", n)
	return n, nil
}

func (s *CalendarService) lock(name string) func() {
	s.mu.Lock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Calendar возвращает сохраненный календарь, создавая пустой при первом обращении.
func (s *CalendarService) Calendar(ctx context.Context, name string) (entity.TaskCalendar, error) {
	cal, err := s.calendars.Load(ctx, name)
	if errors.Is(err, entity.ErrCalendarNotFound) {
		s.logger.Info("создаем новый календарь", "calendar", name)
		return s.calendars.Create(ctx, name)
	}
	return cal, err
}

// Events возвращает последние события календаря.
func (s *CalendarService) Events(ctx context.Context, name string, limit int) ([]entity.CalendarEvent, error) {
	if s.events == nil {
		return []entity.CalendarEvent{}, nil
	}
	return s.events.ListByCalendar(ctx, name, limit)
}

// mutation - результат изменяющей команды.
type mutation struct {
	response Response
	calendar entity.TaskCalendar
	task     *entity.Task
	ok       bool
}

// Dispatch выполняет команду. Ошибки use case возвращаются внутри Response
// (success=false), а error означает неизвестную команду, битую нагрузку или сбой хранилища.
func (s *CalendarService) Dispatch(ctx context.Context, name string, cmd Command) (Response, error) {
	if name == "" {
		return Response{}, fmt.Errorf("%w: calendar name is required", entity.ErrInvalidPayload)
	}

	switch cmd.Type {
	case CommandReady, CommandFilterTasks, CommandSortTasks, CommandOpenLink:
		cal, err := s.Calendar(ctx, name)
		if err != nil {
			return Response{}, err
		}
		return s.query(cal, cmd)
	case CommandAddTask, CommandEditTask, CommandDeleteTask, CommandMoveTask,
		CommandReorderTask, CommandManageDeadline, CommandResizeTask:
		return s.mutate(ctx, name, cmd)
	default:
		return Response{}, fmt.Errorf("%w: %q", entity.ErrUnknownCommand, cmd.Type)
	}
}

func (s *CalendarService) query(cal entity.TaskCalendar, cmd Command) (Response, error) {
	switch cmd.Type {
	case CommandFilterTasks:
		var p filterTasksPayload
		if err := decodePayload(cmd.Payload, &p); err != nil {
			return Response{}, err
		}
		out := s.uc.FilterTasks.Execute(cal, usecase.FilterTasksInput{Query: p.Query})
		return Response{Type: ResponseTasksFiltered, Payload: TasksFilteredPayload{
			FilteredTasks: out.FilteredTasks,
			TotalCount:    out.TotalCount,
			MatchedCount:  out.MatchedCount,
		}}, nil

	case CommandSortTasks:
		var p sortTasksPayload
		if err := decodePayload(cmd.Payload, &p); err != nil {
			return Response{}, err
		}
		if p.SortMode == "" {
			p.SortMode = usecase.SortManual
		}
		return Response{Type: ResponseTasksSorted, Payload: s.sorted(cal, p.SortMode)}, nil

	case CommandOpenLink:
		var p taskIDPayload
		if err := decodePayload(cmd.Payload, &p); err != nil {
			return Response{}, err
		}
		out, err := s.uc.OpenLink.Execute(cal, usecase.OpenLinkInput{TaskID: p.TaskID})
		payload := LinkOpenedPayload{Success: err == nil, Error: firstMessage(err)}
		if out.Link != "" {
			payload.Link = &out.Link
		}
		return Response{Type: ResponseLinkOpened, Payload: payload}, nil
	}
	return Response{Type: ResponseInit, Payload: cal}, nil
}

func (s *CalendarService) sorted(cal entity.TaskCalendar, mode usecase.SortMode) TasksSortedPayload {
	in := usecase.SortTasksInput{SortMode: mode}
	out := s.uc.SortTasks.Execute(cal, in)
	payload := TasksSortedPayload{SortedTasks: out.SortedTasks, SortMode: out.SortMode}
	for _, g := range s.uc.SortTasks.ExecuteGrouped(cal, in) {
		payload.Groups = append(payload.Groups, StatusGroupPayload{Status: g.Status, Tasks: g.Tasks})
	}
	return payload
}

// SortedView - фильтр и сортировка по секциям для HTTP-представления.
func (s *CalendarService) SortedView(ctx context.Context, name, query string, mode usecase.SortMode) (TasksSortedPayload, error) {
	cal, err := s.Calendar(ctx, name)
	if err != nil {
		return TasksSortedPayload{}, err
	}
	filtered := s.uc.FilterTasks.Execute(cal, usecase.FilterTasksInput{Query: query})
	cal.Tasks = filtered.FilteredTasks
	if mode == "" {
		mode = usecase.SortManual
	}
	return s.sorted(cal, mode), nil
}

func (s *CalendarService) mutate(ctx context.Context, name string, cmd Command) (Response, error) {
	unlock := s.lock(name)
	defer unlock()

	// 1. Берем последнюю сохраненную версию
	cal, err := s.Calendar(ctx, name)
	if err != nil {
		return Response{}, err
	}

	// 2. Применяем use case
	m, err := s.apply(cal, cmd)
	if err != nil {
		return Response{}, err
	}
	if !m.ok {
		return m.response, nil
	}

	// 3. Сохраняем
	if err := s.calendars.Save(ctx, name, m.calendar); err != nil {
		return Response{}, fmt.Errorf("save calendar %s: %w", name, err)
	}

	// 4. Публикуем событие; ошибка публикации не отменяет команду
	s.publish(ctx, name, cmd.Type, m.task)

	return m.response, nil
}

func (s *CalendarService) apply(cal entity.TaskCalendar, cmd Command) (mutation, error) {
	switch cmd.Type {
	case CommandAddTask:
		var p addTaskPayload
		if err := decodePayload(cmd.Payload, &p); err != nil {
			return mutation{}, err
		}
		out := s.uc.AddTask.Execute(cal, usecase.AddTaskInput{Title: p.Title, Memo: p.Memo, Link: p.Link})
		return mutation{
			response: Response{Type: ResponseTaskAdded, Payload: TaskAddedPayload{Calendar: out.Calendar, Task: out.NewTask}},
			calendar: out.Calendar,
			task:     &out.NewTask,
			ok:       true,
		}, nil

	case CommandEditTask:
		var p editTaskPayload
		if err := decodePayload(cmd.Payload, &p); err != nil {
			return mutation{}, err
		}
		in, err := p.toInput()
		if err != nil {
			return mutation{}, err
		}
		out, err := s.uc.EditTask.Execute(cal, in)
		return taskResult(ResponseTaskEdited, out.Calendar, out.Task, nil, err), nil

	case CommandDeleteTask:
		var p taskIDPayload
		if err := decodePayload(cmd.Payload, &p); err != nil {
			return mutation{}, err
		}
		existing, _ := entity.GetTaskByID(cal, p.TaskID)
		out, err := s.uc.DeleteTask.Execute(cal, usecase.DeleteTaskInput{TaskID: p.TaskID})
		payload := TaskDeletedPayload{Success: err == nil, Calendar: out.Calendar, Error: firstMessage(err)}
		if err == nil {
			payload.DeletedTaskTitle = &out.DeletedTaskTitle
		}
		return mutation{
			response: Response{Type: ResponseTaskDeleted, Payload: payload},
			calendar: out.Calendar,
			task:     &existing,
			ok:       err == nil,
		}, nil

	case CommandMoveTask:
		var p moveTaskPayload
		if err := decodePayload(cmd.Payload, &p); err != nil {
			return mutation{}, err
		}
		in, err := p.toInput()
		if err != nil {
			return mutation{}, err
		}
		out, err := s.uc.MoveTask.Execute(cal, in)
		return taskResult(ResponseTaskMoved, out.Calendar, out.Task, nil, err), nil

	case CommandReorderTask:
		var p reorderTaskPayload
		if err := decodePayload(cmd.Payload, &p); err != nil {
			return mutation{}, err
		}
		if p.NewIndex == nil {
			return mutation{}, fmt.Errorf("%w: newIndex is required", entity.ErrInvalidPayload)
		}
		out, err := s.uc.ReorderTask.Execute(cal, usecase.ReorderTaskInput{TaskID: p.TaskID, NewIndex: *p.NewIndex})
		return mutation{
			response: Response{Type: ResponseTaskReordered, Payload: TaskReorderedPayload{
				Success:  err == nil,
				Calendar: out.Calendar,
				Task:     out.Task,
				Error:    firstMessage(err),
			}},
			calendar: out.Calendar,
			task:     out.Task,
			ok:       err == nil,
		}, nil

	case CommandManageDeadline:
		var p manageDeadlinePayload
		if err := decodePayload(cmd.Payload, &p); err != nil {
			return mutation{}, err
		}
		in, err := p.toInput()
		if err != nil {
			return mutation{}, err
		}
		out, err := s.uc.ManageDeadline.Execute(cal, in)
		return taskResult(ResponseDeadlineManaged, out.Calendar, out.Task, out.Deadline, err), nil

	case CommandResizeTask:
		var p resizeTaskPayload
		if err := decodePayload(cmd.Payload, &p); err != nil {
			return mutation{}, err
		}
		in, err := p.toInput()
		if err != nil {
			return mutation{}, err
		}
		out, err := s.uc.ResizeTask.Execute(cal, in)
		return taskResult(ResponseTaskResized, out.Calendar, out.Task, nil, err), nil
	}
	return mutation{}, fmt.Errorf("%w: %q", entity.ErrUnknownCommand, cmd.Type)
}

func taskResult(typ string, cal entity.TaskCalendar, task *entity.Task, deadline *entity.Deadline, err error) mutation {
	return mutation{
		response: Response{Type: typ, Payload: TaskResultPayload{
			Success:  err == nil,
			Calendar: cal,
			Task:     task,
			Deadline: deadline,
			Errors:   validationErrors(err),
		}},
		calendar: cal,
		task:     task,
		ok:       err == nil,
	}
}

func (s *CalendarService) publish(ctx context.Context, name, command string, task *entity.Task) {
	if s.publisher == nil {
		return
	}
	event := &entity.CalendarEvent{
		Calendar:  name,
		Command:   command,
		Timestamp: s.clock.Now(),
	}
	if task != nil {
		event.TaskID = task.ID
		event.TaskTitle = task.Title
	}
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		s.logger.Error("не удалось отправить событие", "calendar", name, "command", command, "error", err)
	}
}
