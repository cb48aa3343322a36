// Package importer загружает задачи в календарь из YAML-документа.
package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/St1cky1/task-calendar/internal/entity"
	"github.com/St1cky1/task-calendar/internal/usecase"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

var ErrNoTasks = errors.New("no tasks found in YAML")

// YAMLDeadline - дедлайн задачи во входном YAML.
type YAMLDeadline struct {
	Title     string `yaml:"title"`
	Date      string `yaml:"date,omitempty"`
	Completed bool   `yaml:"completed,omitempty"`
}

// YAMLTask - одна задача во входном YAML.
type YAMLTask struct {
	Title     string         `yaml:"title"`
	Memo      string         `yaml:"memo,omitempty"`
	Link      string         `yaml:"link,omitempty"`
	Status    string         `yaml:"status,omitempty"`
	Start     string         `yaml:"start,omitempty"`
	End       string         `yaml:"end,omitempty"`
	Priority  string         `yaml:"priority,omitempty"`
	Color     string         `yaml:"color,omitempty"`
	Tags      []string       `yaml:"tags,omitempty"`
	Deadlines []YAMLDeadline `yaml:"deadlines,omitempty"`
}

// YAMLInput - корень документа.
type YAMLInput struct {
	Tasks []YAMLTask `yaml:"tasks"`
}

// Import разбирает YAML и добавляет задачи в cal через команды usecase.
// Сначала проверяются все записи, и ошибки собираются вместе. Если какая-то
// команда отказала, возвращается исходный календарь.
// Возвращает новый календарь и число созданных задач.
func Import(uc *usecase.UseCases, cal entity.TaskCalendar, data []byte) (entity.TaskCalendar, int, error) {
	var input YAMLInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return cal, 0, fmt.Errorf("YAML parse error: %w", err)
	}
	if len(input.Tasks) == 0 {
		return cal, 0, ErrNoTasks
	}

	if err := check(input.Tasks); err != nil {
		return cal, 0, err
	}

	out := cal
	for i, yt := range input.Tasks {
		next, err := importTask(uc, out, yt)
		if err != nil {
			return cal, 0, fmt.Errorf("tasks[%d] %q: %w", i, yt.Title, err)
		}
		out = next
	}
	return out, len(input.Tasks), nil
}

func check(tasks []YAMLTask) error {
	var result *multierror.Error
	for i, yt := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)
		if strings.TrimSpace(yt.Title) == "" {
			result = multierror.Append(result, fmt.Errorf("%s: title is required", prefix))
		}
		if yt.Status != "" && !entity.TaskStatus(yt.Status).Valid() {
			result = multierror.Append(result, fmt.Errorf("%s: unknown status %q", prefix, yt.Status))
		}
		if yt.Priority != "" && !entity.TaskPriority(yt.Priority).Valid() {
			result = multierror.Append(result, fmt.Errorf("%s: unknown priority %q", prefix, yt.Priority))
		}
		if yt.Color != "" && !entity.TaskColor(yt.Color).Valid() {
			result = multierror.Append(result, fmt.Errorf("%s: unknown color %q", prefix, yt.Color))
		}
		for _, s := range []string{yt.Start, yt.End} {
			if _, err := parseDate(s); err != nil {
				result = multierror.Append(result, fmt.Errorf("%s: %w", prefix, err))
			}
		}
		for j, d := range yt.Deadlines {
			if _, err := parseDate(d.Date); err != nil {
				result = multierror.Append(result, fmt.Errorf("%s.deadlines[%d]: %w", prefix, j, err))
			}
		}
	}
	return result.ErrorOrNil()
}

func importTask(uc *usecase.UseCases, cal entity.TaskCalendar, yt YAMLTask) (entity.TaskCalendar, error) {
	added := uc.AddTask.Execute(cal, usecase.AddTaskInput{
		Title: &yt.Title,
		Memo:  &yt.Memo,
		Link:  &yt.Link,
	})
	taskID := added.NewTask.ID

	start, _ := parseDate(yt.Start)
	end, _ := parseDate(yt.End)
	p := entity.TaskPatch{StartDate: entity.Some(start), EndDate: entity.Some(end)}
	if yt.Status != "" {
		p.Status = entity.Some(entity.TaskStatus(yt.Status))
	}
	if yt.Priority != "" {
		p.Priority = entity.Some(entity.TaskPriority(yt.Priority))
	}
	if yt.Color != "" {
		p.Color = entity.Some(entity.TaskColor(yt.Color))
	}
	if len(yt.Tags) > 0 {
		p.Tags = entity.Some(yt.Tags)
	}

	edited, err := uc.EditTask.Execute(added.Calendar, usecase.EditTaskInput{TaskID: taskID, Patch: p})
	if err != nil {
		return cal, err
	}

	out := edited.Calendar
	for _, yd := range yt.Deadlines {
		date, _ := parseDate(yd.Date)
		in := usecase.ManageDeadlineInput{TaskID: taskID, Action: usecase.DeadlineAdd}
		if yd.Title != "" {
			in.Title = &yd.Title
		}
		if date != nil {
			in.Date = entity.Some(date)
		}

		res, err := uc.ManageDeadline.Execute(out, in)
		if err != nil {
			return cal, err
		}
		out = res.Calendar

		if yd.Completed {
			res, err = uc.ManageDeadline.Execute(out, usecase.ManageDeadlineInput{
				TaskID:     taskID,
				Action:     usecase.DeadlineToggle,
				DeadlineID: res.Deadline.ID,
			})
			if err != nil {
				return cal, err
			}
			out = res.Calendar
		}
	}
	return out, nil
}

// parseDate: пустая строка - нет даты.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := entity.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
