package usecase

import (
	"regexp"
	"strings"

	"github.com/St1cky1/task-calendar/internal/entity"
)

type FilterTasksInput struct {
	Query string
}

type FilterTasksOutput struct {
	FilteredTasks []entity.Task
	TotalCount    int
	MatchedCount  int
}

type FilterTasksUseCase struct{}

func NewFilterTasksUseCase() *FilterTasksUseCase {
	return &FilterTasksUseCase{}
}

// Execute ищет по заголовку, мемо и заголовкам дедлайнов.
// Пустой запрос, пробелы или "*" возвращают все задачи.
func (uc *FilterTasksUseCase) Execute(cal entity.TaskCalendar, in FilterTasksInput) FilterTasksOutput {
	total := len(cal.Tasks)
	if strings.TrimSpace(in.Query) == "" || in.Query == "*" {
		return FilterTasksOutput{
			FilteredTasks: cal.Clone().Tasks,
			TotalCount:    total,
			MatchedCount:  total,
		}
	}

	pattern := BuildPattern(in.Query)
	filtered := make([]entity.Task, 0, total)
	for _, t := range cal.Tasks {
		if matchesTask(t, pattern) {
			filtered = append(filtered, t.Clone())
		}
	}
	return FilterTasksOutput{FilteredTasks: filtered, TotalCount: total, MatchedCount: len(filtered)}
}

// BuildPattern компилирует запрос в регистронезависимый шаблон.
// Со звездочкой - glob на всю строку ("*" = любая последовательность),
// без нее - поиск подстроки.
func BuildPattern(query string) *regexp.Regexp {
	q := strings.ToLower(strings.TrimSpace(query))
	if !strings.Contains(q, "*") {
		return regexp.MustCompile("(?i)" + regexp.QuoteMeta(q))
	}

	parts := strings.Split(q, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	return regexp.MustCompile("(?i)^" + strings.Join(parts, ".*") + "$")
}

func matchesTask(t entity.Task, pattern *regexp.Regexp) bool {
	if pattern.MatchString(t.Title) {
		return true
	}
	if t.Memo != "" && pattern.MatchString(t.Memo) {
		return true
	}
	for _, d := range t.Deadlines {
		if pattern.MatchString(d.Title) {
			return true
		}
	}
	return false
}
