package entity

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	StatusUndefined  TaskStatus = "undefined"
	StatusWaiting    TaskStatus = "waiting"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// Valid сообщает, входит ли статус в допустимый набор.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusUndefined, StatusWaiting, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type TaskColor string

const (
	ColorBlue   TaskColor = "blue"
	ColorGreen  TaskColor = "green"
	ColorOrange TaskColor = "orange"
	ColorPurple TaskColor = "purple"
	ColorRed    TaskColor = "red"
	ColorGray   TaskColor = "gray"
	ColorCyan   TaskColor = "cyan"
	ColorPink   TaskColor = "pink"
	ColorYellow TaskColor = "yellow"
)

func (c TaskColor) Valid() bool {
	switch c {
	case ColorBlue, ColorGreen, ColorOrange, ColorPurple, ColorRed,
		ColorGray, ColorCyan, ColorPink, ColorYellow:
		return true
	}
	return false
}

const day = 24 * time.Hour

// Deadline принадлежит задаче и вне нее не существует.
type Deadline struct {
	ID        string
	Title     string
	Date      *time.Time
	Completed bool
}

type Task struct {
	ID        string
	Title     string
	Memo      string
	Link      string
	Status    TaskStatus
	CreatedAt time.Time
	StartDate *time.Time
	EndDate   *time.Time
	Deadlines []Deadline
	Order     int
	Tags      []string
	Priority  TaskPriority
	Color     TaskColor
}

// Clone возвращает глубокую копию задачи.
func (t Task) Clone() Task {
	c := t
	c.StartDate = cloneDate(t.StartDate)
	c.EndDate = cloneDate(t.EndDate)
	c.Deadlines = cloneDeadlines(t.Deadlines)
	c.Tags = append([]string{}, t.Tags...)
	return c
}

func (d Deadline) clone() Deadline {
	d.Date = cloneDate(d.Date)
	return d
}

func cloneDeadlines(src []Deadline) []Deadline {
	out := make([]Deadline, len(src))
	for i, d := range src {
		out[i] = d.clone()
	}
	return out
}

// TaskPatch - набор необязательных изменений задачи.
// Дефолты для NewTask: title "New Task", memo/link "", status undefined, даты nil,
// deadlines [], order 0, tags [], priority medium, color blue.
type TaskPatch struct {
	Title     Optional[string]
	Memo      Optional[string]
	Link      Optional[string]
	Status    Optional[TaskStatus]
	StartDate Optional[*time.Time]
	EndDate   Optional[*time.Time]
	Deadlines Optional[[]Deadline]
	Order     Optional[int]
	Tags      Optional[[]string]
	Priority  Optional[TaskPriority]
	Color     Optional[TaskColor]
}

// Apply возвращает копию t с примененным патчем. Сам t не меняется.
func (p TaskPatch) Apply(t Task) Task {
	out := t.Clone()
	if v, ok := p.Title.Get(); ok {
		out.Title = v
	}
	if v, ok := p.Memo.Get(); ok {
		out.Memo = v
	}
	if v, ok := p.Link.Get(); ok {
		out.Link = v
	}
	if v, ok := p.Status.Get(); ok {
		out.Status = v
	}
	if v, ok := p.StartDate.Get(); ok {
		out.StartDate = cloneDate(v)
	}
	if v, ok := p.EndDate.Get(); ok {
		out.EndDate = cloneDate(v)
	}
	if v, ok := p.Deadlines.Get(); ok {
		out.Deadlines = cloneDeadlines(v)
	}
	if v, ok := p.Order.Get(); ok {
		out.Order = v
	}
	if v, ok := p.Tags.Get(); ok {
		out.Tags = append([]string{}, v...)
	}
	if v, ok := p.Priority.Get(); ok {
		out.Priority = v
	}
	if v, ok := p.Color.Get(); ok {
		out.Color = v
	}
	return out
}

// DeadlinePatch - необязательные поля дедлайна.
// Дефолты: title "New Deadline", date nil, completed false.
type DeadlinePatch struct {
	Title     Optional[string]
	Date      Optional[*time.Time]
	Completed Optional[bool]
}

// NewTask создает задачу с новым ID и временем создания из gen.
func NewTask(gen Generator, p TaskPatch) Task {
	t := Task{
		ID:        gen.NewID(),
		Title:     DefaultTaskTitle,
		Status:    StatusUndefined,
		CreatedAt: gen.Now(),
		Deadlines: []Deadline{},
		Tags:      []string{},
		Priority:  PriorityMedium,
		Color:     ColorBlue,
	}
	return p.Apply(t)
}

// NewDeadline создает дедлайн с новым ID.
func NewDeadline(gen Generator, p DeadlinePatch) Deadline {
	return Deadline{
		ID:        gen.NewID(),
		Title:     p.Title.OrElse(DefaultDeadlineTitle),
		Date:      cloneDate(p.Date.OrElse(nil)),
		Completed: p.Completed.OrElse(false),
	}
}

// ValidateTask проверяет заголовок, порядок дат и попадание дедлайнов в период задачи.
func ValidateTask(t Task) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(t.Title) == "" {
		errs = append(errs, ValidationError{Field: "title", Message: MsgTitleRequired, Err: ErrInvalidTaskData})
	}
	if t.StartDate != nil && t.EndDate != nil && t.StartDate.After(*t.EndDate) {
		errs = append(errs, ValidationError{Field: "dateRange", Message: MsgStartDateBeforeEnd, Err: ErrInvalidTaskData})
	}
	for _, d := range t.Deadlines {
		if d.Date == nil {
			continue
		}
		field := "deadline-" + d.ID
		// по одной ошибке на каждую нарушенную границу
		if t.StartDate != nil && d.Date.Before(*t.StartDate) {
			errs = append(errs, ValidationError{Field: field, Message: MsgDeadlineOutsidePeriod(d.Title), Err: ErrInvalidTaskData})
		}
		if t.EndDate != nil && d.Date.After(*t.EndDate) {
			errs = append(errs, ValidationError{Field: field, Message: MsgDeadlineOutsidePeriod(d.Title), Err: ErrInvalidTaskData})
		}
	}
	return errs
}

// IsTaskOverdue - задача не завершена и конец периода уже прошел.
func IsTaskOverdue(t Task, now time.Time) bool {
	if t.Status == StatusCompleted || t.EndDate == nil {
		return false
	}
	return now.After(*t.EndDate)
}

func HasUncompletedDeadlines(t Task) bool {
	for _, d := range t.Deadlines {
		if !d.Completed {
			return true
		}
	}
	return false
}

// NextDeadline возвращает ближайший незавершенный дедлайн с датой.
// При равных датах побеждает первый по порядку в задаче.
func NextDeadline(t Task) (Deadline, bool) {
	var (
		next  Deadline
		found bool
	)
	for _, d := range t.Deadlines {
		if d.Completed || d.Date == nil {
			continue
		}
		if !found || d.Date.Before(*next.Date) {
			next, found = d, true
		}
	}
	if !found {
		return Deadline{}, false
	}
	return next.clone(), true
}

// TaskDuration - количество дней включительно, 0 если одна из границ не задана.
func TaskDuration(t Task) int {
	if t.StartDate == nil || t.EndDate == nil {
		return 0
	}
	diff := t.EndDate.Sub(*t.StartDate)
	days := diff / day
	if diff%day < 0 {
		days--
	}
	return int(days) + 1
}

// MoveTaskDates сдвигает начало, конец и все дедлайны на days дней.
func MoveTaskDates(t Task, days int) Task {
	out := t.Clone()
	shift := time.Duration(days) * day
	out.StartDate = shiftDate(t.StartDate, shift)
	out.EndDate = shiftDate(t.EndDate, shift)
	for i := range out.Deadlines {
		out.Deadlines[i].Date = shiftDate(t.Deadlines[i].Date, shift)
	}
	return out
}

func shiftDate(d *time.Time, shift time.Duration) *time.Time {
	if d == nil {
		return nil
	}
	moved := d.Add(shift)
	return &moved
}

// ExtendTaskStart меняет только начало периода.
func ExtendTaskStart(t Task, date time.Time) Task {
	out := t.Clone()
	out.StartDate = &date
	return out
}

// ExtendTaskEnd меняет только конец периода.
func ExtendTaskEnd(t Task, date time.Time) Task {
	out := t.Clone()
	out.EndDate = &date
	return out
}
