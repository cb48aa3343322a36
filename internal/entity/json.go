package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// Формат дат совпадает с Date.toISOString(): миллисекунды и Z для UTC.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

const dateOnlyLayout = "2006-01-02"

// ParseDate принимает RFC 3339 или дату вида YYYY-MM-DD (полночь UTC).
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate - ISO-8601 в UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func formatOptionalDate(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := FormatDate(*d)
	return &s
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type deadlineJSON struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Date      *string `json:"date"`
	Completed bool    `json:"completed"`
}

type taskJSON struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Memo      string       `json:"memo"`
	Link      string       `json:"link"`
	Status    TaskStatus   `json:"status"`
	CreatedAt *string      `json:"createdAt"`
	StartDate *string      `json:"startDate"`
	EndDate   *string      `json:"endDate"`
	Deadlines []Deadline   `json:"deadlines"`
	Order     int          `json:"order"`
	Tags      []string     `json:"tags"`
	Priority  TaskPriority `json:"priority"`
	Color     TaskColor    `json:"color"`
}

type calendarJSON struct {
	Version      string  `json:"version"`
	LastModified *string `json:"lastModified"`
	Tasks        []Task  `json:"tasks"`
}

func (d Deadline) MarshalJSON() ([]byte, error) {
	return json.Marshal(deadlineJSON{
		ID:        d.ID,
		Title:     d.Title,
		Date:      formatOptionalDate(d.Date),
		Completed: d.Completed,
	})
}

func (d *Deadline) UnmarshalJSON(data []byte) error {
	var raw deadlineJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	date, err := parseOptionalDate(raw.Date)
	if err != nil {
		return fmt.Errorf("deadline %s: %w", raw.ID, err)
	}
	*d = Deadline{ID: raw.ID, Title: raw.Title, Date: date, Completed: raw.Completed}
	return nil
}

func (t Task) MarshalJSON() ([]byte, error) {
	raw := taskJSON{
		ID:        t.ID,
		Title:     t.Title,
		Memo:      t.Memo,
		Link:      t.Link,
		Status:    t.Status,
		StartDate: formatOptionalDate(t.StartDate),
		EndDate:   formatOptionalDate(t.EndDate),
		Deadlines: t.Deadlines,
		Order:     t.Order,
		Tags:      t.Tags,
		Priority:  t.Priority,
		Color:     t.Color,
	}
	if !t.CreatedAt.IsZero() {
		raw.CreatedAt = formatOptionalDate(&t.CreatedAt)
	}
	if raw.Deadlines == nil {
		raw.Deadlines = []Deadline{}
	}
	if raw.Tags == nil {
		raw.Tags = []string{}
	}
	return json.Marshal(raw)
}

// UnmarshalJSON заполняет дефолты для отсутствующих необязательных полей.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw taskJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Task{
		ID:        raw.ID,
		Title:     raw.Title,
		Memo:      raw.Memo,
		Link:      raw.Link,
		Status:    raw.Status,
		Deadlines: raw.Deadlines,
		Order:     raw.Order,
		Tags:      raw.Tags,
		Priority:  raw.Priority,
		Color:     raw.Color,
	}
	if out.Status == "" {
		out.Status = StatusUndefined
	}
	if out.Priority == "" {
		out.Priority = PriorityMedium
	}
	if out.Color == "" {
		out.Color = ColorBlue
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.Deadlines == nil {
		out.Deadlines = []Deadline{}
	}

	created, err := parseOptionalDate(raw.CreatedAt)
	if err != nil {
		return fmt.Errorf("task %s createdAt: %w", raw.ID, err)
	}
	if created != nil {
		out.CreatedAt = *created
	}
	if out.StartDate, err = parseOptionalDate(raw.StartDate); err != nil {
		return fmt.Errorf("task %s startDate: %w", raw.ID, err)
	}
	if out.EndDate, err = parseOptionalDate(raw.EndDate); err != nil {
		return fmt.Errorf("task %s endDate: %w", raw.ID, err)
	}

	*t = out
	return nil
}

func (c TaskCalendar) MarshalJSON() ([]byte, error) {
	raw := calendarJSON{
		Version:      c.Version,
		LastModified: formatOptionalDate(&c.LastModified),
		Tasks:        c.Tasks,
	}
	if raw.Tasks == nil {
		raw.Tasks = []Task{}
	}
	return json.Marshal(raw)
}

// UnmarshalJSON: отсутствующая версия становится CurrentVersion,
// отсутствующий lastModified - нулевым временем.
func (c *TaskCalendar) UnmarshalJSON(data []byte) error {
	var raw calendarJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := TaskCalendar{Version: raw.Version, Tasks: raw.Tasks}
	if out.Version == "" {
		out.Version = CurrentVersion
	}
	if out.Tasks == nil {
		out.Tasks = []Task{}
	}
	modified, err := parseOptionalDate(raw.LastModified)
	if err != nil {
		return fmt.Errorf("calendar lastModified: %w", err)
	}
	if modified != nil {
		out.LastModified = *modified
	}
	*c = out
	return nil
}
