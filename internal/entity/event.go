package entity

import (
	"time"
)

// CalendarEvent - запись об успешной мутирующей команде. Публикуется в RabbitMQ
// и сохраняется воркером в calendar_event.
type CalendarEvent struct {
	ID        int64     `json:"id,omitempty"`
	Calendar  string    `json:"calendar"`
	Command   string    `json:"command"`
	TaskID    string    `json:"task_id,omitempty"`
	TaskTitle string    `json:"task_title,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
