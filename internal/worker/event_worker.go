package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/St1cky1/task-calendar/internal/entity"
	"github.com/St1cky1/task-calendar/internal/infrastructure/client"
	"github.com/St1cky1/task-calendar/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
)

const reconnectDelay = 5 * time.Second

// EventWorker читает события календарей из RabbitMQ и пишет их в calendar_event.
type EventWorker struct {
	url    string
	queue  string
	events repository.ICalendarEventRepository
	logger *slog.Logger
}

func NewEventWorker(url, queue string, events repository.ICalendarEventRepository, logger *slog.Logger) *EventWorker {
	return &EventWorker{
		url:    url,
		queue:  queue,
		events: events,
		logger: logger.With("component", "event_worker"),
	}
}

// Start блокируется до отмены ctx, переподключаясь при обрыве соединения.
func (w *EventWorker) Start(ctx context.Context) {
	w.logger.Info("воркер событий запущен", "queue", w.queue)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("воркер событий остановлен")
			return
		default:
		}

		err := w.run(ctx)
		if ctx.Err() != nil {
			w.logger.Info("воркер событий остановлен")
			return
		}
		w.logger.Error("воркер событий упал, переподключение", "error", err, "delay", reconnectDelay)

		select {
		case <-ctx.Done():
			w.logger.Info("воркер событий остановлен")
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (w *EventWorker) run(ctx context.Context) error {
	// Отдельное соединение для consumer'а
	conn, err := amqp.Dial(w.url)
	if err != nil {
		return fmt.Errorf("ошибка подключения: %w", err)
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("ошибка создания канала: %w", err)
	}
	defer channel.Close()

	if _, err := client.DeclareEventsQueue(channel, w.queue); err != nil {
		return err
	}

	msgs, err := channel.Consume(
		w.queue,        // queue
		"event_worker", // consumer tag
		false,          // auto-ack
		false,          // exclusive
		false,          // no-local
		false,          // no-wait
		nil,            // args
	)
	if err != nil {
		return fmt.Errorf("ошибка создания consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("канал сообщений закрыт")
			}
			w.processMessage(ctx, msg)
		}
	}
}

// processMessage: битое сообщение отбрасывается, ошибка базы возвращает его в очередь.
func (w *EventWorker) processMessage(ctx context.Context, msg amqp.Delivery) {
	// 1. Парсим сообщение
	var event entity.CalendarEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		w.logger.Warn("ошибка парсинга сообщения", "error", err)
		w.nack(msg, false)
		return
	}
	if event.Calendar == "" || event.Command == "" {
		w.logger.Warn("неполное событие", "body", string(msg.Body))
		w.nack(msg, false)
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = msg.Timestamp
	}

	// 2. Сохраняем в БД
	if err := w.events.Create(ctx, &event); err != nil {
		w.logger.Error("ошибка сохранения события", "calendar", event.Calendar, "error", err)
		w.nack(msg, true)
		return
	}

	// 3. Подтверждаем обработку
	if err := msg.Ack(false); err != nil {
		w.logger.Error("ошибка ack", "error", err)
		return
	}
	w.logger.Debug("событие сохранено", "calendar", event.Calendar, "command", event.Command, "id", event.ID)
}

func (w *EventWorker) nack(msg amqp.Delivery, requeue bool) {
	if err := msg.Nack(false, requeue); err != nil {
		w.logger.Error("ошибка nack", "error", err)
	}
}
