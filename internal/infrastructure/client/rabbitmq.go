package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/St1cky1/task-calendar/internal/entity"
	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitMQClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

func NewRabbitMQClient(url, queueName string, logger *slog.Logger) (*RabbitMQClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	queue, err := DeclareEventsQueue(channel, queueName)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitMQClient{
		conn:    conn,
		channel: channel,
		queue:   queue,
		logger:  logger,
	}, nil
}

// DeclareEventsQueue объявляет durable-очередь событий календаря.
// Вызывается и издателем, и воркером.
func DeclareEventsQueue(channel *amqp.Channel, name string) (amqp.Queue, error) {
	queue, err := channel.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("declare queue %s: %w", name, err)
	}
	return queue, nil
}

// Connection возвращает соединение, чтобы воркер открыл на нем свой канал
func (c *RabbitMQClient) Connection() *amqp.Connection {
	return c.conn
}

func (c *RabbitMQClient) QueueName() string {
	return c.queue.Name
}

func (c *RabbitMQClient) PublishEvent(ctx context.Context, event *entity.CalendarEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = c.channel.PublishWithContext(
		ctx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Сообщения сохраняются на диск
			Timestamp:    event.Timestamp,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	c.logger.Debug("событие отправлено", "calendar", event.Calendar, "command", event.Command, "task_id", event.TaskID)
	return nil
}

func (c *RabbitMQClient) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *RabbitMQClient) HealthCheck(ctx context.Context) error {
	if c.conn == nil || c.conn.IsClosed() {
		return amqp.ErrClosed
	}
	return nil
}
