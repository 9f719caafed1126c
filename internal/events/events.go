// Package events publishes domain events to RabbitMQ.
//
// Publishing is best effort: callers log failures and carry on, a lost event
// never fails the write that produced it.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"assettrack/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LogRecorded is emitted after a maintenance log has been committed.
type LogRecorded struct {
	LogID             uint             `json:"log_id"`
	AssetID           uint             `json:"asset_id"`
	PerformedByUserID uint             `json:"performed_by_user_id"`
	TaskType          models.TaskType  `json:"task_type"`
	Status            models.LogStatus `json:"status"`
	PerformedDate     time.Time        `json:"performed_date"`
	RecordedAt        time.Time        `json:"recorded_at"`
}

// NewLogRecorded builds the event for a stored log.
func NewLogRecorded(log *models.MaintenanceLog) LogRecorded {
	return LogRecorded{
		LogID:             log.ID,
		AssetID:           log.AssetID,
		PerformedByUserID: log.PerformedByUserID,
		TaskType:          log.TaskType,
		Status:            log.Status,
		PerformedDate:     time.Time(log.PerformedDate),
		RecordedAt:        time.Now().UTC(),
	}
}

type Publisher interface {
	PublishLogRecorded(ctx context.Context, event LogRecorded) error
	Close() error
}

// NopPublisher drops every event. Used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) PublishLogRecorded(context.Context, LogRecorded) error { return nil }
func (NopPublisher) Close() error { return nil }

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher sends events as persistent JSON messages to a durable queue on
// the default exchange.
type AMQPPublisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    channel
	queue string
}

// Dial connects to the broker at url and declares queue.
func Dial(url, queue string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial failed: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: channel open failed: %w", err)
	}

	p, err := newPublisher(ch, queue)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, queue string) (*AMQPPublisher, error) {
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("rabbitmq: queue declare failed: %w", err)
	}
	return &AMQPPublisher{ch: ch, queue: queue}, nil
}

func (p *AMQPPublisher) PublishLogRecorded(ctx context.Context, event LogRecorded) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal event failed: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.RecordedAt,
		Type:         "maintenance.log.recorded",
		Body:         body,
	}

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq: publish failed: %w", err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
