package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"assettrack/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declared   []string
	published  []amqp.Publishing
	keys       []string
	publishErr error
	closed     bool
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	if !durable {
		return amqp.Queue{}, errors.New("queue must be durable")
	}
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPPublisher(t *testing.T) {
	log := &models.MaintenanceLog{
		ID:                5,
		AssetID:           3,
		PerformedByUserID: 2,
		Status:            models.LogStatusDone,
		TaskType:          models.TaskProduction,
		PerformedDate:     models.Date(2024, time.May, 15),
	}

	t.Run("Publishes persistent JSON to the queue", func(t *testing.T) {
		ch := &fakeChannel{}
		p, err := newPublisher(ch, "maintenance.log.recorded")
		require.NoError(t, err)
		assert.Equal(t, []string{"maintenance.log.recorded"}, ch.declared)

		require.NoError(t, p.PublishLogRecorded(context.Background(), NewLogRecorded(log)))

		require.Len(t, ch.published, 1)
		msg := ch.published[0]
		assert.Equal(t, "maintenance.log.recorded", ch.keys[0])
		assert.Equal(t, "application/json", msg.ContentType)
		assert.Equal(t, amqp.Persistent, msg.DeliveryMode)

		var got LogRecorded
		require.NoError(t, json.Unmarshal(msg.Body, &got))
		assert.Equal(t, uint(5), got.LogID)
		assert.Equal(t, uint(3), got.AssetID)
		assert.Equal(t, models.TaskProduction, got.TaskType)
		assert.True(t, got.PerformedDate.Equal(time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)))

		require.NoError(t, p.Close())
		assert.True(t, ch.closed)
	})

	t.Run("Publish failure is returned", func(t *testing.T) {
		ch := &fakeChannel{publishErr: amqp.ErrClosed}
		p, err := newPublisher(ch, "q")
		require.NoError(t, err)

		err = p.PublishLogRecorded(context.Background(), NewLogRecorded(log))
		assert.ErrorIs(t, err, amqp.ErrClosed)
	})
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishLogRecorded(context.Background(), LogRecorded{}))
	assert.NoError(t, p.Close())
}
