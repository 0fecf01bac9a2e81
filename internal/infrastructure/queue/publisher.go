package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"worker-profile-service/internal/shared"
	"worker-profile-service/pkg/logger"
)

// Envelope is the message shape every domain event is wrapped in before it
// hits the queue.
type Envelope struct {
	EventType string          `json:"event_type"`
	Timestamp string          `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// Publisher enqueues typed domain events for asynchronous consumption.
type Publisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// EventPublisher implements Publisher on an asynq client. Enqueue failures
// are returned to the caller: the service deliberately does not swallow
// them, so a broker outage fails the mutation request.
type EventPublisher struct {
	client *asynq.Client
}

func NewEventPublisher(client *asynq.Client) *EventPublisher {
	return &EventPublisher{client: client}
}

func (p *EventPublisher) Publish(ctx context.Context, eventType string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := Envelope{
		EventType: eventType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      payload,
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	task := asynq.NewTask(eventType, body)
	info, err := p.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueEvents),
		asynq.MaxRetry(5),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue event %s: %w", eventType, err)
	}

	logger.Info("event enqueued", map[string]interface{}{
		"event_type": eventType,
		"task_id":    info.ID,
		"queue":      info.Queue,
	})
	return nil
}
