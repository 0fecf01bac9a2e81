package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"worker-profile-service/internal/infrastructure/queue"
	"worker-profile-service/internal/shared"
	"worker-profile-service/pkg/cache"
	"worker-profile-service/pkg/logger"
)

// dedupTTL is how long a processed envelope id is remembered. Events are
// delivered at-least-once; the guard drops redeliveries inside this window.
const dedupTTL = 24 * time.Hour

// EventHandlers consumes worker domain events. This is the in-repo
// downstream subscriber: it records per-type counters and logs each
// event; heavier consumers live in other services.
type EventHandlers struct {
	cache cache.Cache
}

func NewEventHandlers(cache cache.Cache) *EventHandlers {
	return &EventHandlers{cache: cache}
}

func (h *EventHandlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.EventWorkerCreated, h.HandleWorkerEvent)
	mux.HandleFunc(shared.EventWorkerUpdated, h.HandleWorkerEvent)
	mux.HandleFunc(shared.EventWorkerDeleted, h.HandleWorkerEvent)
}

func (h *EventHandlers) HandleWorkerEvent(ctx context.Context, task *asynq.Task) error {
	var envelope queue.Envelope
	if err := json.Unmarshal(task.Payload(), &envelope); err != nil {
		// A malformed envelope will never parse; retrying is pointless.
		return fmt.Errorf("failed to decode event envelope: %v: %w", err, asynq.SkipRetry)
	}

	if taskID, ok := asynq.GetTaskID(ctx); ok {
		seen, err := h.cache.SetNX(ctx, "events:processed:"+taskID, envelope.Timestamp, dedupTTL)
		if err == nil && !seen {
			logger.Info("duplicate event dropped", map[string]interface{}{
				"event_type": envelope.EventType,
				"task_id":    taskID,
			})
			return nil
		}
		// Guard unavailable: process anyway, consumers must tolerate
		// at-least-once delivery.
	}

	logger.Info("worker event received", map[string]interface{}{
		"event_type": envelope.EventType,
		"timestamp":  envelope.Timestamp,
		"data":       json.RawMessage(envelope.Data),
	})

	h.recordEventCount(ctx, envelope.EventType)
	return nil
}

// recordEventCount keeps a daily per-type counter in Redis. Best-effort:
// counter failures never fail event processing.
func (h *EventHandlers) recordEventCount(ctx context.Context, eventType string) {
	key := fmt.Sprintf("events:count:%s:%s", eventType, time.Now().UTC().Format("2006-01-02"))

	count, err := h.cache.Increment(ctx, key)
	if err != nil {
		return
	}
	if count == 1 {
		// First hit of the day sets the rollover expiry.
		if err := h.cache.Expire(ctx, key, 48*time.Hour); err != nil {
			logger.Warn("failed to set counter expiry", err)
		}
	}
}
