package shared

// Worker domain event types. The asynq task type equals the event type so
// downstream consumers can subscribe per event.
const (
	EventWorkerCreated = "worker.created"
	EventWorkerUpdated = "worker.updated"
	EventWorkerDeleted = "worker.deleted"
)

// QueueEvents is the asynq queue all domain events are enqueued on.
const QueueEvents = "events"
