package model

import "github.com/google/uuid"

// Event payloads published on the events queue. Each carries the worker
// id and the acting user id plus the fields downstream consumers need.

type WorkerCreatedEvent struct {
	WorkerID uuid.UUID `json:"workerId"`
	UserID   uuid.UUID `json:"userId"`
	Name     string    `json:"name"`
}

type WorkerUpdatedEvent struct {
	WorkerID uuid.UUID `json:"workerId"`
	UserID   uuid.UUID `json:"userId"`
	Name     string    `json:"name"`
}

type WorkerDeletedEvent struct {
	WorkerID uuid.UUID `json:"workerId"`
	UserID   uuid.UUID `json:"userId"`
}
