package service

import (
	"context"

	"github.com/google/uuid"

	"worker-profile-service/internal/domains/worker/model"
)

// Service is the worker profile business logic contract.
type Service interface {
	ListWorkerProfiles(ctx context.Context, req model.ListWorkersRequest) (*model.ListWorkersResponse, error)
	CreateWorkerProfile(ctx context.Context, userID uuid.UUID, req model.CreateWorkerRequest) (*model.WorkerProfile, error)
	GetWorkerProfile(ctx context.Context, workerID uuid.UUID) (*model.WorkerProfile, error)
	UpdateWorkerProfile(ctx context.Context, workerID uuid.UUID, req model.UpdateWorkerRequest, userID uuid.UUID, userRole string) (*model.WorkerProfile, error)
	DeleteWorkerProfile(ctx context.Context, workerID uuid.UUID, userID uuid.UUID, userRole string) error
	CheckWorkerService(ctx context.Context, workerID uuid.UUID, serviceName string) (*model.ServiceCheckResponse, error)
	GetWorkerOwner(ctx context.Context, workerID uuid.UUID) (*model.WorkerOwner, error)
}
