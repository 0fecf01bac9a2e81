package repository

import (
	"context"

	"github.com/google/uuid"

	"worker-profile-service/internal/domains/worker/model"
)

// Repository is the worker profile data access contract.
type Repository interface {
	// Create inserts the profile row and all requested associations as
	// one transaction. Named entities are upserted by unique name. The
	// returned profile has every association loaded.
	Create(ctx context.Context, profile *model.WorkerProfile) (*model.WorkerProfile, error)

	// GetByID loads a profile with all associations. Returns
	// worker.ErrWorkerNotFound when absent.
	GetByID(ctx context.Context, workerID uuid.UUID) (*model.WorkerProfile, error)

	// List returns every profile matching the filters, associations
	// loaded. Pagination is applied by the caller, not here.
	List(ctx context.Context, filters model.ListFilters) ([]*model.WorkerProfile, error)

	// UpdateScalars applies the scalar patch fields to the profile row
	// and returns the re-read full profile.
	UpdateScalars(ctx context.Context, workerID uuid.UUID, req model.UpdateWorkerRequest) (*model.WorkerProfile, error)

	// Delete removes the profile row; associations cascade.
	Delete(ctx context.Context, workerID uuid.UUID) error

	// GetOwner returns only the owning user id.
	GetOwner(ctx context.Context, workerID uuid.UUID) (uuid.UUID, error)
}
