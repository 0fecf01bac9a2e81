package worker

import "errors"

// Repository-level errors
var (
	ErrWorkerNotFound = errors.New("worker profile not found")
)

// Service-level (business logic) errors
var (
	ErrNotOwner     = errors.New("access denied: not the owner")
	ErrUnauthorized = errors.New("unauthorized access")
)

// RoleAdmin may mutate any profile; every other role only its own.
const RoleAdmin = "admin"
