package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	worker "worker-profile-service/internal/domains/worker"
	"worker-profile-service/internal/domains/worker/model"
	"worker-profile-service/internal/domains/worker/repository"
	"worker-profile-service/internal/infrastructure/queue"
	"worker-profile-service/internal/shared"
	"worker-profile-service/internal/shared/utils"
	"worker-profile-service/pkg/cache"
	"worker-profile-service/pkg/logger"
)

// ProfileCacheTTL bounds how stale a cached profile can get. It is
// deliberately shorter than the cache wrapper's own default TTL.
const ProfileCacheTTL = 300 * time.Second

type workerService struct {
	repo      repository.Repository
	cache     cache.Cache
	publisher queue.Publisher
}

func NewWorkerService(repo repository.Repository, cache cache.Cache, publisher queue.Publisher) Service {
	return &workerService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
	}
}

func workerCacheKey(workerID uuid.UUID) string {
	return "worker:" + workerID.String()
}

// ========================================
// LIST
// ========================================

func (s *workerService) ListWorkerProfiles(ctx context.Context, req model.ListWorkersRequest) (*model.ListWorkersResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	profiles, err := s.repo.List(ctx, req.Filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list worker profiles: %w", err)
	}

	if req.UserLocation != nil {
		origin := utils.Point{Lat: req.UserLocation.Lat, Lon: req.UserLocation.Lon}
		for _, p := range profiles {
			if p.BaseLocation == nil {
				p.DistanceKm = nil
				continue
			}
			d := utils.CalculateDistance(origin, utils.Point{
				Lat: p.BaseLocation.Lat,
				Lon: p.BaseLocation.Lon,
			})
			p.DistanceKm = &d
		}

		if req.SortByDistance {
			// Stable ascending sort; profiles without a location are
			// treated as infinitely far and keep their relative order.
			sort.SliceStable(profiles, func(i, j int) bool {
				di, dj := profiles[i].DistanceKm, profiles[j].DistanceKm
				if di == nil {
					return false
				}
				if dj == nil {
					return true
				}
				return *di < *dj
			})
		}
	}

	// Pagination happens on the filtered, sorted in-memory slice so the
	// distance ordering holds for any requested page.
	page, meta := utils.Paginate(profiles, req.Limit, req.Offset)

	// Best-effort batch warm of the page's profiles for subsequent
	// single-profile reads. Advisory only.
	if len(page) > 0 {
		entries := make(map[string]interface{}, len(page))
		for _, p := range page {
			entries[workerCacheKey(p.ID)] = p
		}
		if err := s.cache.MSet(ctx, entries, ProfileCacheTTL); err != nil {
			logger.Warn("failed to warm worker profile cache", err)
		}
	}

	return &model.ListWorkersResponse{
		Workers: page,
		Pagination: model.Pagination{
			Total:   meta.Total,
			Limit:   meta.Limit,
			Offset:  meta.Offset,
			HasNext: meta.HasNext,
			HasPrev: meta.HasPrev,
		},
	}, nil
}

// ========================================
// CREATE
// ========================================

func (s *workerService) CreateWorkerProfile(ctx context.Context, userID uuid.UUID, req model.CreateWorkerRequest) (*model.WorkerProfile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	profile := &model.WorkerProfile{
		UserID:         userID,
		Name:           req.Name,
		Bio:            req.Bio,
		Active:         true,
		TravelRadiusKm: req.TravelRadiusKm,
		Metadata:       req.Metadata,
		Categories:     toNamedEntities(req.Categories),
		Skills:         toNamedEntities(req.Skills),
		Certifications: toNamedEntities(req.Certifications),
	}
	if req.ExperienceYears != nil {
		profile.ExperienceYears = *req.ExperienceYears
	}
	if req.Active != nil {
		profile.Active = *req.Active
	}
	if req.BaseLocation != nil {
		profile.BaseLocation = &model.BaseLocation{
			Address: req.BaseLocation.Address,
			City:    req.BaseLocation.City,
			Lat:     req.BaseLocation.Lat,
			Lon:     req.BaseLocation.Lon,
		}
	}
	for _, area := range req.ServiceAreas {
		profile.ServiceAreas = append(profile.ServiceAreas, model.ServiceArea{
			City: area.City,
			Note: area.Note,
		})
	}

	// The repository persists the profile and every association as one
	// transaction; a failure leaves no partial rows behind.
	created, err := s.repo.Create(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker profile: %w", err)
	}

	// Publish failures propagate: the row is committed but the request
	// fails, surfacing the broker outage instead of dropping the event.
	if err := s.publisher.Publish(ctx, shared.EventWorkerCreated, model.WorkerCreatedEvent{
		WorkerID: created.ID,
		UserID:   userID,
		Name:     created.Name,
	}); err != nil {
		return nil, err
	}

	return created, nil
}

func toNamedEntities(entityNames []string) []model.NamedEntity {
	entities := make([]model.NamedEntity, len(entityNames))
	for i, name := range entityNames {
		entities[i] = model.NamedEntity{Name: name}
	}
	return entities
}

// ========================================
// GET (cache-aside)
// ========================================

func (s *workerService) GetWorkerProfile(ctx context.Context, workerID uuid.UUID) (*model.WorkerProfile, error) {
	key := workerCacheKey(workerID)

	var cached model.WorkerProfile
	found, err := s.cache.Get(ctx, key, &cached)
	if err == nil && found {
		return &cached, nil
	}
	// A cache read or decode failure has been logged by the wrapper;
	// fall through to storage either way.

	profile, err := s.repo.GetByID(ctx, workerID)
	if err != nil {
		return nil, err
	}

	// Repopulation is advisory, never load-bearing.
	if err := s.cache.Set(ctx, key, profile, ProfileCacheTTL); err != nil {
		logger.Warn("failed to cache worker profile", err)
	}

	return profile, nil
}

// ========================================
// UPDATE
// ========================================

func (s *workerService) UpdateWorkerProfile(ctx context.Context, workerID uuid.UUID, req model.UpdateWorkerRequest, userID uuid.UUID, userRole string) (*model.WorkerProfile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The ownership fetch goes through the cache-aside path, so a cache
	// hit short-circuits the storage read here too.
	profile, err := s.GetWorkerProfile(ctx, workerID)
	if err != nil {
		return nil, err
	}

	if userRole != worker.RoleAdmin && profile.UserID != userID {
		return nil, worker.ErrNotOwner
	}

	// Scalar fields only. Association collections in the request are
	// accepted by validation but not reconciled here.
	updated, err := s.repo.UpdateScalars(ctx, workerID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update worker profile: %w", err)
	}

	if err := s.cache.Delete(ctx, workerCacheKey(workerID)); err != nil {
		logger.Warn("failed to invalidate worker profile cache", err)
	}

	if err := s.publisher.Publish(ctx, shared.EventWorkerUpdated, model.WorkerUpdatedEvent{
		WorkerID: updated.ID,
		UserID:   updated.UserID,
		Name:     updated.Name,
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// ========================================
// DELETE
// ========================================

func (s *workerService) DeleteWorkerProfile(ctx context.Context, workerID uuid.UUID, userID uuid.UUID, userRole string) error {
	profile, err := s.GetWorkerProfile(ctx, workerID)
	if err != nil {
		return err
	}

	if userRole != worker.RoleAdmin && profile.UserID != userID {
		return worker.ErrNotOwner
	}

	if err := s.repo.Delete(ctx, workerID); err != nil {
		return fmt.Errorf("failed to delete worker profile: %w", err)
	}

	if err := s.cache.Delete(ctx, workerCacheKey(workerID)); err != nil {
		logger.Warn("failed to invalidate worker profile cache", err)
	}

	// Emitted only after the delete has committed, so a failed delete
	// never publishes a ghost-deletion event.
	return s.publisher.Publish(ctx, shared.EventWorkerDeleted, model.WorkerDeletedEvent{
		WorkerID: workerID,
		UserID:   profile.UserID,
	})
}

// ========================================
// SERVICE CHECK / OWNER LOOKUP
// ========================================

func (s *workerService) CheckWorkerService(ctx context.Context, workerID uuid.UUID, serviceName string) (*model.ServiceCheckResponse, error) {
	profile, err := s.GetWorkerProfile(ctx, workerID)
	if err != nil {
		return nil, err
	}

	offers := false
	for _, category := range profile.Categories {
		if category.Name == serviceName {
			offers = true
			break
		}
	}

	return &model.ServiceCheckResponse{
		WorkerID:      workerID,
		Service:       serviceName,
		OffersService: offers,
	}, nil
}

func (s *workerService) GetWorkerOwner(ctx context.Context, workerID uuid.UUID) (*model.WorkerOwner, error) {
	userID, err := s.repo.GetOwner(ctx, workerID)
	if err != nil {
		return nil, err
	}
	return &model.WorkerOwner{WorkerID: workerID, UserID: userID}, nil
}
