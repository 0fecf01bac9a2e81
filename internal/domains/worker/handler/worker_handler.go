package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	worker "worker-profile-service/internal/domains/worker"
	"worker-profile-service/internal/domains/worker/model"
	"worker-profile-service/internal/domains/worker/service"
	"worker-profile-service/internal/shared/middleware"
	"worker-profile-service/internal/shared/response"
	"worker-profile-service/pkg/logger"
)

type WorkerHandler struct {
	workerService service.Service
}

func NewWorkerHandler(workerService service.Service) *WorkerHandler {
	return &WorkerHandler{workerService: workerService}
}

// respondError maps service errors onto the HTTP error contract.
func respondError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	switch {
	case errors.As(err, &validationErrs):
		response.ValidationFailed(c, validationErrs)
	case errors.Is(err, worker.ErrWorkerNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, worker.ErrNotOwner):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("request failed", err)
		response.InternalServerError(c, "An unexpected error occurred")
	}
}

func parseWorkerID(c *gin.Context) (uuid.UUID, bool) {
	workerID, err := uuid.Parse(c.Param("worker_id"))
	if err != nil {
		response.BadRequest(c, "invalid worker ID")
		return uuid.Nil, false
	}
	return workerID, true
}

// ListWorkerProfiles handles GET /profile/workers
func (h *WorkerHandler) ListWorkerProfiles(c *gin.Context) {
	req := model.ListWorkersRequest{
		Limit:  10,
		Offset: 0,
	}

	if raw := c.Query("categories"); raw != "" {
		req.Filters.Categories = strings.Split(raw, ",")
	}
	if raw := c.Query("active"); raw != "" {
		active := raw == "true"
		req.Filters.Active = &active
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			req.Limit = limit
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset > 0 {
			req.Offset = offset
		}
	}

	latRaw, lonRaw := c.Query("lat"), c.Query("lon")
	if latRaw != "" && lonRaw != "" {
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lon, lonErr := strconv.ParseFloat(lonRaw, 64)
		if latErr != nil || lonErr != nil {
			response.BadRequest(c, "invalid coordinates")
			return
		}
		req.UserLocation = &model.Coordinates{Lat: lat, Lon: lon}
		req.SortByDistance = c.Query("sort") == "distance"
	}

	result, err := h.workerService.ListWorkerProfiles(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// CreateWorkerProfile handles POST /profile/workers
func (h *WorkerHandler) CreateWorkerProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "missing caller identity")
		return
	}

	var req model.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.workerService.CreateWorkerProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, profile)
}

// GetWorkerProfile handles GET /profile/workers/:worker_id
func (h *WorkerHandler) GetWorkerProfile(c *gin.Context) {
	workerID, ok := parseWorkerID(c)
	if !ok {
		return
	}

	profile, err := h.workerService.GetWorkerProfile(c.Request.Context(), workerID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// UpdateWorkerProfile handles PATCH /profile/workers/:worker_id
func (h *WorkerHandler) UpdateWorkerProfile(c *gin.Context) {
	workerID, ok := parseWorkerID(c)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "missing caller identity")
		return
	}

	var req model.UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.workerService.UpdateWorkerProfile(
		c.Request.Context(), workerID, req, userID, middleware.GetUserRole(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// DeleteWorkerProfile handles DELETE /profile/workers/:worker_id
func (h *WorkerHandler) DeleteWorkerProfile(c *gin.Context) {
	workerID, ok := parseWorkerID(c)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "missing caller identity")
		return
	}

	err := h.workerService.DeleteWorkerProfile(
		c.Request.Context(), workerID, userID, middleware.GetUserRole(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CheckWorkerService handles GET /profile/workers/:worker_id/services/:service_id
func (h *WorkerHandler) CheckWorkerService(c *gin.Context) {
	workerID, ok := parseWorkerID(c)
	if !ok {
		return
	}

	serviceName := c.Param("service_id")

	result, err := h.workerService.CheckWorkerService(c.Request.Context(), workerID, serviceName)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetWorkerOwner handles GET /profile/internal/workers/:worker_id/owner.
// Trusted internal-to-internal lookup used by the availability service.
func (h *WorkerHandler) GetWorkerOwner(c *gin.Context) {
	workerID, ok := parseWorkerID(c)
	if !ok {
		return
	}

	owner, err := h.workerService.GetWorkerOwner(c.Request.Context(), workerID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, owner)
}
