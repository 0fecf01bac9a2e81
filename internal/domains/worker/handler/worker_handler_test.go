package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	worker "worker-profile-service/internal/domains/worker"
	"worker-profile-service/internal/domains/worker/model"
)

// stubService lets each test script the service layer per method.
type stubService struct {
	listFn   func(ctx context.Context, req model.ListWorkersRequest) (*model.ListWorkersResponse, error)
	createFn func(ctx context.Context, userID uuid.UUID, req model.CreateWorkerRequest) (*model.WorkerProfile, error)
	getFn    func(ctx context.Context, workerID uuid.UUID) (*model.WorkerProfile, error)
	updateFn func(ctx context.Context, workerID uuid.UUID, req model.UpdateWorkerRequest, userID uuid.UUID, role string) (*model.WorkerProfile, error)
	deleteFn func(ctx context.Context, workerID uuid.UUID, userID uuid.UUID, role string) error
	checkFn  func(ctx context.Context, workerID uuid.UUID, serviceName string) (*model.ServiceCheckResponse, error)
	ownerFn  func(ctx context.Context, workerID uuid.UUID) (*model.WorkerOwner, error)
}

func (s *stubService) ListWorkerProfiles(ctx context.Context, req model.ListWorkersRequest) (*model.ListWorkersResponse, error) {
	return s.listFn(ctx, req)
}

func (s *stubService) CreateWorkerProfile(ctx context.Context, userID uuid.UUID, req model.CreateWorkerRequest) (*model.WorkerProfile, error) {
	return s.createFn(ctx, userID, req)
}

func (s *stubService) GetWorkerProfile(ctx context.Context, workerID uuid.UUID) (*model.WorkerProfile, error) {
	return s.getFn(ctx, workerID)
}

func (s *stubService) UpdateWorkerProfile(ctx context.Context, workerID uuid.UUID, req model.UpdateWorkerRequest, userID uuid.UUID, role string) (*model.WorkerProfile, error) {
	return s.updateFn(ctx, workerID, req, userID, role)
}

func (s *stubService) DeleteWorkerProfile(ctx context.Context, workerID uuid.UUID, userID uuid.UUID, role string) error {
	return s.deleteFn(ctx, workerID, userID, role)
}

func (s *stubService) CheckWorkerService(ctx context.Context, workerID uuid.UUID, serviceName string) (*model.ServiceCheckResponse, error) {
	return s.checkFn(ctx, workerID, serviceName)
}

func (s *stubService) GetWorkerOwner(ctx context.Context, workerID uuid.UUID) (*model.WorkerOwner, error) {
	return s.ownerFn(ctx, workerID)
}

// newTestRouter mounts the handler with a shim that injects the caller
// identity, standing in for the auth middleware.
func newTestRouter(svc *stubService, userID uuid.UUID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewWorkerHandler(svc)
	group := router.Group("/profile/workers")
	if userID != uuid.Nil {
		group.Use(func(c *gin.Context) {
			c.Set("user_id", userID)
			c.Set("role", role)
		})
	}
	group.GET("", h.ListWorkerProfiles)
	group.POST("", h.CreateWorkerProfile)
	group.GET("/:worker_id", h.GetWorkerProfile)
	group.PATCH("/:worker_id", h.UpdateWorkerProfile)
	group.DELETE("/:worker_id", h.DeleteWorkerProfile)
	group.GET("/:worker_id/services/:service_id", h.CheckWorkerService)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateWorkerProfileCreated(t *testing.T) {
	userID := uuid.New()
	created := &model.WorkerProfile{ID: uuid.New(), UserID: userID, Name: "Jane"}
	svc := &stubService{
		createFn: func(_ context.Context, gotUser uuid.UUID, req model.CreateWorkerRequest) (*model.WorkerProfile, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, "Jane", req.Name)
			assert.Equal(t, []string{"plumbing"}, req.Categories)
			return created, nil
		},
	}

	w := doRequest(newTestRouter(svc, userID, "worker"), http.MethodPost, "/profile/workers",
		`{"name":"Jane","bio":"plumber","categories":["plumbing"]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), created.ID.String())
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestCreateWorkerProfileWithoutIdentity(t *testing.T) {
	svc := &stubService{}
	w := doRequest(newTestRouter(svc, uuid.Nil, ""), http.MethodPost, "/profile/workers",
		`{"name":"Jane","bio":"plumber","categories":["plumbing"]}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateWorkerProfileMalformedBody(t *testing.T) {
	svc := &stubService{}
	w := doRequest(newTestRouter(svc, uuid.New(), "worker"), http.MethodPost, "/profile/workers",
		`{"name":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateWorkerProfileValidationError(t *testing.T) {
	svc := &stubService{
		createFn: func(context.Context, uuid.UUID, model.CreateWorkerRequest) (*model.WorkerProfile, error) {
			return nil, validation.Errors{"categories": validation.ErrRequired}
		},
	}

	w := doRequest(newTestRouter(svc, uuid.New(), "worker"), http.MethodPost, "/profile/workers",
		`{"name":"Jane","bio":"plumber"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	assert.Contains(t, w.Body.String(), "categories")
}

func TestGetWorkerProfileNotFound(t *testing.T) {
	svc := &stubService{
		getFn: func(context.Context, uuid.UUID) (*model.WorkerProfile, error) {
			return nil, worker.ErrWorkerNotFound
		},
	}

	w := doRequest(newTestRouter(svc, uuid.New(), "worker"), http.MethodGet,
		"/profile/workers/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestGetWorkerProfileInvalidID(t *testing.T) {
	svc := &stubService{}
	w := doRequest(newTestRouter(svc, uuid.New(), "worker"), http.MethodGet,
		"/profile/workers/not-a-uuid", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateWorkerProfileForbidden(t *testing.T) {
	svc := &stubService{
		updateFn: func(context.Context, uuid.UUID, model.UpdateWorkerRequest, uuid.UUID, string) (*model.WorkerProfile, error) {
			return nil, worker.ErrNotOwner
		},
	}

	w := doRequest(newTestRouter(svc, uuid.New(), "worker"), http.MethodPatch,
		"/profile/workers/"+uuid.NewString(), `{"name":"Evil"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestUpdateWorkerProfilePassesRole(t *testing.T) {
	userID := uuid.New()
	svc := &stubService{
		updateFn: func(_ context.Context, _ uuid.UUID, req model.UpdateWorkerRequest, gotUser uuid.UUID, role string) (*model.WorkerProfile, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, worker.RoleAdmin, role)
			require.NotNil(t, req.Name)
			assert.Equal(t, "Renamed", *req.Name)
			return &model.WorkerProfile{ID: uuid.New(), Name: "Renamed"}, nil
		},
	}

	w := doRequest(newTestRouter(svc, userID, worker.RoleAdmin), http.MethodPatch,
		"/profile/workers/"+uuid.NewString(), `{"name":"Renamed"}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteWorkerProfileNoContent(t *testing.T) {
	svc := &stubService{
		deleteFn: func(context.Context, uuid.UUID, uuid.UUID, string) error { return nil },
	}

	w := doRequest(newTestRouter(svc, uuid.New(), "worker"), http.MethodDelete,
		"/profile/workers/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestListWorkerProfilesQueryParsing(t *testing.T) {
	var captured model.ListWorkersRequest
	svc := &stubService{
		listFn: func(_ context.Context, req model.ListWorkersRequest) (*model.ListWorkersResponse, error) {
			captured = req
			return &model.ListWorkersResponse{Workers: []*model.WorkerProfile{}}, nil
		},
	}

	w := doRequest(newTestRouter(svc, uuid.New(), "worker"), http.MethodGet,
		"/profile/workers?categories=plumbing,electrical&active=true&limit=5&offset=10&lat=48.85&lon=2.35&sort=distance", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"plumbing", "electrical"}, captured.Filters.Categories)
	require.NotNil(t, captured.Filters.Active)
	assert.True(t, *captured.Filters.Active)
	assert.Equal(t, 5, captured.Limit)
	assert.Equal(t, 10, captured.Offset)
	require.NotNil(t, captured.UserLocation)
	assert.Equal(t, 48.85, captured.UserLocation.Lat)
	assert.Equal(t, 2.35, captured.UserLocation.Lon)
	assert.True(t, captured.SortByDistance)
}

func TestListWorkerProfilesDefaults(t *testing.T) {
	var captured model.ListWorkersRequest
	svc := &stubService{
		listFn: func(_ context.Context, req model.ListWorkersRequest) (*model.ListWorkersResponse, error) {
			captured = req
			return &model.ListWorkersResponse{Workers: []*model.WorkerProfile{}}, nil
		},
	}

	w := doRequest(newTestRouter(svc, uuid.New(), "worker"), http.MethodGet, "/profile/workers", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, captured.Limit)
	assert.Zero(t, captured.Offset)
	assert.Nil(t, captured.UserLocation)
}

func TestListWorkerProfilesBadCoordinates(t *testing.T) {
	svc := &stubService{}
	w := doRequest(newTestRouter(svc, uuid.New(), "worker"), http.MethodGet,
		"/profile/workers?lat=abc&lon=2.35", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckWorkerService(t *testing.T) {
	workerID := uuid.New()
	svc := &stubService{
		checkFn: func(_ context.Context, gotID uuid.UUID, serviceName string) (*model.ServiceCheckResponse, error) {
			assert.Equal(t, workerID, gotID)
			assert.Equal(t, "plumbing", serviceName)
			return &model.ServiceCheckResponse{WorkerID: workerID, Service: serviceName, OffersService: true}, nil
		},
	}

	w := doRequest(newTestRouter(svc, uuid.New(), "worker"), http.MethodGet,
		"/profile/workers/"+workerID.String()+"/services/plumbing", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"offersService":true`)
}
