package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"worker-profile-service/internal/shared/middleware"
	"worker-profile-service/internal/shared/response"
	"worker-profile-service/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	// Liveness probe, no auth.
	router.GET("/health", healthCheckHandler(c))

	profile := router.Group("/profile")
	{
		setupWorkerRoutes(profile, c)
		setupInternalRoutes(profile, c)
	}

	return router
}

// ========================================
// WORKER ROUTES
// ========================================
func setupWorkerRoutes(profile *gin.RouterGroup, c *container.Container) {
	auth := middleware.AuthMiddleware(c.JWTManager)
	ownership := middleware.CheckOwnership(c.WorkerService)

	workers := profile.Group("/workers")
	workers.Use(auth)
	{
		workers.GET("", c.WorkerHandler.ListWorkerProfiles)
		workers.POST("", c.WorkerHandler.CreateWorkerProfile)
		workers.GET("/:worker_id", c.WorkerHandler.GetWorkerProfile)
		workers.PATCH("/:worker_id", ownership, c.WorkerHandler.UpdateWorkerProfile)
		workers.DELETE("/:worker_id", ownership, c.WorkerHandler.DeleteWorkerProfile)
		workers.GET("/:worker_id/services/:service_id", c.WorkerHandler.CheckWorkerService)
	}
}

// ========================================
// INTERNAL ROUTES
// ========================================
// Trusted internal-to-internal surface; reachable only from inside the
// service mesh, which is why it sits outside the auth chain.
func setupInternalRoutes(profile *gin.RouterGroup, c *container.Container) {
	internal := profile.Group("/internal")
	{
		internal.GET("/workers/:worker_id/owner", c.WorkerHandler.GetWorkerOwner)
		internal.GET("/cache/stats", cacheStatsHandler(c))
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := gin.H{
			"status":  "OK",
			"service": c.Config.App.Name,
			"version": c.Config.App.Version,
		}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status["status"] = "DEGRADED"
			status["database"] = err.Error()
			ctx.JSON(http.StatusServiceUnavailable, status)
			return
		}

		// A cache outage degrades reads, it does not take the service
		// down.
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			status["cache"] = "unavailable"
		}

		ctx.JSON(http.StatusOK, status)
	}
}

func cacheStatsHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		stats, err := c.Cache.GetStats(ctx.Request.Context())
		if err != nil {
			response.InternalServerError(ctx, "cache statistics unavailable")
			return
		}
		response.Success(ctx, http.StatusOK, stats)
	}
}
