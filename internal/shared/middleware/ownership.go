package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	worker "worker-profile-service/internal/domains/worker"
	workerService "worker-profile-service/internal/domains/worker/service"
	"worker-profile-service/internal/shared/response"
)

// CheckOwnership guards mutation routes: admins pass, everyone else must
// own the targeted profile. The profile fetch goes through the service's
// cache-aside path. Must run after AuthMiddleware.
func CheckOwnership(svc workerService.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		workerID, err := uuid.Parse(c.Param("worker_id"))
		if err != nil {
			response.BadRequest(c, "invalid worker ID")
			c.Abort()
			return
		}

		if GetUserRole(c) == worker.RoleAdmin {
			c.Next()
			return
		}

		userID, ok := GetUserID(c)
		if !ok {
			response.Unauthorized(c, "missing caller identity")
			c.Abort()
			return
		}

		profile, err := svc.GetWorkerProfile(c.Request.Context(), workerID)
		if err != nil {
			if errors.Is(err, worker.ErrWorkerNotFound) {
				response.NotFound(c, err.Error())
			} else {
				response.InternalServerError(c, "An unexpected error occurred")
			}
			c.Abort()
			return
		}

		if profile.UserID != userID {
			response.Forbidden(c, "Access denied: not the owner")
			c.Abort()
			return
		}

		c.Next()
	}
}
