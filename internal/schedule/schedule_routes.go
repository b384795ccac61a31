package schedule

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-teamplanner/internal/middleware"
	"go-teamplanner/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	schedules := r.Group("/schedules")
	schedules.Use(middleware.AuthMiddleware())
	schedules.Use(middleware.ContextLogger(logger))
	{
		schedules.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "schedule", "read"),
			handler.GetAll,
		)

		schedules.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "schedule", "read"),
			handler.GetById,
		)

		schedules.GET("/:id/status",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "schedule", "read"),
			handler.GetStatus,
		)

		schedules.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "schedule", "create"),
			handler.Create,
		)

		schedules.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "schedule", "update"),
			handler.Update,
		)

		schedules.POST("/:id/publish",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "schedule", "publish"),
			handler.Publish,
		)

		schedules.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "schedule", "delete"),
			handler.Delete,
		)
	}
}
