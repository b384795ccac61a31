package shift

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
	shifts := r.Group("/shifts")
	shifts.Use(middleware.AuthMiddleware())
	shifts.Use(middleware.ContextLogger(logger))
	{
		shifts.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "shift", "read"),
			handler.GetAll,
		)

		shifts.GET("/templates",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "shift", "read"),
			handler.GetTemplates,
		)

		shifts.POST("/templates",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "shift", "create"),
			handler.CreateTemplate,
		)

		shifts.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "shift", "read"),
			handler.GetById,
		)

		shifts.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "shift", "create"),
			handler.Create,
		)

		shifts.PUT("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "shift", "update"),
			handler.Update,
		)

		shifts.POST("/:id/cancel",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "shift", "update"),
			handler.Cancel,
		)

		shifts.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "shift", "delete"),
			handler.Delete,
		)
	}
}
