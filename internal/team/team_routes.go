package team

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
	teams := r.Group("/teams")
	teams.Use(middleware.AuthMiddleware())
	teams.Use(middleware.ContextLogger(logger))
	{
		teams.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "team", "read"),
			handler.GetAll,
		)

		teams.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "team", "read"),
			handler.GetById,
		)

		teams.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "team", "create"),
			handler.Create,
		)

		teams.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "team", "update"),
			handler.Update,
		)

		teams.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "team", "delete"),
			handler.Delete,
		)

		teams.POST("/:id/members",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "team", "update"),
			handler.AddMember,
		)

		teams.DELETE("/:id/members/:employeeId",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "team", "update"),
			handler.RemoveMember,
		)
	}
}
