package swap

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
	swaps := r.Group("/swaps")
	swaps.Use(middleware.AuthMiddleware())
	swaps.Use(middleware.ContextLogger(logger))
	{
		swaps.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "swap", "read"),
			handler.GetAll,
		)

		swaps.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "swap", "read"),
			handler.GetById,
		)

		swaps.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "swap", "create"),
			handler.Request,
		)

		swaps.POST("/:id/approve",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "swap", "approve"),
			handler.Approve,
		)

		swaps.POST("/:id/reject",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "swap", "approve"),
			handler.Reject,
		)

		swaps.POST("/:id/cancel",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "swap", "create"),
			handler.Cancel,
		)
	}
}
