package preference

import (
	"go-teamplanner/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	prefs := r.Group("/preferences")
	prefs.Use(middleware.AuthMiddleware())
	{
		prefs.GET("/me", handler.GetMine)
		prefs.PUT("/me", handler.UpdateMine)
	}
}
