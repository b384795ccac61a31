package notification

import (
	"go-teamplanner/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", handler.GetAll)
		notifications.GET("/unread-count", handler.UnreadCount)
		notifications.GET("/emails", handler.EmailHistory)
		notifications.POST("/:id/read", handler.MarkRead)
		notifications.POST("/:id/unread", handler.MarkUnread)
		notifications.POST("/read-all", handler.MarkAllRead)
		notifications.DELETE("", handler.Clear)
	}
}
