package auth

import (
	"github.com/5niurb/timetracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	{
		// A PIN is short; keep guessing expensive.
		authGroup.POST("/login", middleware.RateLimitByIP(1, 5), handler.Login)
		authGroup.POST("/refresh", handler.Refresh)
		authGroup.GET("/me", middleware.AuthMiddleware(), handler.Me)
	}
}
