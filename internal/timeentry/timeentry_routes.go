package timeentry

import (
	"github.com/5niurb/timetracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	entries := r.Group("/time-entries")
	entries.Use(middleware.AuthMiddleware())
	{
		entries.GET("", handler.GetByPeriod)
		entries.POST("", handler.Create)
		entries.DELETE("/:id", handler.Delete)
	}
}
