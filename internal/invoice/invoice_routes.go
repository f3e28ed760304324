package invoice

import (
	"github.com/5niurb/timetracker/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	invoices := r.Group("/invoices")
	invoices.Use(middleware.AuthMiddleware())
	{
		invoices.GET("", handler.GetAll)
		invoices.GET("/can-submit", handler.CanSubmit)
		invoices.GET("/:id", handler.GetById)
		submitLimit := middleware.RateLimitByEmployee(1, 3)
		if redisClient != nil {
			invoices.POST("", submitLimit, middleware.Idempotency(redisClient), handler.Submit)
		} else {
			invoices.POST("", submitLimit, handler.Submit)
		}
	}

	earnings := r.Group("/earnings")
	earnings.Use(middleware.AuthMiddleware())
	{
		earnings.GET("/preview", handler.Preview)
		earnings.GET("/summary", handler.Summary)
	}
}
