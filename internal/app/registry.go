package app

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/5niurb/timetracker/internal/auth"
	"github.com/5niurb/timetracker/internal/employee"
	"github.com/5niurb/timetracker/internal/invoice"
	"github.com/5niurb/timetracker/internal/messaging/kafka"
	"github.com/5niurb/timetracker/internal/middleware"
	"github.com/5niurb/timetracker/internal/payperiod"
	"github.com/5niurb/timetracker/internal/shared/apperror"
	"github.com/5niurb/timetracker/internal/shared/response"
	"github.com/5niurb/timetracker/internal/timeentry"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	today func() time.Time,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	entryRepo := timeentry.NewRepository(gormDB, db)
	invoiceRepo := invoice.NewRepository(gormDB, db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(employeeRepo)
	employeeService := employee.NewService(employeeRepo)
	entryService := timeentry.NewService(db, entryRepo, today)
	invoiceService := invoice.NewService(db, invoiceRepo, entryRepo, employeeRepo, outboxRepo, today)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	entryHandler := timeentry.NewHandler(entryService)
	invoiceHandler := invoice.NewHandlerWithRedis(invoiceService, rdb)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler)
		timeentry.RegisterRoutes(api, entryHandler)
		invoice.RegisterRoutes(api, invoiceHandler, rdb)
		api.GET("/periods", middleware.AuthMiddleware(), periodsHandler(today))
	}

	return nil
}

// periodsHandler resolves a pay period relative to today. Offset 0 is
// the current period, negative offsets walk backwards.
func periodsHandler(today func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset := 0
		if raw := c.Query("offset"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				httpErr := apperror.ToHTTP(apperror.InvalidField("offset"))
				response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
				return
			}
			offset = parsed
		}

		period := payperiod.ByOffset(offset, today())
		response.Success(c, http.StatusOK, gin.H{
			"period_start": payperiod.Format(period.Start),
			"period_end":   payperiod.Format(period.End),
			"label":        period.Label(),
			"offset":       offset,
		}, nil)
	}
}
