package app

import (
	"os"
	"time"

	"github.com/5niurb/timetracker/internal/payperiod"
	"github.com/5niurb/timetracker/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and registers every module's
// routes on the router. Pay-period math follows the employer's wall
// clock, so "today" is resolved against EMPLOYER_TZ once, here.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	loc, err := employerLocation()
	if err != nil {
		return err
	}
	today := func() time.Time { return payperiod.Today(loc) }

	return registerModules(router, sqlDB, gormDB, redisClient, today)
}

func employerLocation() (*time.Location, error) {
	tz := os.Getenv("EMPLOYER_TZ")
	if tz == "" {
		tz = "America/Los_Angeles"
	}
	return time.LoadLocation(tz)
}
