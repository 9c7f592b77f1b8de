package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Omc12/StockSimple/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports API liveness, the state of both backing stores, and the
// alert dead-letter backlog so a stuck mail pipeline is visible from outside.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	pingDB := func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
	pingRedis := func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
	dlqBacklog := func(ctx context.Context) (int64, error) {
		return worker.DLQLength(ctx, rdb, worker.QueueAlerts)
	}
	return healthProbe(pingDB, pingRedis, dlqBacklog)
}

// healthProbe is split out so the response shape is testable without live
// stores.
func healthProbe(pingDB, pingRedis func(context.Context) error, dlqBacklog func(context.Context) (int64, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		body := gin.H{"app": "stocksimple", "status": "ok"}
		status := http.StatusOK

		body["db"] = "up"
		if pingDB(ctx) != nil {
			body["db"] = "down"
			status = http.StatusServiceUnavailable
		}

		body["redis"] = "up"
		if pingRedis(ctx) != nil {
			body["redis"] = "down"
			status = http.StatusServiceUnavailable
		} else if n, err := dlqBacklog(ctx); err == nil {
			body["alertDLQ"] = n
		}

		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		c.JSON(status, body)
	}
}
