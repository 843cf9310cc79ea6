package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/voltshop/inventory-api/internal/cache"
	"github.com/voltshop/inventory-api/internal/utils"
)

// HealthHandler reports liveness of the service and its dependencies.
type HealthHandler struct {
	db    *sqlx.DB
	redis *cache.RedisClient
}

func NewHealthHandler(db *sqlx.DB, redis *cache.RedisClient) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// GetHealth pings the database and Redis with a short timeout.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if err := h.db.PingContext(ctx); err != nil {
		dbStatus = "unavailable"
	}

	redisStatus := "ok"
	if err := h.redis.Ping(ctx); err != nil {
		redisStatus = "unavailable"
	}

	code := 200
	if dbStatus != "ok" || redisStatus != "ok" {
		code = 503
	}

	utils.Success(c, code, "Health check", gin.H{
		"database": dbStatus,
		"redis":    redisStatus,
	})
}
