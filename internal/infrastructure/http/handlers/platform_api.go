package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smartrecipe/server/internal/infrastructure/config"
)

// PlatformAPIHandlers serves the service index and the liveness probe.
type PlatformAPIHandlers struct {
	cfg         *config.Config
	db          *gorm.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// NewPlatformAPIHandlers creates the platform handler set.
func NewPlatformAPIHandlers(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *PlatformAPIHandlers {
	return &PlatformAPIHandlers{
		cfg:         cfg,
		db:          db,
		redisClient: redisClient,
		logger:      logger,
	}
}

// Index handles GET /api/ with the module roots.
func (h *PlatformAPIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	writeData(w, h.logger, map[string]interface{}{
		"name":    h.cfg.App.Name,
		"version": h.cfg.App.Version,
		"modules": map[string]string{
			"user":          "/api/user/",
			"ingredient":    "/api/ingredient/",
			"recipe":        "/api/recipe/",
			"shopping_list": "/api/shopping-list/",
			"community":     "/api/community/",
			"nutrition":     "/api/nutrition/",
			"upload":        "/api/upload/",
		},
	})
}

// Health handles GET /health, pinging the database and redis.
func (h *PlatformAPIHandlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{
		"database": "ok",
		"redis":    "ok",
	}
	healthy := true

	if sqlDB, err := h.db.DB(); err != nil {
		checks["database"] = err.Error()
		healthy = false
	} else if err := sqlDB.PingContext(ctx); err != nil {
		checks["database"] = err.Error()
		healthy = false
	}

	if h.redisClient == nil {
		checks["redis"] = "disabled"
	} else if err := h.redisClient.Ping(ctx).Err(); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	}

	status := http.StatusOK
	message := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		message = "unhealthy"
	}
	writeJSON(w, h.logger, status, message, checks)
}
