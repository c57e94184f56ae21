package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edugenai/paper-analyzer/database"
	"github.com/edugenai/paper-analyzer/utils/cache"
)

// HealthHandler reports service health
type HealthHandler struct {
	store database.Storage
	cache *cache.RedisCache
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store database.Storage, redisCache *cache.RedisCache) *HealthHandler {
	return &HealthHandler{
		store: store,
		cache: redisCache,
	}
}

// Check handles GET /ping. Database failure makes the service unhealthy;
// cache failure is reported but degraded, since reports recompute without it.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "ok"
	dbStatus := "ok"
	cacheStatus := "ok"

	if err := h.store.HealthCheck(); err != nil {
		status = "unhealthy"
		dbStatus = err.Error()
	}

	if h.cache == nil {
		cacheStatus = "disabled"
	} else if err := h.cache.Ping(c.Context()); err != nil {
		cacheStatus = "unavailable"
		if status == "ok" {
			status = "degraded"
		}
	}

	code := fiber.StatusOK
	if status == "unhealthy" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}
