package system

import (
	"achievement-tracker/core/logger"
	"achievement-tracker/core/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for cache maintenance.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the system routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/system")
	group.Get("/cache", h.HandleCacheStats)
	group.Delete("/cache", h.HandleClearCache)
	group.Post("/cache/cleanup", h.HandleCleanup)
}

// HandleCacheStats returns cache statistics.
// @Summary Cache Stats
// @Description Returns entry counts and sizes per cache namespace.
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{} "Cache Stats"
// @Router /api/system/cache [get]
func (h *Handler) HandleCacheStats(c *fiber.Ctx) error {
	return response.OK(c, fiber.Map{"cache": h.service.CacheStats()})
}

// HandleClearCache clears the cache.
// @Summary Clear Cache
// @Description Removes every entry of one namespace, or of all namespaces when none is given.
// @Tags system
// @Produce json
// @Param namespace query string false "games, achievements, local_achievements, steam_store or api_requests"
// @Success 200 {object} map[string]interface{} "Removed Count"
// @Failure 400 {object} response.Failure "Unknown Namespace"
// @Router /api/system/cache [delete]
func (h *Handler) HandleClearCache(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	removed, err := h.service.ClearCache(c.Query("namespace"))
	if err != nil {
		l.Warn("Cache clear rejected", zap.Error(err))
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{"removed": removed, "message": "Cache cleared successfully"})
}

// HandleCleanup removes expired entries.
// @Summary Cleanup Cache
// @Description Removes every cache entry older than its TTL.
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{} "Removed Count"
// @Router /api/system/cache/cleanup [post]
func (h *Handler) HandleCleanup(c *fiber.Ctx) error {
	return response.OK(c, fiber.Map{"removed": h.service.Cleanup()})
}
