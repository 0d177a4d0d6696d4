package system

import (
	"achievement-tracker/core/cache"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements loader.Feature for the cache maintenance routes.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new system feature.
func NewFeature(c *cache.Cache, logger *zap.Logger) *Feature {
	svc := NewService(c, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "system"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the feature's service for command line use.
func (f *Feature) Service() *Service {
	return f.service
}
