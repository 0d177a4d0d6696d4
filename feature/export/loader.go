package export

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements loader.Feature for catalog exports.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new export feature.
func NewFeature(catalogs CatalogProvider, sink Sink, logger *zap.Logger) *Feature {
	svc := NewService(catalogs, sink, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "export"
}

// IsEnabled reports whether a sink is configured.
func (f *Feature) IsEnabled() bool {
	return f.service.sink != nil
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
