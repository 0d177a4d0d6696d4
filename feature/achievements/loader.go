package achievements

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements loader.Feature for the game routes.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new achievements feature.
func NewFeature(catalogs CatalogProvider, progress ProgressReader, library TitleLister, showHidden bool, logger *zap.Logger) *Feature {
	svc := NewService(catalogs, progress, library, showHidden, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "achievements"
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
