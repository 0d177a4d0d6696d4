package export

import (
	"regexp"

	"achievement-tracker/core/errs"
	"achievement-tracker/core/logger"
	"achievement-tracker/core/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var titleID = regexp.MustCompile(`^\d+$`)

// Handler handles HTTP requests for catalog exports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the export routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/api/games/:id/export", h.HandleExport)
	app.Get("/api/exports", h.HandleList)
}

// HandleExport exports one merged catalog.
// @Summary Export Catalog
// @Description Writes the merged catalog of a game to the output directory or the storage bucket.
// @Tags export
// @Produce json
// @Param id path string true "App ID"
// @Success 200 {object} Result "Export Result"
// @Failure 400 {object} response.Failure "Invalid App ID"
// @Failure 404 {object} response.Failure "No Data"
// @Failure 500 {object} response.Failure "Internal Server Error"
// @Router /api/games/{id}/export [post]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id := c.Params("id")
	if !titleID.MatchString(id) {
		return response.Error(c, errs.Ef(errs.KindInvalidInput, "parse id", "invalid app id %q", id))
	}

	result, err := h.service.Export(c.Context(), id)
	if err != nil {
		l.Error("Export failed", zap.String("app_id", id), zap.Error(err))
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{"export": result})
}

// HandleList lists previous exports.
// @Summary List Exports
// @Description Returns the names of exported catalogs.
// @Tags export
// @Produce json
// @Success 200 {object} map[string]interface{} "Exports"
// @Failure 500 {object} response.Failure "Internal Server Error"
// @Router /api/exports [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	names, err := h.service.List(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Listing exports failed", zap.Error(err))
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{"exports": names})
}
