package achievements

import (
	"regexp"
	"strings"

	"achievement-tracker/core/errs"
	"achievement-tracker/core/logger"
	"achievement-tracker/core/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var titleID = regexp.MustCompile(`^\d+$`)

// Handler handles HTTP requests for titles and achievements.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the game routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/games")
	group.Get("/", h.HandleListTitles)
	group.Get("/:id/achievements", h.HandleAchievements)
	group.Get("/:id/stats", h.HandleStats)
}

// HandleListTitles lists installed titles.
// @Summary List Games
// @Description Scans the known install locations and summarizes every detected game.
// @Tags games
// @Produce json
// @Success 200 {object} map[string]interface{} "Games"
// @Failure 500 {object} response.Failure "Internal Server Error"
// @Router /api/games [get]
func (h *Handler) HandleListTitles(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	games, err := h.service.ListTitles(c.Context())
	if err != nil {
		l.Error("Listing games failed", zap.Error(err))
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{"games": games, "total_games": len(games)})
}

// HandleAchievements lists the achievements of one title.
// @Summary List Achievements
// @Description Returns the merged achievement catalog of a game with local unlock state.
// @Tags games
// @Produce json
// @Param id path string true "App ID"
// @Param unlocked query boolean false "Include unlocked achievements" default(true)
// @Param locked query boolean false "Include locked achievements" default(true)
// @Param sort query string false "percentage, name or unlocked" default(percentage)
// @Param limit query int false "Maximum number of achievements"
// @Success 200 {object} List "Achievements"
// @Failure 400 {object} response.Failure "Invalid App ID"
// @Failure 404 {object} response.Failure "No Data"
// @Router /api/games/{id}/achievements [get]
func (h *Handler) HandleAchievements(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, err)
	}

	list, err := h.service.Achievements(c.Context(), id, parseQuery(c))
	if err != nil {
		l.Warn("Achievements unavailable", zap.String("app_id", id), zap.Error(err))
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"app_id":       list.AppID,
		"achievements": list.Achievements,
		"stats":        list.Stats,
	})
}

// HandleStats summarizes one title.
// @Summary Game Stats
// @Description Returns completion and rarity statistics for a game.
// @Tags games
// @Produce json
// @Param id path string true "App ID"
// @Success 200 {object} TitleStats "Stats"
// @Failure 400 {object} response.Failure "Invalid App ID"
// @Failure 404 {object} response.Failure "No Data"
// @Router /api/games/{id}/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, err)
	}

	stats, err := h.service.Stats(c.Context(), id)
	if err != nil {
		l.Warn("Stats unavailable", zap.String("app_id", id), zap.Error(err))
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{"app_id": id, "stats": stats})
}

func parseID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if !titleID.MatchString(id) {
		return "", errs.Ef(errs.KindInvalidInput, "parse id", "invalid app id %q", id)
	}
	return id, nil
}

func parseQuery(c *fiber.Ctx) Query {
	q := DefaultQuery()
	q.IncludeUnlocked = strings.ToLower(c.Query("unlocked", "true")) == "true"
	q.IncludeLocked = strings.ToLower(c.Query("locked", "true")) == "true"
	q.SortBy = c.Query("sort", SortPercentage)
	q.Limit = c.QueryInt("limit", 0)
	return q
}
