package steam

import (
	"context"
	"net/url"

	"achievement-tracker/core/errs"
	"achievement-tracker/core/fetch"
	"achievement-tracker/core/logger"
	"achievement-tracker/core/reconcile"
	"achievement-tracker/core/utils"

	"go.uber.org/zap"
)

const (
	schemaPath      = "/ISteamUserStats/GetSchemaForGame/v2/"
	percentagesPath = "/ISteamUserStats/GetGlobalAchievementPercentagesForApp/v2/"
)

// Client reads achievement metadata and global percentages from the web API.
// It implements reconcile.MetadataSource and reconcile.PercentageSource.
type Client struct {
	fetcher *fetch.Fetcher
	cfg     Config
	logger  *zap.Logger
}

// NewClient creates a Client.
func NewClient(f *fetch.Fetcher, cfg Config, log *zap.Logger) *Client {
	cfg.Normalize()
	return &Client{fetcher: f, cfg: cfg, logger: logger.Component(log, "steam")}
}

type schemaResponse struct {
	Game struct {
		GameName           string `json:"gameName"`
		AvailableGameStats struct {
			Achievements []struct {
				Name        string `json:"name"`
				DisplayName string `json:"displayName"`
				Description string `json:"description"`
				Hidden      any    `json:"hidden"`
				Icon        string `json:"icon"`
				IconGray    string `json:"icongray"`
			} `json:"achievements"`
		} `json:"availableGameStats"`
	} `json:"game"`
}

// Schema returns the achievement definitions of titleID in API order.
func (c *Client) Schema(ctx context.Context, titleID, apiKey string) ([]reconcile.SchemaEntry, error) {
	if apiKey == "" {
		apiKey = c.cfg.APIKey
	}
	if apiKey == "" {
		return nil, errs.Ef(errs.KindInvalidInput, "schema", "no api key for title %s", titleID)
	}

	params := url.Values{}
	params.Set("key", apiKey)
	params.Set("appid", titleID)
	params.Set("l", c.cfg.Language)

	var resp schemaResponse
	if err := c.fetcher.Fetch(ctx, c.cfg.APIBaseURL+schemaPath, params, &resp); err != nil {
		return nil, err
	}

	raw := resp.Game.AvailableGameStats.Achievements
	entries := make([]reconcile.SchemaEntry, 0, len(raw))
	for _, a := range raw {
		if a.Name == "" {
			continue
		}
		entries = append(entries, reconcile.SchemaEntry{
			ID:          a.Name,
			DisplayName: a.DisplayName,
			Description: a.Description,
			Hidden:      utils.ToBool(a.Hidden),
			Icon:        a.Icon,
			IconGray:    a.IconGray,
		})
	}

	c.logger.Debug("Schema fetched", zap.String("title_id", titleID), zap.Int("achievements", len(entries)))
	return entries, nil
}

type percentagesResponse struct {
	AchievementPercentages struct {
		Achievements []struct {
			Name    string `json:"name"`
			Percent any    `json:"percent"`
		} `json:"achievements"`
	} `json:"achievementpercentages"`
}

// Percentages returns the global unlock rate of every achievement of titleID.
func (c *Client) Percentages(ctx context.Context, titleID string) ([]reconcile.PercentageEntry, error) {
	params := url.Values{}
	params.Set("gameid", titleID)

	var resp percentagesResponse
	if err := c.fetcher.Fetch(ctx, c.cfg.APIBaseURL+percentagesPath, params, &resp); err != nil {
		return nil, err
	}

	raw := resp.AchievementPercentages.Achievements
	entries := make([]reconcile.PercentageEntry, 0, len(raw))
	for _, a := range raw {
		if a.Name == "" {
			continue
		}
		pct, _ := utils.ToFloat(a.Percent)
		entries = append(entries, reconcile.PercentageEntry{ID: a.Name, Percentage: pct})
	}

	c.logger.Debug("Percentages fetched", zap.String("title_id", titleID), zap.Int("achievements", len(entries)))
	return entries, nil
}
