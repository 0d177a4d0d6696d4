package steam

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"achievement-tracker/core/cache"
	"achievement-tracker/core/errs"
	"achievement-tracker/core/fetch"
	"achievement-tracker/core/logger"

	"go.uber.org/zap"
)

// NameResolver resolves title names from the store app-details endpoint.
type NameResolver struct {
	fetcher *fetch.Fetcher
	cache   *cache.Cache
	cfg     Config
	logger  *zap.Logger
}

// NewNameResolver creates a NameResolver. c may be nil.
func NewNameResolver(f *fetch.Fetcher, c *cache.Cache, cfg Config, log *zap.Logger) *NameResolver {
	cfg.Normalize()
	return &NameResolver{fetcher: f, cache: c, cfg: cfg, logger: logger.Component(log, "steam-names")}
}

type appDetails struct {
	Success bool `json:"success"`
	Data    struct {
		Name string `json:"name"`
	} `json:"data"`
}

// Name returns the store name of titleID. Resolved names are kept in the games
// namespace.
func (r *NameResolver) Name(ctx context.Context, titleID string) (string, error) {
	if r.cache != nil {
		var name string
		if r.cache.Load(cache.NamespaceGames, titleID, &name) && name != "" {
			return name, nil
		}
	}

	params := url.Values{}
	params.Set("appids", titleID)
	params.Set("l", languageName(r.cfg.Language))

	var resp map[string]json.RawMessage
	if err := r.fetcher.Fetch(ctx, r.cfg.StoreBaseURL+"/api/appdetails", params, &resp); err != nil {
		return "", err
	}

	raw, ok := resp[titleID]
	if !ok {
		return "", errs.Ef(errs.KindNotFound, "app details", "no entry for title %s", titleID)
	}
	var details appDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return "", errs.E(errs.KindRemoteDecode, "app details", err)
	}
	if !details.Success || details.Data.Name == "" {
		return "", errs.Ef(errs.KindNotFound, "app details", "title %s is unknown to the store", titleID)
	}

	if r.cache != nil {
		r.cache.Set(cache.NamespaceGames, titleID, details.Data.Name, time.Duration(r.cfg.NameTTLHours)*time.Hour)
	}
	return details.Data.Name, nil
}
