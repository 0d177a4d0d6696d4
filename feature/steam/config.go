package steam

import (
	"strings"
	"time"

	"achievement-tracker/core/fetch"
)

const (
	DefaultAPIBaseURL       = "https://api.steampowered.com"
	DefaultStoreBaseURL     = "https://store.steampowered.com"
	DefaultCommunityBaseURL = "https://steamcommunity.com"
)

// Config holds the remote API endpoints, key and request policy.
type Config struct {
	// APIKey enables the premium strategy. Empty selects the free strategy.
	APIKey string `mapstructure:"api_key" default:"" toml:"api_key"`
	// Language is the locale requested for names and descriptions.
	Language string `mapstructure:"default_language" default:"fr" toml:"default_language"`
	// TimeoutSeconds bounds each request attempt.
	TimeoutSeconds int `mapstructure:"timeout" default:"10" toml:"timeout"`
	// MaxRetries is the total number of attempts on transport failure.
	MaxRetries int `mapstructure:"max_retries" default:"3" toml:"max_retries"`
	// RequestTTLSeconds is the lifetime of cached raw responses and scraped pages.
	RequestTTLSeconds int `mapstructure:"request_ttl" default:"3600" toml:"request_ttl"`
	// NameTTLHours is the lifetime of resolved title names.
	NameTTLHours int `mapstructure:"name_ttl_hours" default:"720" toml:"name_ttl_hours"`

	APIBaseURL       string `mapstructure:"api_base_url" default:"https://api.steampowered.com" toml:"api_base_url"`
	StoreBaseURL     string `mapstructure:"store_base_url" default:"https://store.steampowered.com" toml:"store_base_url"`
	CommunityBaseURL string `mapstructure:"community_base_url" default:"https://steamcommunity.com" toml:"community_base_url"`
}

// Normalize replaces out-of-range values with defaults.
func (c *Config) Normalize() {
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.Language == "" {
		c.Language = "fr"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RequestTTLSeconds <= 0 {
		c.RequestTTLSeconds = 3600
	}
	if c.NameTTLHours <= 0 {
		c.NameTTLHours = 720
	}
	c.APIBaseURL = baseURL(c.APIBaseURL, DefaultAPIBaseURL)
	c.StoreBaseURL = baseURL(c.StoreBaseURL, DefaultStoreBaseURL)
	c.CommunityBaseURL = baseURL(c.CommunityBaseURL, DefaultCommunityBaseURL)
}

// RequestTTL returns the raw response lifetime.
func (c Config) RequestTTL() time.Duration {
	return time.Duration(c.RequestTTLSeconds) * time.Second
}

// FetchConfig returns the fetcher policy derived from these settings.
func (c Config) FetchConfig(showCalls bool) fetch.Config {
	return fetch.Config{
		Timeout:    time.Duration(c.TimeoutSeconds) * time.Second,
		MaxRetries: c.MaxRetries,
		RequestTTL: c.RequestTTL(),
		ShowCalls:  showCalls,
	}
}

func baseURL(v, def string) string {
	v = strings.TrimRight(strings.TrimSpace(v), "/")
	if v == "" {
		return def
	}
	return v
}
