package config

import (
	"github.com/pelletier/go-toml/v2"
)

// redacted replaces secrets in rendered output.
const redacted = "********"

// RenderTOML returns the effective configuration as TOML with secrets masked.
func (c *Config) RenderTOML() ([]byte, error) {
	masked := *c
	if masked.SteamAPI.APIKey != "" {
		masked.SteamAPI.APIKey = redacted
	}
	if masked.Server.ApiKey != "" {
		masked.Server.ApiKey = redacted
	}
	if masked.Database.Password != "" {
		masked.Database.Password = redacted
	}
	if masked.Storage.SecretKey != "" {
		masked.Storage.SecretKey = redacted
	}
	return toml.Marshal(masked)
}
