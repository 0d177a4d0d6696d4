// Package config provides configuration management for the Achievement Tracker.
//
// It utilizes Viper for loading configuration from environment variables,
// a .env file and an optional config file (config.yaml, config.toml or config.json).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - SteamAPI: remote API key, language, timeout, retries and endpoints
//   - Achievements: beautify, show-hidden, sort-by-percentage and matcher options
//   - Debug: verbose mode and API call logging
//   - Cache: cache directory, default TTL, cleanup-on-start
//   - Paths: export output directory
//   - Scanner: known install locations and team folders
//   - Log: Logging level and format
//   - Database: optional title database
//   - Storage: optional S3/MinIO export bucket
//
// Defaults are declared with `default` struct tags next to each field and are
// validated once at load time. A broken config file never stops the process:
// LoadConfig returns the defaults together with the error.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Printf("using default settings: %v", err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
