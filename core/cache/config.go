package cache

import "time"

// Config holds configuration for the on-disk cache.
type Config struct {
	// Enabled turns the cache on. When false every lookup misses and writes are dropped.
	Enabled bool `mapstructure:"enabled" default:"true" toml:"enabled"`
	// Dir is the root directory holding one folder per namespace and the metadata index.
	Dir string `mapstructure:"cache_dir" default:"./data/cache" toml:"cache_dir"`
	// DefaultTTLSeconds applies to Set calls without an explicit TTL.
	DefaultTTLSeconds int `mapstructure:"default_ttl" default:"86400" toml:"default_ttl"`
	// MaxCacheSize is reported in stats only; no size-based eviction exists.
	MaxCacheSize int64 `mapstructure:"max_cache_size" default:"104857600" toml:"max_cache_size"`
	// CleanupOnStart removes expired entries when the server starts.
	CleanupOnStart bool `mapstructure:"cleanup_on_start" default:"true" toml:"cleanup_on_start"`
	// LockIndex takes an advisory file lock around metadata index writes.
	LockIndex bool `mapstructure:"lock_index" default:"false" toml:"lock_index"`
}

// Normalize replaces out-of-range values with defaults.
func (c *Config) Normalize() {
	if c.Dir == "" {
		c.Dir = "./data/cache"
	}
	if c.DefaultTTLSeconds <= 0 {
		c.DefaultTTLSeconds = 86400
	}
	if c.MaxCacheSize <= 0 {
		c.MaxCacheSize = 100 * 1024 * 1024
	}
}

// DefaultTTL returns the default TTL as a duration.
func (c Config) DefaultTTL() time.Duration {
	return time.Duration(c.DefaultTTLSeconds) * time.Second
}
