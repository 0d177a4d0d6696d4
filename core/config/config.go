package config

import (
	"errors"
	"reflect"
	"strings"

	"achievement-tracker/core/cache"
	"achievement-tracker/core/database"
	"achievement-tracker/core/errs"
	"achievement-tracker/core/logger"
	"achievement-tracker/core/reconcile"
	"achievement-tracker/core/server"
	"achievement-tracker/core/storage"
	"achievement-tracker/feature/export"
	"achievement-tracker/feature/steam"
	"achievement-tracker/feature/titles"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server" toml:"server"`
	// SteamAPI holds the remote API endpoints, key and request policy.
	SteamAPI steam.Config `mapstructure:"steam_api" toml:"steam_api"`
	// Achievements holds the reconciliation options.
	Achievements reconcile.Config `mapstructure:"achievements" toml:"achievements"`
	// Debug holds diagnostic switches.
	Debug DebugConfig `mapstructure:"debug" toml:"debug"`
	// Cache holds configuration for the on-disk cache.
	Cache cache.Config `mapstructure:"cache" toml:"cache"`
	// Paths holds output locations.
	Paths export.Config `mapstructure:"paths" toml:"paths"`
	// Scanner holds the known install locations.
	Scanner titles.Config `mapstructure:"scanner" toml:"scanner"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log" toml:"log"`
	// Database holds configuration for the optional title database.
	Database database.Config `mapstructure:"database" toml:"database"`
	// Storage holds configuration for the optional export bucket.
	Storage storage.Config `mapstructure:"storage" toml:"storage"`
}

// DebugConfig holds diagnostic switches.
type DebugConfig struct {
	// VerboseMode logs strategy selection and merge sizes.
	VerboseMode bool `mapstructure:"verbose_mode" default:"false" toml:"verbose_mode"`
	// ShowAPICalls logs every remote request attempt.
	ShowAPICalls bool `mapstructure:"show_api_calls" default:"false" toml:"show_api_calls"`
}

// LoadConfig loads configuration from environment variables, a .env file and
// an optional config.{yaml,toml,json} file in path.
//
// A config file that exists but cannot be read or decoded is not fatal: the
// defaults are returned together with a KindConfigLoad error so callers can
// warn and continue.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := newViper()
	v.SetConfigName("config")
	v.AddConfigPath(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Defaults(), errs.E(errs.KindConfigLoad, "read config file", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Defaults(), errs.E(errs.KindConfigLoad, "decode config", err)
	}

	config.Validate()
	return &config, nil
}

// Defaults returns the configuration built from struct tag defaults only.
func Defaults() *Config {
	v := viper.New()
	bindValues(v, Config{}, "")

	var config Config
	_ = v.Unmarshal(&config)
	config.Validate()
	return &config
}

// Validate normalizes out-of-range values to their documented defaults.
func (c *Config) Validate() {
	c.SteamAPI.Normalize()
	c.Achievements.Normalize()
	c.Cache.Normalize()
	c.Scanner.Normalize()
	if c.Server.Port == "" {
		c.Server.Port = "5000"
	}
	if c.Paths.OutputDir == "" {
		c.Paths.OutputDir = "./output"
	}
}

func newViper() *viper.Viper {
	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue, hasDefault := field.Tag.Lookup("default")
		// Collections only come from a config file; their defaults live in Normalize.
		if !hasDefault && (field.Type.Kind() == reflect.Slice || field.Type.Kind() == reflect.Map) {
			continue
		}
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
