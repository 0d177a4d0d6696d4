package storage

// Config holds configuration for the storage provider.
type Config struct {
	// Enabled sends catalog exports to the bucket instead of the output directory.
	Enabled bool `mapstructure:"enabled" default:"false" toml:"enabled"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000" toml:"endpoint"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin" toml:"access_key"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin" toml:"secret_key"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false" toml:"use_ssl"`
	// Bucket is the name of the bucket exports are written to.
	Bucket string `mapstructure:"bucket" default:"achievements" toml:"bucket"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:"" toml:"region"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30" toml:"timeout_seconds"`
}
