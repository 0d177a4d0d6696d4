package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"5000" toml:"port"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:"" toml:"api_key"`
	// Host is the interface to bind.
	Host string `mapstructure:"host" default:"localhost" toml:"host"`
}

// Address returns the listen address for the server.
func (c Config) Address() string {
	return c.Host + ":" + c.Port
}

// AuthEnabled reports whether requests must carry the API key.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != ""
}
