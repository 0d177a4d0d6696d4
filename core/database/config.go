package database

// Config holds configuration for the database connection.
type Config struct {
	// Enabled turns on persistence of scanned titles.
	Enabled bool `mapstructure:"enabled" default:"false" toml:"enabled"`
	// Driver is the database driver (mysql, sqlite).
	Driver string `mapstructure:"driver" default:"sqlite" toml:"driver"`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost" toml:"host"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306" toml:"port"`
	// User is the database user.
	User string `mapstructure:"user" default:"root" toml:"user"`
	// Password is the database password.
	Password string `mapstructure:"password" default:"" toml:"password"`
	// Name is the database name, or the file path for sqlite.
	Name string `mapstructure:"name" default:"./data/titles.db" toml:"name"`
	// TimeoutSeconds bounds connection setup and the initial ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30" toml:"timeout_seconds"`
}
