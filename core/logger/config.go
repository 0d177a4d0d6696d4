package logger

const (
	FormatJSON    = "json"
	FormatConsole = "console"
	FormatAuto    = "auto"
)

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info" toml:"level"`
	// Format is the encoding: json, console, or auto (console on a TTY).
	Format string `mapstructure:"format" default:"auto" toml:"format"`
}
