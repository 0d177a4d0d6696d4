package fetch

import "time"

// Config holds the request policy of a Fetcher.
type Config struct {
	// Timeout bounds each attempt.
	Timeout time.Duration
	// MaxRetries is the total number of attempts, at least one.
	MaxRetries int
	// RequestTTL is how long raw JSON bodies stay in the api_requests namespace.
	RequestTTL time.Duration
	// InitialBackoff is the delay before the first retry.
	InitialBackoff time.Duration
	// ShowCalls logs every attempt at info level.
	ShowCalls bool
}

func (c *Config) normalize() {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.MaxRetries < 1 {
		c.MaxRetries = 1
	}
	if c.RequestTTL <= 0 {
		c.RequestTTL = time.Hour
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = 500 * time.Millisecond
	}
}
