package reconcile

const (
	MatcherSubstring = "substring"
	MatcherFuzzy     = "fuzzy"
)

// Config holds the reconciliation options.
type Config struct {
	// FallbackBeautify derives display names from raw ids when no name is known.
	FallbackBeautify bool `mapstructure:"fallback_beautify" default:"true" toml:"fallback_beautify"`
	// ShowHidden keeps hidden achievements in listings.
	ShowHidden bool `mapstructure:"show_hidden" default:"true" toml:"show_hidden"`
	// SortByPercentage orders merged catalogs by descending percentage.
	SortByPercentage bool `mapstructure:"sort_by_percentage" default:"true" toml:"sort_by_percentage"`
	// Matcher selects the id to display-name matcher (substring, fuzzy).
	Matcher string `mapstructure:"matcher" default:"substring" toml:"matcher"`
	// PremiumTTLHours is the lifetime of catalogs built with an API key.
	PremiumTTLHours int `mapstructure:"premium_ttl_hours" default:"24" toml:"premium_ttl_hours"`
	// FreeTTLHours is the lifetime of catalogs built without an API key.
	FreeTTLHours int `mapstructure:"free_ttl_hours" default:"6" toml:"free_ttl_hours"`
}

// Normalize replaces out-of-range values with defaults.
func (c *Config) Normalize() {
	if c.Matcher != MatcherFuzzy {
		c.Matcher = MatcherSubstring
	}
	if c.PremiumTTLHours <= 0 {
		c.PremiumTTLHours = 24
	}
	if c.FreeTTLHours <= 0 {
		c.FreeTTLHours = 6
	}
}

// NewMatcher returns the matcher selected by the configuration.
func (c Config) NewMatcher() Matcher {
	if c.Matcher == MatcherFuzzy {
		return FuzzyMatcher{}
	}
	return SubstringMatcher{}
}
