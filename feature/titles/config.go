package titles

import (
	"os"
	"path/filepath"
	"strings"
)

// Location is a base directory holding one folder per team, each of which
// holds one folder per title id.
type Location struct {
	Name     string   `mapstructure:"name" toml:"name"`
	BasePath string   `mapstructure:"base_path" toml:"base_path"`
	Teams    []string `mapstructure:"teams" toml:"teams"`
}

// Config holds the known install locations, scanned in order.
type Config struct {
	Locations []Location `mapstructure:"locations" toml:"locations"`
}

// Normalize fills in the default locations when none are configured and
// expands a leading "~" in base paths.
func (c *Config) Normalize() {
	if len(c.Locations) == 0 {
		c.Locations = DefaultLocations()
	}
	for i := range c.Locations {
		c.Locations[i].BasePath = expandHome(c.Locations[i].BasePath)
	}
}

// DefaultLocations returns the folders used by common emulator releases.
func DefaultLocations() []Location {
	return []Location{
		{Name: "public_docs", BasePath: "C:/Users/Public/Documents/Steam", Teams: []string{"CODEX", "RUNE"}},
		{Name: "appdata_roaming", BasePath: "~/AppData/Roaming", Teams: []string{"EMPRESS", "SmartSteamEmu", "Goldberg SteamEmu Saves", "CreamAPI"}},
		{Name: "appdata_local", BasePath: "~/AppData/Local", Teams: []string{"SKIDROW"}},
		{Name: "steam_appdata", BasePath: "~/AppData/Roaming/Steam", Teams: []string{"CODEX"}},
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
