package localprogress

import (
	"os"
	"path/filepath"
)

// Candidates are the progress file locations checked by Probe, in order,
// relative to a title's install directory.
var Candidates = []string{
	"achievements.ini",
	"achievements.json",
	filepath.Join("stats", "achievements.ini"),
	filepath.Join("stats", "achievements.json"),
	filepath.Join("steam_settings", "achievements.json"),
	filepath.Join("SteamEmu", "UserStats", "achiev.ini"),
}

// Probe returns the first candidate under dir that is a non-empty file which
// parses and holds at least one record or an aggregate count.
func Probe(dir string) (string, bool) {
	for _, candidate := range Candidates {
		path := filepath.Join(dir, candidate)
		if Valid(path) {
			return path, true
		}
	}
	return "", false
}

// Valid reports whether path is a usable progress file.
func Valid(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() == 0 {
		return false
	}
	doc, err := load(path)
	return err == nil && doc.relevant()
}
