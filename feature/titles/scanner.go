package titles

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"achievement-tracker/core/logger"

	"go.uber.org/zap"
)

var titleDir = regexp.MustCompile(`^\d+$`)

// Title is one installed game.
type Title struct {
	ID          string `json:"app_id"`
	Name        string `json:"name"`
	InstallPath string `json:"path"`
	Team        string `json:"team"`
	Location    string `json:"location"`
}

// Scanner discovers installed titles.
type Scanner interface {
	Scan(ctx context.Context) ([]Title, error)
}

// DirScanner finds titles as numeric folders under each location's team folders.
type DirScanner struct {
	locations []Location
	logger    *zap.Logger
}

// NewDirScanner creates a DirScanner over cfg's locations.
func NewDirScanner(cfg Config, log *zap.Logger) *DirScanner {
	cfg.Normalize()
	return &DirScanner{locations: cfg.Locations, logger: logger.Component(log, "scanner")}
}

// Scan walks locations and teams in configuration order. When an id appears
// more than once the first occurrence wins. Missing folders are skipped.
func (s *DirScanner) Scan(ctx context.Context) ([]Title, error) {
	seen := make(map[string]struct{})
	var found []Title

	for _, loc := range s.locations {
		if _, err := os.Stat(loc.BasePath); err != nil {
			continue
		}
		for _, team := range loc.Teams {
			if err := ctx.Err(); err != nil {
				return found, err
			}

			teamPath := filepath.Join(loc.BasePath, team)
			entries, err := os.ReadDir(teamPath)
			if err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					s.logger.Warn("Could not read team folder", zap.String("path", teamPath), zap.Error(err))
				}
				continue
			}

			for _, entry := range entries {
				if !entry.IsDir() || !titleDir.MatchString(entry.Name()) {
					continue
				}
				if _, dup := seen[entry.Name()]; dup {
					continue
				}
				seen[entry.Name()] = struct{}{}
				found = append(found, Title{
					ID:          entry.Name(),
					InstallPath: filepath.Join(teamPath, entry.Name()),
					Team:        team,
					Location:    loc.Name,
				})
			}
		}
	}

	s.logger.Debug("Scan complete", zap.Int("titles", len(found)))
	return found, nil
}
