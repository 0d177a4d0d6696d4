package titles

import (
	"context"
	"fmt"
	"sync"

	"achievement-tracker/core/logger"

	"go.uber.org/zap"
)

// NameSource resolves the display name of a title.
type NameSource interface {
	Name(ctx context.Context, titleID string) (string, error)
}

// ProgressRegistrar locates the local progress file of a title.
type ProgressRegistrar interface {
	Register(titleID, installDir string) (string, bool)
}

// Library keeps the latest scan result and its persisted copy.
type Library struct {
	scanner  Scanner
	names    NameSource
	progress ProgressRegistrar
	repo     *Repository
	logger   *zap.Logger

	mu     sync.RWMutex
	titles []Title
	byID   map[string]int
}

// NewLibrary creates a Library. names, progress and repo may be nil.
func NewLibrary(scanner Scanner, names NameSource, progress ProgressRegistrar, repo *Repository, log *zap.Logger) *Library {
	return &Library{
		scanner:  scanner,
		names:    names,
		progress: progress,
		repo:     repo,
		logger:   logger.Component(log, "titles"),
		byID:     make(map[string]int),
	}
}

// Refresh rescans the install locations, resolves names, registers local
// progress files and persists the result.
func (l *Library) Refresh(ctx context.Context) ([]Title, error) {
	found, err := l.scanner.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan titles: %w", err)
	}

	stored, err := l.repo.Names(ctx)
	if err != nil {
		l.logger.Warn("Could not read stored title names", zap.Error(err))
	}

	progress := make(map[string]string)
	for i := range found {
		t := &found[i]
		t.Name = l.resolveName(ctx, t.ID, stored)
		if l.progress != nil {
			if path, ok := l.progress.Register(t.ID, t.InstallPath); ok {
				progress[t.ID] = path
			}
		}
	}

	if err := l.repo.SaveAll(ctx, found, progress); err != nil {
		l.logger.Warn("Could not persist titles", zap.Error(err))
	}

	l.mu.Lock()
	l.titles = found
	l.byID = make(map[string]int, len(found))
	for i, t := range found {
		l.byID[t.ID] = i
	}
	l.mu.Unlock()

	l.logger.Info("Titles refreshed", zap.Int("titles", len(found)), zap.Int("with_progress", len(progress)))
	return found, nil
}

func (l *Library) resolveName(ctx context.Context, id string, stored map[string]string) string {
	if l.names != nil {
		name, err := l.names.Name(ctx, id)
		if err == nil && name != "" {
			return name
		}
		if err != nil {
			l.logger.Debug("Name lookup failed", zap.String("app_id", id), zap.Error(err))
		}
	}
	if name, ok := stored[id]; ok {
		return name
	}
	return FallbackName(id)
}

// Titles returns the titles from the last refresh.
func (l *Library) Titles() []Title {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Title, len(l.titles))
	copy(out, l.titles)
	return out
}

// Get returns one title from the last refresh.
func (l *Library) Get(id string) (Title, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.byID[id]
	if !ok {
		return Title{}, false
	}
	return l.titles[i], true
}

// FallbackName is the name shown when no source knows the title.
func FallbackName(id string) string {
	return "Game " + id
}
