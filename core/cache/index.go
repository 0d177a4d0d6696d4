package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"achievement-tracker/core/errs"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"
	"go.uber.org/zap"
)

const (
	indexFile = "cache_metadata.json"
	lockFile  = "cache_metadata.lock"
)

// Metadata describes one cached entry as persisted in the index file.
// Times are unix seconds with fractional part.
type Metadata struct {
	CreatedTime  float64 `json:"created_time"`
	TTL          int64   `json:"ttl"`
	Size         int64   `json:"size"`
	LastAccessed float64 `json:"last_accessed"`
}

func (m *Metadata) expired(now time.Time) bool {
	return unixSeconds(now)-m.CreatedTime > float64(m.TTL)
}

type index map[Namespace]map[string]*Metadata

func newIndex() index {
	idx := make(index, len(Namespaces))
	for _, ns := range Namespaces {
		idx[ns] = make(map[string]*Metadata)
	}
	return idx
}

func (idx index) ensure(ns Namespace) map[string]*Metadata {
	entries, ok := idx[ns]
	if !ok {
		entries = make(map[string]*Metadata)
		idx[ns] = entries
	}
	return entries
}

// indexLocker serializes index writes across processes sharing a cache directory.
type indexLocker struct {
	fl *flock.Flock
}

func newIndexLocker(path string) *indexLocker {
	return &indexLocker{fl: flock.New(path)}
}

func (l *indexLocker) withLock(fn func() error) error {
	if l == nil {
		return fn()
	}
	if err := l.fl.Lock(); err != nil {
		return err
	}
	defer l.fl.Unlock()
	return fn()
}

func (c *Cache) indexPath() string {
	return filepath.Join(c.cfg.Dir, indexFile)
}

func (c *Cache) lockPath() string {
	return filepath.Join(c.cfg.Dir, lockFile)
}

// loadIndex reads the index file. A missing file yields an empty index; an
// unreadable or corrupt one is discarded and rebuilt empty.
func (c *Cache) loadIndex() index {
	idx := newIndex()

	data, err := os.ReadFile(c.indexPath())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("Could not read cache index, starting empty",
				zap.Error(errs.E(errs.KindCacheIO, "read index", err)))
		}
		return idx
	}

	var raw map[string]map[string]*Metadata
	if err := json.Unmarshal(data, &raw); err != nil {
		c.logger.Warn("Cache index is corrupted, rebuilding",
			zap.Error(errs.E(errs.KindCacheIO, "decode index", err)))
		return idx
	}

	for name, entries := range raw {
		ns := Namespace(name)
		if !ns.Valid() {
			continue
		}
		for key, entry := range entries {
			if entry != nil {
				idx[ns][key] = entry
			}
		}
	}
	return idx
}

// saveIndexLocked writes the whole index. Callers hold c.mu.
func (c *Cache) saveIndexLocked() {
	data, err := json.MarshalIndent(c.meta, "", "  ")
	if err != nil {
		c.logger.Warn("Could not encode cache index", zap.Error(err))
		return
	}

	err = c.locker.withLock(func() error {
		return atomic.WriteFile(c.indexPath(), bytes.NewReader(data))
	})
	if err != nil {
		c.logger.Warn("Could not save cache index",
			zap.Error(errs.E(errs.KindCacheIO, "write index", err)))
	}
}
