package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"achievement-tracker/core/errs"
	"achievement-tracker/core/logger"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"
)

// Cache is a namespaced TTL cache storing one JSON blob per entry on disk and
// all entry metadata in a single index file.
//
// Failures never reach the caller: reads degrade to a miss and writes report
// false. A present-but-expired or unreadable entry is always a miss.
type Cache struct {
	cfg    Config
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	enabled bool
	meta    index
	locker  *indexLocker
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger used to report I/O failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a cache rooted at cfg.Dir. Directory setup failures disable the
// cache instead of failing construction.
func New(cfg Config, opts ...Option) *Cache {
	cfg.Normalize()
	c := &Cache{
		cfg:     cfg,
		logger:  zap.NewNop(),
		now:     time.Now,
		enabled: cfg.Enabled,
		meta:    newIndex(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logger.Component(c.logger, "cache")

	if !c.enabled {
		return c
	}

	if err := c.setupDirectories(); err != nil {
		c.logger.Warn("Could not create cache directories, caching disabled",
			zap.String("dir", cfg.Dir), zap.Error(err))
		c.enabled = false
		return c
	}

	if cfg.LockIndex {
		c.locker = newIndexLocker(c.lockPath())
	}
	c.meta = c.loadIndex()
	return c
}

// Enabled reports whether the cache is active.
func (c *Cache) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// DefaultTTL returns the TTL applied when Set receives none.
func (c *Cache) DefaultTTL() time.Duration {
	return c.cfg.DefaultTTL()
}

// Get returns the raw JSON blob stored under (ns, key) if it exists and has not expired.
func (c *Cache) Get(ns Namespace, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled || !ns.Valid() || key == "" {
		return nil, false
	}

	entry, ok := c.meta[ns][key]
	if !ok {
		return nil, false
	}
	now := c.now()
	if entry.expired(now) {
		return nil, false
	}

	path := c.blobPath(ns, key)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("Could not read cache file",
				zap.String("path", path), zap.Error(errs.E(errs.KindCacheIO, "read blob", err)))
		}
		c.invalidateLocked(ns, key)
		return nil, false
	}
	if !json.Valid(data) {
		c.logger.Warn("Removing corrupted cache entry",
			zap.String("namespace", string(ns)), zap.String("key", key))
		c.invalidateLocked(ns, key)
		return nil, false
	}

	entry.LastAccessed = unixSeconds(now)
	return data, true
}

// Load decodes the entry under (ns, key) into v. An entry that does not decode
// into v is invalidated and reported as a miss.
func (c *Cache) Load(ns Namespace, key string, v any) bool {
	data, ok := c.Get(ns, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		c.logger.Warn("Removing undecodable cache entry",
			zap.String("namespace", string(ns)), zap.String("key", key), zap.Error(err))
		c.Invalidate(ns, key)
		return false
	}
	return true
}

// Set stores value under (ns, key). value is JSON encoded unless it already is
// a json.RawMessage. A ttl <= 0 uses the configured default.
func (c *Cache) Set(ns Namespace, key string, value any, ttl time.Duration) bool {
	data, err := encode(value)
	if err != nil {
		c.logger.Warn("Could not encode cache value",
			zap.String("namespace", string(ns)), zap.String("key", key), zap.Error(err))
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled || !ns.Valid() || key == "" {
		return false
	}
	if ttl <= 0 {
		ttl = c.cfg.DefaultTTL()
	}

	dir := filepath.Join(c.cfg.Dir, string(ns))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.logger.Warn("Could not create namespace directory",
			zap.String("dir", dir), zap.Error(errs.E(errs.KindCacheIO, "mkdir", err)))
		return false
	}

	path := c.blobPath(ns, key)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		c.logger.Warn("Could not write cache file",
			zap.String("path", path), zap.Error(errs.E(errs.KindCacheIO, "write blob", err)))
		return false
	}

	now := unixSeconds(c.now())
	c.meta.ensure(ns)[key] = &Metadata{
		CreatedTime:  now,
		TTL:          int64(math.Ceil(ttl.Seconds())),
		Size:         int64(len(data)),
		LastAccessed: now,
	}
	c.saveIndexLocked()
	return true
}

// Invalidate removes the entry under (ns, key), blob and metadata.
func (c *Cache) Invalidate(ns Namespace, key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidateLocked(ns, key)
}

func (c *Cache) invalidateLocked(ns Namespace, key string) bool {
	if !c.enabled || !ns.Valid() || key == "" {
		return false
	}

	path := c.blobPath(ns, key)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		c.logger.Warn("Could not invalidate cache entry",
			zap.String("path", path), zap.Error(errs.E(errs.KindCacheIO, "remove blob", err)))
		return false
	}

	if _, ok := c.meta[ns][key]; ok {
		delete(c.meta[ns], key)
		c.saveIndexLocked()
	}
	return true
}

// Clear removes every entry of one namespace and returns the number of blobs removed.
func (c *Cache) Clear(ns Namespace) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clearLocked(ns)
}

// ClearAll clears every namespace and returns the total number of blobs removed.
func (c *Cache) ClearAll() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, ns := range Namespaces {
		total += c.clearLocked(ns)
	}
	return total
}

func (c *Cache) clearLocked(ns Namespace) int {
	if !c.enabled || !ns.Valid() {
		return 0
	}

	removed := 0
	files, err := filepath.Glob(filepath.Join(c.cfg.Dir, string(ns), "*.json"))
	if err != nil {
		c.logger.Warn("Could not list cache namespace", zap.String("namespace", string(ns)), zap.Error(err))
	}
	for _, file := range files {
		if err := os.Remove(file); err != nil {
			c.logger.Warn("Could not clear cache namespace",
				zap.String("namespace", string(ns)), zap.Error(errs.E(errs.KindCacheIO, "remove blob", err)))
			break
		}
		removed++
	}

	c.meta[ns] = make(map[string]*Metadata)
	c.saveIndexLocked()

	if removed > 0 {
		c.logger.Info("Cleared cache namespace", zap.String("namespace", string(ns)), zap.Int("removed", removed))
	}
	return removed
}

// CleanupExpired removes every entry whose age exceeds its TTL.
func (c *Cache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return 0
	}

	now := c.now()
	removed := 0
	for _, ns := range Namespaces {
		for key, entry := range c.meta[ns] {
			if !entry.expired(now) {
				continue
			}
			path := c.blobPath(ns, key)
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				c.logger.Warn("Could not remove expired cache entry",
					zap.String("path", path), zap.Error(errs.E(errs.KindCacheIO, "remove blob", err)))
				continue
			}
			delete(c.meta[ns], key)
			removed++
		}
	}

	if removed > 0 {
		c.saveIndexLocked()
		c.logger.Info("Cleaned up expired cache entries", zap.Int("removed", removed))
	}
	return removed
}

// Metadata returns a copy of the metadata recorded for (ns, key).
func (c *Cache) Metadata(ns Namespace, key string) (Metadata, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.meta[ns][key]
	if !ok {
		return Metadata{}, false
	}
	return *entry, true
}

func (c *Cache) setupDirectories() error {
	for _, ns := range Namespaces {
		if err := os.MkdirAll(filepath.Join(c.cfg.Dir, string(ns)), 0o755); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cache) blobPath(ns Namespace, key string) string {
	return filepath.Join(c.cfg.Dir, string(ns), SanitizeKey(key)+".json")
}

func encode(value any) ([]byte, error) {
	switch v := value.(type) {
	case json.RawMessage:
		if !json.Valid(v) {
			return nil, errors.New("raw value is not valid JSON")
		}
		return v, nil
	case []byte:
		if !json.Valid(v) {
			return nil, errors.New("byte value is not valid JSON")
		}
		return v, nil
	default:
		return json.MarshalIndent(value, "", "  ")
	}
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
