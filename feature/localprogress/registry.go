package localprogress

import (
	"sort"
	"sync"

	"achievement-tracker/core/cache"
	"achievement-tracker/core/logger"
	"achievement-tracker/core/utils"

	"go.uber.org/zap"
)

type registration struct {
	Path string `json:"path"`
}

// Registry maps title ids to their progress files. It implements
// reconcile.LocalSource.
type Registry struct {
	mu         sync.RWMutex
	paths      map[string]string
	onRegister func(titleID, path string)
	cache      *cache.Cache
	logger     *zap.Logger
}

// NewRegistry creates an empty Registry. c may be nil, which disables
// remembering probe results across processes.
func NewRegistry(c *cache.Cache, log *zap.Logger) *Registry {
	return &Registry{
		paths:  make(map[string]string),
		cache:  c,
		logger: logger.Component(log, "localprogress"),
	}
}

// Register resolves the progress file of a title installed in installDir.
// A path remembered in the local_achievements namespace is reused while the
// file stays valid; otherwise installDir is probed.
func (r *Registry) Register(titleID, installDir string) (string, bool) {
	if path, ok := r.remembered(titleID); ok {
		r.set(titleID, path)
		return path, true
	}

	path, ok := Probe(installDir)
	if !ok {
		r.logger.Debug("No progress file found", zap.String("title_id", titleID), zap.String("dir", installDir))
		return "", false
	}

	r.set(titleID, path)
	if r.cache != nil {
		r.cache.Set(cache.NamespaceLocalAchievements, titleID, registration{Path: path}, 0)
	}
	r.logger.Debug("Progress file registered", zap.String("title_id", titleID), zap.String("path", path))
	return path, true
}

func (r *Registry) remembered(titleID string) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	var reg registration
	if !r.cache.Load(cache.NamespaceLocalAchievements, titleID, &reg) || reg.Path == "" {
		return "", false
	}
	if !Valid(reg.Path) {
		r.cache.Invalidate(cache.NamespaceLocalAchievements, titleID)
		return "", false
	}
	return reg.Path, true
}

// OnRegister sets a hook called with every resolved registration, including
// the ones of later Register calls.
func (r *Registry) OnRegister(fn func(titleID, path string)) {
	r.mu.Lock()
	r.onRegister = fn
	r.mu.Unlock()
}

func (r *Registry) set(titleID, path string) {
	r.mu.Lock()
	r.paths[titleID] = path
	hook := r.onRegister
	r.mu.Unlock()

	if hook != nil {
		hook(titleID, path)
	}
}

// Path returns the registered progress file of a title.
func (r *Registry) Path(titleID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok := r.paths[titleID]
	return path, ok
}

// Paths returns a copy of every registration.
func (r *Registry) Paths() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.paths))
	for id, path := range r.paths {
		out[id] = path
	}
	return out
}

// Progress re-reads the records of a title. Unregistered titles yield an empty map.
func (r *Registry) Progress(titleID string) map[string]Record {
	path, ok := r.Path(titleID)
	if !ok {
		return map[string]Record{}
	}
	return Parse(path)
}

// Count re-reads the unlocked count of a title.
func (r *Registry) Count(titleID string) int {
	path, ok := r.Path(titleID)
	if !ok {
		return 0
	}
	return Count(path)
}

// LocalIDs returns the local record ids of a title in natural order, or nil when no
// file is registered.
func (r *Registry) LocalIDs(titleID string) []string {
	if _, ok := r.Path(titleID); !ok {
		return nil
	}
	progress := r.Progress(titleID)
	ids := make([]string, 0, len(progress))
	for id := range progress {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return utils.NaturalLess(ids[i], ids[j])
	})
	return ids
}
