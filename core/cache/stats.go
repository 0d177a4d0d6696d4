package cache

import "math"

// NamespaceStats summarizes one namespace.
type NamespaceStats struct {
	Files  int     `json:"files"`
	Size   int64   `json:"size"`
	SizeMB float64 `json:"size_mb"`
}

// Stats summarizes the whole cache as recorded in the index.
type Stats struct {
	Enabled     bool                      `json:"enabled"`
	Dir         string                    `json:"cache_dir,omitempty"`
	TotalFiles  int                       `json:"total_files"`
	TotalSize   int64                     `json:"total_size"`
	TotalSizeMB float64                   `json:"total_size_mb"`
	MaxSize     int64                     `json:"max_size,omitempty"`
	ByNamespace map[string]NamespaceStats `json:"by_type"`
}

// Stats returns per-namespace entry counts and sizes. Expired entries still
// count until CleanupExpired removes them.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Stats{
		Enabled:     c.enabled,
		ByNamespace: make(map[string]NamespaceStats, len(Namespaces)),
	}
	if !c.enabled {
		return stats
	}

	stats.Dir = c.cfg.Dir
	stats.MaxSize = c.cfg.MaxCacheSize
	for _, ns := range Namespaces {
		entry := NamespaceStats{}
		for _, meta := range c.meta[ns] {
			entry.Files++
			entry.Size += meta.Size
		}
		entry.SizeMB = toMB(entry.Size)
		stats.ByNamespace[string(ns)] = entry
		stats.TotalFiles += entry.Files
		stats.TotalSize += entry.Size
	}
	stats.TotalSizeMB = toMB(stats.TotalSize)
	return stats
}

func toMB(size int64) float64 {
	return math.Round(float64(size)/(1024*1024)*100) / 100
}
