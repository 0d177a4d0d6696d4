package system

import (
	"achievement-tracker/core/cache"
	"achievement-tracker/core/errs"
	"achievement-tracker/core/logger"

	"go.uber.org/zap"
)

// Service exposes cache maintenance.
type Service struct {
	cache  *cache.Cache
	logger *zap.Logger
}

// NewService creates a new system service.
func NewService(c *cache.Cache, log *zap.Logger) *Service {
	return &Service{cache: c, logger: logger.Component(log, "system")}
}

// CacheStats returns per-namespace counts and sizes.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// ClearCache empties one namespace, or all of them when namespace is empty,
// and returns the number of entries removed.
func (s *Service) ClearCache(namespace string) (int, error) {
	if namespace == "" {
		removed := s.cache.ClearAll()
		s.logger.Info("Cache cleared", zap.Int("removed", removed))
		return removed, nil
	}

	ns, ok := cache.ParseNamespace(namespace)
	if !ok {
		return 0, errs.Ef(errs.KindInvalidInput, "clear cache", "unknown namespace %q", namespace)
	}
	removed := s.cache.Clear(ns)
	s.logger.Info("Cache namespace cleared", zap.String("namespace", string(ns)), zap.Int("removed", removed))
	return removed, nil
}

// Cleanup removes expired entries and returns how many were removed.
func (s *Service) Cleanup() int {
	return s.cache.CleanupExpired()
}
