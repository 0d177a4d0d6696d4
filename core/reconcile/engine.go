package reconcile

import (
	"context"
	"sort"
	"time"

	"achievement-tracker/core/cache"
	"achievement-tracker/core/logger"
	"achievement-tracker/core/utils"

	"go.uber.org/zap"
)

// Strategy is the merge path chosen for a request.
type Strategy string

const (
	// StrategyPremium merges schema metadata with global percentages. Requires an API key.
	StrategyPremium Strategy = "premium"
	// StrategyFree relies on the public catalog page.
	StrategyFree Strategy = "free"
)

const (
	premiumKeySuffix = "_steam"
	freeKeySuffix    = "_gratuit"
)

// CacheKey returns the achievements namespace key of a title's merged catalog.
func CacheKey(titleID string, s Strategy) string {
	if s == StrategyPremium {
		return titleID + premiumKeySuffix
	}
	return titleID + freeKeySuffix
}

// CacheKeys returns the keys of every strategy for a title.
func CacheKeys(titleID string) []string {
	return []string{CacheKey(titleID, StrategyPremium), CacheKey(titleID, StrategyFree)}
}

// Sources bundles the data providers consulted by the engine. Any of them may
// be nil, in which case it contributes nothing.
type Sources struct {
	Metadata    MetadataSource
	Percentages PercentageSource
	Catalog     CatalogSource
	Local       LocalSource
}

// Options carries the engine's optional collaborators.
type Options struct {
	// DefaultAPIKey is used when a request carries no key.
	DefaultAPIKey string
	// Verbose logs strategy selection and merge sizes at info level.
	Verbose bool
	// Matcher overrides the matcher selected by Config.
	Matcher Matcher
	Logger  *zap.Logger
}

// Engine builds merged per-title catalogs.
type Engine struct {
	cfg     Config
	cache   *cache.Cache
	src     Sources
	apiKey  string
	verbose bool
	matcher Matcher
	logger  *zap.Logger
}

// NewEngine creates an Engine. c may be nil, which disables catalog caching.
func NewEngine(cfg Config, c *cache.Cache, src Sources, opts Options) *Engine {
	cfg.Normalize()
	m := opts.Matcher
	if m == nil {
		m = cfg.NewMatcher()
	}
	return &Engine{
		cfg:     cfg,
		cache:   c,
		src:     src,
		apiKey:  opts.DefaultAPIKey,
		verbose: opts.Verbose,
		matcher: m,
		logger:  logger.Component(opts.Logger, "reconcile"),
	}
}

// Strategy returns the strategy used for apiKey (falling back to the default key).
func (e *Engine) Strategy(apiKey string) Strategy {
	if e.effectiveKey(apiKey) != "" {
		return StrategyPremium
	}
	return StrategyFree
}

// HasAPIKey reports whether a default API key is configured.
func (e *Engine) HasAPIKey() bool {
	return e.apiKey != ""
}

// GetBestAchievements returns the merged catalog for titleID. Source failures
// are logged and contribute nothing; the result is never nil but may be empty.
func (e *Engine) GetBestAchievements(ctx context.Context, titleID, apiKey string) *Catalog {
	key := e.effectiveKey(apiKey)
	if key != "" {
		e.debug("Using premium strategy", zap.String("title_id", titleID))
		return e.premium(ctx, titleID, key)
	}
	e.debug("Using free strategy", zap.String("title_id", titleID))
	return e.free(ctx, titleID)
}

// Invalidate drops every cached catalog of a title.
func (e *Engine) Invalidate(titleID string) {
	if e.cache == nil {
		return
	}
	for _, k := range CacheKeys(titleID) {
		e.cache.Invalidate(cache.NamespaceAchievements, k)
	}
}

func (e *Engine) premium(ctx context.Context, titleID, apiKey string) *Catalog {
	key := CacheKey(titleID, StrategyPremium)
	if cat, ok := e.cached(titleID, key); ok {
		if e.cfg.SortByPercentage {
			cat.SortByPercentage()
		}
		return cat
	}

	cat := NewCatalog(titleID)

	var schema []SchemaEntry
	if e.src.Metadata != nil {
		var err error
		if schema, err = e.src.Metadata.Schema(ctx, titleID, apiKey); err != nil {
			e.logger.Warn("Schema lookup failed", zap.String("title_id", titleID), zap.Error(err))
		}
	}

	percentages := make(map[string]float64)
	if e.src.Percentages != nil {
		entries, err := e.src.Percentages.Percentages(ctx, titleID)
		if err != nil {
			e.logger.Warn("Percentage lookup failed", zap.String("title_id", titleID), zap.Error(err))
		}
		for _, p := range entries {
			percentages[p.ID] = p.Percentage
		}
	}

	for _, s := range schema {
		if s.ID == "" {
			continue
		}
		name := s.DisplayName
		if name == "" {
			name = e.fallbackName(s.ID)
		}
		cat.Put(Record{
			ID:          s.ID,
			DisplayName: name,
			Description: s.Description,
			Hidden:      s.Hidden,
			Percentage:  percentages[s.ID],
			Icon:        s.Icon,
			IconGray:    s.IconGray,
			Source:      SourcePrimaryAPI,
		})
	}

	e.appendLocal(cat, SourceLocalCombined, Beautify)
	e.debug("Merged premium catalog", zap.String("title_id", titleID),
		zap.Int("schema", len(schema)), zap.Int("percentages", len(percentages)), zap.Int("records", cat.Len()))

	e.store(key, cat, time.Duration(e.cfg.PremiumTTLHours)*time.Hour)
	if e.cfg.SortByPercentage {
		cat.SortByPercentage()
	}
	return cat
}

func (e *Engine) free(ctx context.Context, titleID string) *Catalog {
	key := CacheKey(titleID, StrategyFree)
	if cat, ok := e.cached(titleID, key); ok {
		return cat
	}

	cat := NewCatalog(titleID)

	var rows []ScrapedEntry
	if e.src.Catalog != nil {
		var err error
		if rows, err = e.src.Catalog.Scrape(ctx, titleID); err != nil {
			e.logger.Warn("Catalog scrape failed", zap.String("title_id", titleID), zap.Error(err))
		}
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.ID == "" {
			continue
		}
		name := row.DisplayName
		if name == "" {
			name = e.fallbackName(row.ID)
		} else {
			names = append(names, name)
		}
		cat.Put(Record{
			ID:          row.ID,
			DisplayName: name,
			Description: row.Description,
			Percentage:  row.Percentage,
			Icon:        row.Icon,
			Source:      SourceSecondaryScrape,
		})
	}

	e.appendLocal(cat, SourceLocalFile, func(id string) string {
		if match, ok := e.matcher.Match(id, names); ok {
			return match
		}
		return e.fallbackName(id)
	})
	e.debug("Merged free catalog", zap.String("title_id", titleID),
		zap.Int("scraped", len(rows)), zap.Int("records", cat.Len()))

	if e.cfg.SortByPercentage {
		cat.SortByPercentage()
	}
	e.store(key, cat, time.Duration(e.cfg.FreeTTLHours)*time.Hour)
	return cat
}

// appendLocal adds local ids missing from cat in natural id order.
func (e *Engine) appendLocal(cat *Catalog, source Source, name func(string) string) {
	if e.src.Local == nil {
		return
	}
	var missing []string
	for _, id := range e.src.Local.LocalIDs(cat.TitleID) {
		if id != "" && !cat.Has(id) {
			missing = append(missing, id)
		}
	}
	sort.SliceStable(missing, func(i, j int) bool {
		return utils.NaturalLess(missing[i], missing[j])
	})
	for _, id := range missing {
		cat.Put(Record{ID: id, DisplayName: name(id), Percentage: 0, Source: source})
	}
}

func (e *Engine) cached(titleID, key string) (*Catalog, bool) {
	if e.cache == nil {
		return nil, false
	}
	var cat Catalog
	if !e.cache.Load(cache.NamespaceAchievements, key, &cat) {
		return nil, false
	}
	if cat.TitleID == "" {
		cat.TitleID = titleID
	}
	if cat.Records == nil {
		cat.Records = []Record{}
	}
	e.debug("Catalog cache hit", zap.String("key", key), zap.Int("records", cat.Len()))
	return &cat, true
}

// store caches non-empty catalogs only.
func (e *Engine) store(key string, cat *Catalog, ttl time.Duration) {
	if e.cache == nil || cat.Empty() {
		return
	}
	e.cache.Set(cache.NamespaceAchievements, key, cat, ttl)
}

func (e *Engine) fallbackName(id string) string {
	if e.cfg.FallbackBeautify {
		return Beautify(id)
	}
	return id
}

func (e *Engine) effectiveKey(apiKey string) string {
	if apiKey != "" {
		return apiKey
	}
	return e.apiKey
}

func (e *Engine) debug(msg string, fields ...zap.Field) {
	if e.verbose {
		e.logger.Info(msg, fields...)
		return
	}
	e.logger.Debug(msg, fields...)
}
