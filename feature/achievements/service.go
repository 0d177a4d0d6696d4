package achievements

import (
	"context"
	"math"
	"sort"

	"achievement-tracker/core/errs"
	"achievement-tracker/core/logger"
	"achievement-tracker/core/reconcile"
	"achievement-tracker/core/utils"
	"achievement-tracker/feature/localprogress"
	"achievement-tracker/feature/titles"

	"go.uber.org/zap"
)

// CatalogProvider returns merged catalogs.
type CatalogProvider interface {
	GetBestAchievements(ctx context.Context, titleID, apiKey string) *reconcile.Catalog
	HasAPIKey() bool
}

// ProgressReader reads local unlock state.
type ProgressReader interface {
	Progress(titleID string) map[string]localprogress.Record
	Count(titleID string) int
}

// TitleLister provides the installed titles.
type TitleLister interface {
	Refresh(ctx context.Context) ([]titles.Title, error)
	Titles() []titles.Title
}

// Sort orders accepted by Achievements.
const (
	SortPercentage = "percentage"
	SortName       = "name"
	SortUnlocked   = "unlocked"
)

// Query filters and orders an achievement list.
type Query struct {
	IncludeUnlocked bool
	IncludeLocked   bool
	SortBy          string
	// Limit keeps the first n items when positive.
	Limit int
}

// DefaultQuery returns every achievement sorted by ascending percentage.
func DefaultQuery() Query {
	return Query{IncludeUnlocked: true, IncludeLocked: true, SortBy: SortPercentage}
}

// TitleSummary is one entry of the title list.
type TitleSummary struct {
	AppID                      string `json:"app_id"`
	Name                       string `json:"name"`
	Path                       string `json:"path"`
	Team                       string `json:"team"`
	Location                   string `json:"location"`
	LocalAchievementsCount     int    `json:"local_achievements_count"`
	TotalObtenableAchievements int    `json:"total_obtenable_achievements"`
	HasAPIData                 bool   `json:"has_api_data"`
}

// Item is one achievement as shown to a user.
type Item struct {
	Key         string           `json:"key"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Percentage  float64          `json:"percentage"`
	Icon        string           `json:"icon"`
	IconGray    string           `json:"icon_gray"`
	Unlocked    bool             `json:"unlocked"`
	UnlockTime  *int64           `json:"unlock_time"`
	Rarity      reconcile.Rarity `json:"rarity"`
	Source      reconcile.Source `json:"source"`
	Hidden      bool             `json:"hidden"`
}

// ListStats summarizes an achievement list.
type ListStats struct {
	Total                int     `json:"total"`
	Unlocked             int     `json:"unlocked"`
	Locked               int     `json:"locked"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// List is the result of Achievements.
type List struct {
	AppID        string    `json:"app_id"`
	Achievements []Item    `json:"achievements"`
	Stats        ListStats `json:"stats"`
}

// TitleStats is the result of Stats.
type TitleStats struct {
	TotalAchievements       int                      `json:"total_achievements"`
	UnlockedAchievements    int                      `json:"unlocked_achievements"`
	LockedAchievements      int                      `json:"locked_achievements"`
	CompletionPercentage    float64                  `json:"completion_percentage"`
	RarityBreakdown         map[reconcile.Rarity]int `json:"rarity_breakdown"`
	UnlockedRarityBreakdown map[reconcile.Rarity]int `json:"unlocked_rarity_breakdown"`
	CompletedAchievements   []localprogress.Record   `json:"completed_achievements"`
}

// Service implements the achievement read operations.
type Service struct {
	catalogs   CatalogProvider
	progress   ProgressReader
	library    TitleLister
	showHidden bool
	logger     *zap.Logger
}

// NewService creates a Service. showHidden controls whether hidden records are listed.
func NewService(catalogs CatalogProvider, progress ProgressReader, library TitleLister, showHidden bool, log *zap.Logger) *Service {
	return &Service{
		catalogs:   catalogs,
		progress:   progress,
		library:    library,
		showHidden: showHidden,
		logger:     logger.Component(log, "achievements"),
	}
}

// ListTitles rescans installed titles and summarizes each one.
func (s *Service) ListTitles(ctx context.Context) ([]TitleSummary, error) {
	found, err := s.library.Refresh(ctx)
	if err != nil {
		return nil, errs.E(errs.KindInternal, "list titles", err)
	}

	hasAPI := s.catalogs.HasAPIKey()
	out := make([]TitleSummary, 0, len(found))
	for _, t := range found {
		cat := s.catalogs.GetBestAchievements(ctx, t.ID, "")
		out = append(out, TitleSummary{
			AppID:                      t.ID,
			Name:                       t.Name,
			Path:                       t.InstallPath,
			Team:                       t.Team,
			Location:                   t.Location,
			LocalAchievementsCount:     s.progress.Count(t.ID),
			TotalObtenableAchievements: cat.Len(),
			HasAPIData:                 hasAPI,
		})
	}
	return out, nil
}

// Achievements lists the merged catalog of a title joined with its local unlock state.
func (s *Service) Achievements(ctx context.Context, titleID string, q Query) (*List, error) {
	cat, err := s.catalog(ctx, titleID)
	if err != nil {
		return nil, err
	}
	progress := s.progress.Progress(titleID)

	items := make([]Item, 0, cat.Len())
	for _, rec := range cat.Records {
		if rec.Hidden && !s.showHidden {
			continue
		}
		local := progress[rec.ID]
		unlocked := local.Earned
		if unlocked && !q.IncludeUnlocked || !unlocked && !q.IncludeLocked {
			continue
		}

		item := Item{
			Key:         rec.ID,
			Name:        rec.DisplayName,
			Description: rec.Description,
			Percentage:  rec.Percentage,
			Icon:        rec.Icon,
			IconGray:    rec.IconGray,
			Unlocked:    unlocked,
			Rarity:      rec.Rarity(),
			Source:      rec.Source,
			Hidden:      rec.Hidden,
		}
		if item.Name == "" {
			item.Name = rec.ID
		}
		if unlocked && local.EarnedTime > 0 {
			t := local.EarnedTime
			item.UnlockTime = &t
		}
		items = append(items, item)
	}

	sortItems(items, q.SortBy)
	if q.Limit > 0 && len(items) > q.Limit {
		items = items[:q.Limit]
	}

	total := cat.Len()
	unlocked := 0
	for _, it := range items {
		if it.Unlocked {
			unlocked++
		}
	}

	return &List{
		AppID:        titleID,
		Achievements: items,
		Stats: ListStats{
			Total:                total,
			Unlocked:             unlocked,
			Locked:               total - unlocked,
			CompletionPercentage: completion(unlocked, total),
		},
	}, nil
}

// Stats summarizes a title's completion and rarity distribution.
func (s *Service) Stats(ctx context.Context, titleID string) (*TitleStats, error) {
	cat, err := s.catalog(ctx, titleID)
	if err != nil {
		return nil, err
	}

	total := cat.Len()
	unlocked := s.progress.Count(titleID)
	progress := s.progress.Progress(titleID)

	var unlockedRecords []reconcile.Record
	completed := make([]localprogress.Record, 0, len(progress))
	for id, rec := range progress {
		if !rec.Earned {
			continue
		}
		completed = append(completed, rec)
		if r, ok := cat.Get(id); ok {
			unlockedRecords = append(unlockedRecords, r)
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		return utils.NaturalLess(completed[i].ID, completed[j].ID)
	})

	return &TitleStats{
		TotalAchievements:       total,
		UnlockedAchievements:    unlocked,
		LockedAchievements:      max(total-unlocked, 0),
		CompletionPercentage:    math.Min(completion(unlocked, total), 100),
		RarityBreakdown:         reconcile.Breakdown(cat.Records),
		UnlockedRarityBreakdown: reconcile.Breakdown(unlockedRecords),
		CompletedAchievements:   completed,
	}, nil
}

// catalog makes sure local progress is registered before merging, then
// reports an empty merge as not found.
func (s *Service) catalog(ctx context.Context, titleID string) (*reconcile.Catalog, error) {
	if len(s.library.Titles()) == 0 {
		if _, err := s.library.Refresh(ctx); err != nil {
			s.logger.Warn("Title scan failed", zap.Error(err))
		}
	}

	cat := s.catalogs.GetBestAchievements(ctx, titleID, "")
	if cat.Empty() {
		return nil, errs.Ef(errs.KindNotFound, "achievements", "no achievements found for game %s", titleID)
	}
	return cat, nil
}

func sortItems(items []Item, by string) {
	switch by {
	case SortPercentage:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Percentage < items[j].Percentage
		})
	case SortName:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Name < items[j].Name
		})
	case SortUnlocked:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Unlocked != items[j].Unlocked {
				return items[i].Unlocked
			}
			return items[i].Name < items[j].Name
		})
	}
}

// completion is unlocked/total as a percentage rounded to one decimal.
func completion(unlocked, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(unlocked)/float64(total)*1000) / 10
}
