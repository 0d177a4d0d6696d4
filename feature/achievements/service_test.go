package achievements

import (
	"context"
	"errors"
	"testing"

	"achievement-tracker/core/errs"
	"achievement-tracker/core/reconcile"
	"achievement-tracker/feature/localprogress"
	"achievement-tracker/feature/titles"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCatalogs struct {
	mock.Mock
}

func (m *mockCatalogs) GetBestAchievements(ctx context.Context, titleID, apiKey string) *reconcile.Catalog {
	args := m.Called(ctx, titleID, apiKey)
	cat, _ := args.Get(0).(*reconcile.Catalog)
	return cat
}

func (m *mockCatalogs) HasAPIKey() bool {
	return m.Called().Bool(0)
}

type stubProgress struct {
	records map[string]map[string]localprogress.Record
	counts  map[string]int
}

func (s stubProgress) Progress(titleID string) map[string]localprogress.Record {
	if r, ok := s.records[titleID]; ok {
		return r
	}
	return map[string]localprogress.Record{}
}

func (s stubProgress) Count(titleID string) int {
	return s.counts[titleID]
}

type stubLibrary struct {
	titles    []titles.Title
	err       error
	refreshes int
}

func (s *stubLibrary) Refresh(context.Context) ([]titles.Title, error) {
	s.refreshes++
	return s.titles, s.err
}

func (s *stubLibrary) Titles() []titles.Title {
	return s.titles
}

func sampleCatalog() *reconcile.Catalog {
	cat := reconcile.NewCatalog("10")
	cat.Put(reconcile.Record{ID: "A", DisplayName: "Alpha", Percentage: 80, Source: reconcile.SourcePrimaryAPI})
	cat.Put(reconcile.Record{ID: "B", DisplayName: "Bravo", Percentage: 30, Source: reconcile.SourcePrimaryAPI, Hidden: true})
	cat.Put(reconcile.Record{ID: "C", DisplayName: "Charlie", Percentage: 3, Source: reconcile.SourcePrimaryAPI})
	cat.Put(reconcile.Record{ID: "D", DisplayName: "", Percentage: 0, Source: reconcile.SourceLocalCombined})
	return cat
}

func sampleProgress() stubProgress {
	return stubProgress{
		records: map[string]map[string]localprogress.Record{
			"10": {
				"A": {ID: "A", Earned: true, EarnedTime: 1700},
				"C": {ID: "C", Earned: false},
				"D": {ID: "D", Earned: true},
				"Z": {ID: "Z", Earned: true},
			},
		},
		counts: map[string]int{"10": 3},
	}
}

func newService(cat *reconcile.Catalog, showHidden bool) (*Service, *mockCatalogs) {
	catalogs := new(mockCatalogs)
	catalogs.On("GetBestAchievements", mock.Anything, "10", "").Return(cat)
	catalogs.On("GetBestAchievements", mock.Anything, "99", "").Return(reconcile.NewCatalog("99"))
	catalogs.On("HasAPIKey").Return(false)
	lib := &stubLibrary{titles: []titles.Title{{ID: "10", Name: "Ten", InstallPath: "/g/10", Team: "CODEX", Location: "docs"}}}
	return NewService(catalogs, sampleProgress(), lib, showHidden, zap.NewNop()), catalogs
}

func keys(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Key
	}
	return out
}

func TestAchievements_DefaultQuery(t *testing.T) {
	svc, _ := newService(sampleCatalog(), true)

	list, err := svc.Achievements(context.Background(), "10", DefaultQuery())
	require.NoError(t, err)

	assert.Equal(t, []string{"D", "C", "B", "A"}, keys(list.Achievements))
	assert.Equal(t, ListStats{Total: 4, Unlocked: 2, Locked: 2, CompletionPercentage: 50}, list.Stats)

	d := list.Achievements[0]
	assert.Equal(t, "D", d.Name)
	assert.True(t, d.Unlocked)
	assert.Nil(t, d.UnlockTime)
	assert.Equal(t, reconcile.RarityUltraRare, d.Rarity)

	c := list.Achievements[1]
	assert.Equal(t, "C", c.Key)
	assert.False(t, c.Unlocked, "an unearned local record stays locked")

	a := list.Achievements[3]
	require.NotNil(t, a.UnlockTime)
	assert.Equal(t, int64(1700), *a.UnlockTime)
	assert.Equal(t, reconcile.RarityCommon, a.Rarity)
}

func TestAchievements_Filters(t *testing.T) {
	svc, _ := newService(sampleCatalog(), true)
	ctx := context.Background()

	q := DefaultQuery()
	q.IncludeUnlocked = false
	list, err := svc.Achievements(ctx, "10", q)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B"}, keys(list.Achievements))
	assert.Equal(t, 0, list.Stats.Unlocked)
	assert.Equal(t, 4, list.Stats.Total)

	q = DefaultQuery()
	q.IncludeLocked = false
	list, err = svc.Achievements(ctx, "10", q)
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "A"}, keys(list.Achievements))
}

func TestAchievements_Sorting(t *testing.T) {
	svc, _ := newService(sampleCatalog(), true)
	ctx := context.Background()

	tests := []struct {
		sort string
		want []string
	}{
		{SortName, []string{"A", "B", "C", "D"}},
		{SortUnlocked, []string{"A", "D", "B", "C"}},
		{"", []string{"A", "B", "C", "D"}},
	}
	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			q := DefaultQuery()
			q.SortBy = tt.sort
			list, err := svc.Achievements(ctx, "10", q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys(list.Achievements))
		})
	}
}

func TestAchievements_Limit(t *testing.T) {
	svc, _ := newService(sampleCatalog(), true)

	q := DefaultQuery()
	q.Limit = 2
	list, err := svc.Achievements(context.Background(), "10", q)
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "C"}, keys(list.Achievements))
	assert.Equal(t, 1, list.Stats.Unlocked)
	assert.Equal(t, 4, list.Stats.Total)
	assert.Equal(t, 25.0, list.Stats.CompletionPercentage)
}

func TestAchievements_HiddenOmitted(t *testing.T) {
	svc, _ := newService(sampleCatalog(), false)

	list, err := svc.Achievements(context.Background(), "10", DefaultQuery())
	require.NoError(t, err)
	assert.NotContains(t, keys(list.Achievements), "B")
	assert.Equal(t, 4, list.Stats.Total)
}

func TestAchievements_NotFound(t *testing.T) {
	svc, _ := newService(sampleCatalog(), true)

	_, err := svc.Achievements(context.Background(), "99", DefaultQuery())
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestStats(t *testing.T) {
	svc, _ := newService(sampleCatalog(), true)

	stats, err := svc.Stats(context.Background(), "10")
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalAchievements)
	assert.Equal(t, 3, stats.UnlockedAchievements)
	assert.Equal(t, 1, stats.LockedAchievements)
	assert.Equal(t, 75.0, stats.CompletionPercentage)
	assert.Equal(t, map[reconcile.Rarity]int{
		reconcile.RarityCommon: 1, reconcile.RarityUncommon: 1, reconcile.RarityRare: 0,
		reconcile.RarityVeryRare: 0, reconcile.RarityUltraRare: 2,
	}, stats.RarityBreakdown)
	assert.Equal(t, 1, stats.UnlockedRarityBreakdown[reconcile.RarityCommon])
	assert.Equal(t, 1, stats.UnlockedRarityBreakdown[reconcile.RarityUltraRare])
	require.Len(t, stats.CompletedAchievements, 3)
	assert.Equal(t, "A", stats.CompletedAchievements[0].ID)
}

func TestStats_CountAboveTotalIsClamped(t *testing.T) {
	cat := reconcile.NewCatalog("10")
	cat.Put(reconcile.Record{ID: "5", DisplayName: "5", Source: reconcile.SourceLocalFile})

	catalogs := new(mockCatalogs)
	catalogs.On("GetBestAchievements", mock.Anything, "250900", "").Return(cat)
	progress := stubProgress{
		records: map[string]map[string]localprogress.Record{"250900": {"5": {ID: "5", Earned: true}}},
		counts:  map[string]int{"250900": 12},
	}
	svc := NewService(catalogs, progress, &stubLibrary{titles: []titles.Title{{ID: "250900"}}}, true, nil)

	stats, err := svc.Stats(context.Background(), "250900")
	require.NoError(t, err)
	assert.Equal(t, 12, stats.UnlockedAchievements)
	assert.Equal(t, 0, stats.LockedAchievements)
	assert.Equal(t, 100.0, stats.CompletionPercentage)
}

func TestListTitles(t *testing.T) {
	svc, catalogs := newService(sampleCatalog(), true)

	games, err := svc.ListTitles(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, TitleSummary{
		AppID:                      "10",
		Name:                       "Ten",
		Path:                       "/g/10",
		Team:                       "CODEX",
		Location:                   "docs",
		LocalAchievementsCount:     3,
		TotalObtenableAchievements: 4,
		HasAPIData:                 false,
	}, games[0])
	catalogs.AssertCalled(t, "HasAPIKey")
}

func TestListTitles_ScanFailure(t *testing.T) {
	lib := &stubLibrary{err: errors.New("disk gone")}
	catalogs := new(mockCatalogs)
	catalogs.On("HasAPIKey").Return(true)
	svc := NewService(catalogs, stubProgress{}, lib, true, nil)

	_, err := svc.ListTitles(context.Background())
	assert.Error(t, err)
}

func TestCatalog_RefreshesEmptyLibrary(t *testing.T) {
	catalogs := new(mockCatalogs)
	catalogs.On("GetBestAchievements", mock.Anything, "10", "").Return(sampleCatalog())
	lib := &stubLibrary{}
	svc := NewService(catalogs, stubProgress{}, lib, true, nil)

	_, err := svc.Stats(context.Background(), "10")
	require.NoError(t, err)
	assert.Equal(t, 1, lib.refreshes)
}
