package localprogress

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"achievement-tracker/core/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const scenarioINI = `[SteamAchievements]
Count=12

[5]
Achieved=1
UnlockTime=1000

[6]
Achieved=0

[ACH_WIN_GAME]
Achieved=1

[Settings]
Achieved=1
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse_INI(t *testing.T) {
	path := writeFile(t, t.TempDir(), "achievements.ini", scenarioINI)

	records := Parse(path)

	assert.Len(t, records, 3)
	assert.Equal(t, Record{ID: "5", Earned: true, EarnedTime: 1000}, records["5"])
	assert.Equal(t, Record{ID: "6", Earned: false, EarnedTime: 0}, records["6"])
	assert.Equal(t, Record{ID: "ACH_WIN_GAME", Earned: true, EarnedTime: 0}, records["ACH_WIN_GAME"])
	assert.NotContains(t, records, "Settings")
	assert.NotContains(t, records, "SteamAchievements")
}

func TestCount(t *testing.T) {
	dir := t.TempDir()

	withAggregate := writeFile(t, dir, "a.ini", scenarioINI)
	assert.Equal(t, 12, Count(withAggregate))

	withoutAggregate := writeFile(t, dir, "b.ini", "[1]\nAchieved=1\n[2]\nAchieved=1\n[3]\nAchieved=0\n")
	assert.Equal(t, 2, Count(withoutAggregate))

	assert.Equal(t, 0, Count(filepath.Join(dir, "missing.ini")))
}

func TestParse_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "achievements.json", `{
		"ACH_A": {"earned": true, "earned_time": 1700000000},
		"ACH_B": {"earned": 1, "earned_time": "42"},
		"ACH_C": {"earned": false, "earned_time": 0},
		"ACH_D": {"earned": "true"},
		"junk": 5
	}`)

	records := Parse(path)

	assert.Len(t, records, 3)
	assert.Equal(t, int64(1700000000), records["ACH_A"].EarnedTime)
	assert.Equal(t, int64(42), records["ACH_B"].EarnedTime)
	assert.True(t, records["ACH_D"].Earned)
	assert.NotContains(t, records, "ACH_C")
}

func TestParse_FailuresYieldEmpty(t *testing.T) {
	dir := t.TempDir()

	assert.Empty(t, Parse(writeFile(t, dir, "bad.json", "{not json")))
	assert.Empty(t, Parse(writeFile(t, dir, "list.json", `[1,2,3]`)))
	assert.Empty(t, Parse(filepath.Join(dir, "missing.ini")))
	assert.NotNil(t, Parse(filepath.Join(dir, "missing.ini")))
}

func TestProbe_Order(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stats/achievements.json", `{"A_1": {"earned": true}}`)
	writeFile(t, dir, "steam_settings/achievements.json", `{"A_2": {"earned": true}}`)

	path, ok := Probe(dir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "stats", "achievements.json"), path)
}

func TestProbe_SkipsInvalidCandidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "achievements.ini", "")
	writeFile(t, dir, "achievements.json", "{broken")
	writeFile(t, dir, "stats/achievements.ini", "[General]\nfoo=bar\n")
	want := writeFile(t, dir, "SteamEmu/UserStats/achiev.ini", "[SteamAchievements]\nCount=3\n")

	path, ok := Probe(dir)
	require.True(t, ok)
	assert.Equal(t, want, path)

	_, ok = Probe(t.TempDir())
	assert.False(t, ok)
}

func TestRegistry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "achievements.ini", scenarioINI)
	c := cache.New(cache.Config{Enabled: true, Dir: t.TempDir()})

	reg := NewRegistry(c, zap.NewNop())
	path, ok := reg.Register("250900", dir)
	require.True(t, ok)

	assert.Equal(t, 12, reg.Count("250900"))
	assert.Equal(t, []string{"5", "6", "ACH_WIN_GAME"}, reg.LocalIDs("250900"))
	assert.False(t, reg.Progress("250900")["6"].Earned)
	assert.Nil(t, reg.LocalIDs("other"))
	assert.Empty(t, reg.Progress("other"))
	assert.Equal(t, 0, reg.Count("other"))

	// A second registry reuses the remembered path without probing.
	fresh := NewRegistry(c, zap.NewNop())
	got, ok := fresh.Register("250900", "/does/not/exist")
	require.True(t, ok)
	assert.Equal(t, path, got)
	assert.Equal(t, map[string]string{"250900": path}, fresh.Paths())
}

func TestRegistry_StaleRememberedPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "achievements.ini", scenarioINI)
	c := cache.New(cache.Config{Enabled: true, Dir: t.TempDir()})

	_, ok := NewRegistry(c, nil).Register("1", dir)
	require.True(t, ok)
	require.NoError(t, os.Remove(path))

	_, ok = NewRegistry(c, nil).Register("1", dir)
	assert.False(t, ok)
	_, found := c.Get(cache.NamespaceLocalAchievements, "1")
	assert.False(t, found)
}

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "achievements.ini", scenarioINI)

	changed := make(chan string, 8)
	w, err := NewWatcher(func(titleID string) { changed <- titleID }, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	reg := NewRegistry(nil, nil)
	_, ok := reg.Register("250900", dir)
	require.True(t, ok)
	assert.Equal(t, 1, w.AddAll(reg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	writeFile(t, dir, "unrelated.txt", "x")
	require.NoError(t, os.WriteFile(path, []byte(scenarioINI+"\n[7]\nAchieved=1\n"), 0o644))

	select {
	case id := <-changed:
		assert.Equal(t, "250900", id)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcher_FollowsLaterRegistrations(t *testing.T) {
	changed := make(chan string, 8)
	w, err := NewWatcher(func(titleID string) { changed <- titleID }, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	reg := NewRegistry(nil, nil)
	assert.Equal(t, 0, w.Follow(reg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	dir := t.TempDir()
	path := writeFile(t, dir, "achievements.ini", scenarioINI)
	_, ok := reg.Register("620", dir)
	require.True(t, ok)

	require.NoError(t, os.WriteFile(path, []byte(scenarioINI+"\n[8]\nAchieved=1\n"), 0o644))

	select {
	case id := <-changed:
		assert.Equal(t, "620", id)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported for a file registered after Follow")
	}
}
