package titles

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"achievement-tracker/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func mkdirs(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(p, 0o755))
	}
}

func testLocations(t *testing.T) (Config, string) {
	t.Helper()
	root := t.TempDir()
	first := filepath.Join(root, "first")
	second := filepath.Join(root, "second")

	mkdirs(t,
		filepath.Join(first, "CODEX", "250900"),
		filepath.Join(first, "CODEX", "not-a-title"),
		filepath.Join(first, "RUNE", "620"),
		filepath.Join(second, "EMPRESS", "250900"),
		filepath.Join(second, "EMPRESS", "440"),
	)
	require.NoError(t, os.WriteFile(filepath.Join(first, "CODEX", "123"), []byte("file"), 0o644))

	return Config{Locations: []Location{
		{Name: "first", BasePath: first, Teams: []string{"CODEX", "RUNE", "MISSING"}},
		{Name: "second", BasePath: second, Teams: []string{"EMPRESS"}},
		{Name: "absent", BasePath: filepath.Join(root, "absent"), Teams: []string{"CODEX"}},
	}}, root
}

func TestDirScanner_Scan(t *testing.T) {
	cfg, root := testLocations(t)

	found, err := NewDirScanner(cfg, zap.NewNop()).Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, found, 3)

	assert.Equal(t, Title{
		ID:          "250900",
		InstallPath: filepath.Join(root, "first", "CODEX", "250900"),
		Team:        "CODEX",
		Location:    "first",
	}, found[0])
	assert.Equal(t, "620", found[1].ID)
	assert.Equal(t, "440", found[2].ID)
	assert.Equal(t, "EMPRESS", found[2].Team)
}

func TestDirScanner_CanceledContext(t *testing.T) {
	cfg, _ := testLocations(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDirScanner(cfg, nil).Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfig_Normalize(t *testing.T) {
	var cfg Config
	cfg.Normalize()
	assert.Len(t, cfg.Locations, len(DefaultLocations()))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	cfg = Config{Locations: []Location{{Name: "x", BasePath: "~/games"}}}
	cfg.Normalize()
	assert.Equal(t, filepath.Join(home, "games"), cfg.Locations[0].BasePath)
}

func newSQLiteRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	repo := NewRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func TestRepository_SaveAllUpserts(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveAll(ctx, []Title{
		{ID: "620", Name: "Portal 2", InstallPath: "/g/620", Team: "CODEX", Location: "a"},
		{ID: "250900", Name: "Game 250900", InstallPath: "/g/250900", Team: "RUNE", Location: "a"},
	}, map[string]string{"250900": "/g/250900/achievements.ini"}))

	require.NoError(t, repo.SaveAll(ctx, []Title{
		{ID: "250900", Name: "The Binding of Isaac: Rebirth", InstallPath: "/g/250900", Team: "RUNE", Location: "a"},
	}, nil))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "250900", records[0].ID)
	assert.Equal(t, "The Binding of Isaac: Rebirth", records[0].Name)
	assert.Equal(t, "620", records[1].ID)

	names, err := repo.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Portal 2", names["620"])

	missing, err := repo.CheckSchema()
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestRepository_Disabled(t *testing.T) {
	repo := NewRepository(nil)
	ctx := context.Background()

	assert.False(t, repo.Enabled())
	assert.NoError(t, repo.Migrate(ctx))
	assert.NoError(t, repo.SaveAll(ctx, []Title{{ID: "1"}}, nil))
	records, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Nil(t, records)
	_, err = repo.CheckSchema()
	assert.ErrorIs(t, err, ErrNoDatabase)
}

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dialector := mysql.New(mysql.Config{Conn: db, SkipInitializeWithVersion: true})
	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)
	return NewRepository(gormDB), mock
}

func TestRepository_CheckSchemaMySQL(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "varchar(32)", "NO", "PRI", nil, "").
		AddRow("name", "varchar(255)", "YES", "", nil, "").
		AddRow("install_path", "varchar(1024)", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `titles`").WillReturnRows(rows)

	missing, err := repo.CheckSchema()
	require.NoError(t, err)
	assert.Equal(t, []string{"team", "location", "progress_path", "updated_at"}, missing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListErrorMySQL(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `titles` ORDER BY id")).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.List(context.Background())
	assert.ErrorContains(t, err, "failed to list titles")
	assert.NoError(t, mock.ExpectationsWereMet())
}

type mockNames struct {
	mock.Mock
}

func (m *mockNames) Name(ctx context.Context, titleID string) (string, error) {
	args := m.Called(ctx, titleID)
	return args.String(0), args.Error(1)
}

type stubRegistrar map[string]string

func (s stubRegistrar) Register(titleID, _ string) (string, bool) {
	p, ok := s[titleID]
	return p, ok
}

func TestLibrary_Refresh(t *testing.T) {
	cfg, _ := testLocations(t)
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SaveAll(ctx, []Title{{ID: "440", Name: "Team Fortress 2"}}, nil))

	names := new(mockNames)
	names.On("Name", mock.Anything, "250900").Return("The Binding of Isaac: Rebirth", nil)
	names.On("Name", mock.Anything, "620").Return("", errors.New("offline"))
	names.On("Name", mock.Anything, "440").Return("", errors.New("offline"))

	lib := NewLibrary(NewDirScanner(cfg, nil), names, stubRegistrar{"250900": "/p/achievements.ini"}, repo, zap.NewNop())

	found, err := lib.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, found, 3)

	got, ok := lib.Get("250900")
	require.True(t, ok)
	assert.Equal(t, "The Binding of Isaac: Rebirth", got.Name)

	got, _ = lib.Get("620")
	assert.Equal(t, "Game 620", got.Name)
	got, _ = lib.Get("440")
	assert.Equal(t, "Team Fortress 2", got.Name)

	_, ok = lib.Get("999")
	assert.False(t, ok)
	assert.Len(t, lib.Titles(), 3)

	records, err := repo.List(ctx)
	require.NoError(t, err)
	for _, rec := range records {
		if rec.ID == "250900" {
			assert.Equal(t, "/p/achievements.ini", rec.ProgressPath)
		}
	}
	names.AssertExpectations(t)
}

type failingScanner struct{}

func (failingScanner) Scan(context.Context) ([]Title, error) {
	return nil, errors.New("disk gone")
}

func TestLibrary_RefreshScanError(t *testing.T) {
	lib := NewLibrary(failingScanner{}, nil, nil, NewRepository(nil), nil)

	_, err := lib.Refresh(context.Background())
	assert.Error(t, err)
	assert.Empty(t, lib.Titles())
}
