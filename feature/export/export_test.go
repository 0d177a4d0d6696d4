package export

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"achievement-tracker/core/errs"
	"achievement-tracker/core/reconcile"
	"achievement-tracker/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCatalogs map[string]*reconcile.Catalog

func (s stubCatalogs) GetBestAchievements(_ context.Context, titleID, _ string) *reconcile.Catalog {
	if cat, ok := s[titleID]; ok {
		return cat
	}
	return reconcile.NewCatalog(titleID)
}

func (s stubCatalogs) Strategy(string) reconcile.Strategy {
	return reconcile.StrategyFree
}

func catalogs() stubCatalogs {
	cat := reconcile.NewCatalog("250900")
	cat.Put(reconcile.Record{ID: "5", DisplayName: "5", Source: reconcile.SourceLocalFile})
	cat.Put(reconcile.Record{ID: "ACH_WIN", DisplayName: "Win", Percentage: 60, Source: reconcile.SourceSecondaryScrape})
	return stubCatalogs{"250900": cat}
}

func TestService_ExportToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	svc := NewService(catalogs(), NewFileSink(dir), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	result, err := svc.Export(context.Background(), "250900")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "250900_achievements.json"), result.Location)
	assert.Equal(t, 2, result.Records)

	data, err := os.ReadFile(result.Location)
	require.NoError(t, err)
	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "250900", doc.AppID)
	assert.Equal(t, reconcile.StrategyFree, doc.Strategy)
	assert.Equal(t, 2, doc.Total)
	assert.Equal(t, "ACH_WIN", doc.Records[1].ID)
	assert.Equal(t, 1, doc.RarityBreakdown[reconcile.RarityCommon])

	names, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"250900_achievements.json"}, names)
}

func TestService_ExportNotFound(t *testing.T) {
	svc := NewService(catalogs(), NewFileSink(t.TempDir()), nil)

	_, err := svc.Export(context.Background(), "1")
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestFileSink_ListMissingDir(t *testing.T) {
	names, err := NewFileSink(filepath.Join(t.TempDir(), "none")).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestBucketSink_Write(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("BucketExists", ctx, "achievements").Return(false, nil)
	client.On("MakeBucket", ctx, "achievements", minio.MakeBucketOptions{Region: "eu"}).Return(nil)
	client.On("PutObject", ctx, "achievements", "250900_achievements.json", mock.Anything, int64(7),
		minio.PutObjectOptions{ContentType: "application/json"}).Return(minio.UploadInfo{}, nil)

	location, err := NewBucketSink(client, "achievements", "eu").Write(ctx, "250900_achievements.json", []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, "achievements/250900_achievements.json", location)
	client.AssertExpectations(t)
}

func TestBucketSink_WriteFailure(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("BucketExists", ctx, "achievements").Return(false, errors.New("unreachable"))

	_, err := NewBucketSink(client, "achievements", "").Write(ctx, "x.json", []byte(`{}`))
	assert.ErrorContains(t, err, "unreachable")
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBucketSink_List(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("ListObjects", ctx, "achievements", minio.ListObjectsOptions{Recursive: true}).Return(
		func(context.Context, string, minio.ListObjectsOptions) <-chan minio.ObjectInfo {
			ch := make(chan minio.ObjectInfo, 2)
			ch <- minio.ObjectInfo{Key: "620_achievements.json"}
			ch <- minio.ObjectInfo{Key: "250900_achievements.json"}
			close(ch)
			return ch
		})

	names, err := NewBucketSink(client, "achievements", "").List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"250900_achievements.json", "620_achievements.json"}, names)
}

func TestHandleExport(t *testing.T) {
	feature := NewFeature(catalogs(), NewFileSink(t.TempDir()), zap.NewNop())
	assert.Equal(t, "export", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"Exported", "POST", "/api/games/250900/export", fiber.StatusOK},
		{"NoData", "POST", "/api/games/1/export", fiber.StatusNotFound},
		{"InvalidID", "POST", "/api/games/abc/export", fiber.StatusBadRequest},
		{"List", "GET", "/api/exports", fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			var out map[string]any
			require.NoError(t, json.Unmarshal(body, &out))
			assert.Equal(t, tt.status == fiber.StatusOK, out["success"])
		})
	}
}
