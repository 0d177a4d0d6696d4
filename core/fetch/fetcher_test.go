package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"achievement-tracker/core/cache"
	"achievement-tracker/core/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubGetter struct {
	calls     atomic.Int32
	failFirst int32
	status    int
	body      string
}

func (s *stubGetter) Get(ctx context.Context, rawURL string, params url.Values, timeout time.Duration) (*Response, error) {
	n := s.calls.Add(1)
	if n <= s.failFirst {
		return nil, errors.New("connection reset")
	}
	return &Response{Status: s.status, Body: []byte(s.body)}, nil
}

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	return cache.New(cache.Config{Enabled: true, Dir: t.TempDir()})
}

func testConfig() Config {
	return Config{MaxRetries: 3, InitialBackoff: time.Millisecond, Timeout: time.Second}
}

func TestRequestKey_CanonicalOrdering(t *testing.T) {
	a := url.Values{}
	a.Set("appid", "10")
	a.Set("key", "k")
	a.Set("l", "fr")

	b := url.Values{}
	b.Set("l", "fr")
	b.Set("key", "k")
	b.Set("appid", "10")

	assert.Equal(t, RequestKey("https://api/x", a), RequestKey("https://api/x", b))
	assert.NotEqual(t, RequestKey("https://api/x", a), RequestKey("https://api/y", a))
	assert.Len(t, RequestKey("https://api/x", a), 64)
}

func TestFetchJSON_CachesSuccess(t *testing.T) {
	getter := &stubGetter{status: 200, body: `{"ok":true}`}
	f := New(getter, newTestCache(t), testConfig(), zap.NewNop())

	body, err := f.FetchJSON(context.Background(), "https://api/x", url.Values{"a": {"1"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))

	body, err = f.FetchJSON(context.Background(), "https://api/x", url.Values{"a": {"1"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, int32(1), getter.calls.Load(), "second call must be served from cache")
}

func TestFetchJSON_RetriesTransportErrors(t *testing.T) {
	getter := &stubGetter{failFirst: 2, status: 200, body: `[1,2]`}
	f := New(getter, nil, testConfig(), zap.NewNop())

	body, err := f.FetchJSON(context.Background(), "https://api/x", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(body))
	assert.Equal(t, int32(3), getter.calls.Load())
}

func TestFetchJSON_GivesUpAfterMaxRetries(t *testing.T) {
	getter := &stubGetter{failFirst: 100}
	f := New(getter, nil, testConfig(), zap.NewNop())

	_, err := f.FetchJSON(context.Background(), "https://api/x", nil)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindRemoteTransport))
	assert.Equal(t, int32(3), getter.calls.Load())
}

func TestFetchJSON_StatusIsNotRetried(t *testing.T) {
	getter := &stubGetter{status: 404, body: `{}`}
	c := newTestCache(t)
	f := New(getter, c, testConfig(), zap.NewNop())

	_, err := f.FetchJSON(context.Background(), "https://api/x", nil)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindRemoteStatus))
	assert.Equal(t, int32(1), getter.calls.Load())
	assert.Equal(t, 0, c.Stats().TotalFiles)
}

func TestFetchJSON_InvalidJSON(t *testing.T) {
	getter := &stubGetter{status: 200, body: `<html>`}
	c := newTestCache(t)
	f := New(getter, c, testConfig(), zap.NewNop())

	_, err := f.FetchJSON(context.Background(), "https://api/x", nil)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindRemoteDecode))
	assert.Equal(t, 0, c.Stats().TotalFiles)
}

func TestFetch_Decodes(t *testing.T) {
	getter := &stubGetter{status: 200, body: `{"name":"x","count":2}`}
	f := New(getter, nil, testConfig(), zap.NewNop())

	var out struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, f.Fetch(context.Background(), "https://api/x", nil, &out))
	assert.Equal(t, "x", out.Name)
	assert.Equal(t, 2, out.Count)

	var wrong []int
	err := f.Fetch(context.Background(), "https://api/x", nil, &wrong)
	assert.True(t, errs.Is(err, errs.KindRemoteDecode))
}

func TestHTTPGetter_AgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("appid"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"appid":10}`))
	}))
	defer srv.Close()

	f := New(NewHTTPGetter(), newTestCache(t), testConfig(), zap.NewNop())
	body, err := f.FetchJSON(context.Background(), srv.URL+"/path", url.Values{"appid": {"10"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"appid":10}`, string(body))
}

func TestHTTPGetter_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Timeout = 20 * time.Millisecond
	cfg.MaxRetries = 2
	f := New(NewHTTPGetter(), nil, cfg, zap.NewNop())

	_, err := f.FetchRaw(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindRemoteTransport))
}

func TestRedact(t *testing.T) {
	params := url.Values{"key": {"secret"}, "appid": {"10"}}
	out := redact(params)
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "appid=10")
	assert.Equal(t, "secret", params.Get("key"))
}
