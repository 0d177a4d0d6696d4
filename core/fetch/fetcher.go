package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"

	"achievement-tracker/core/cache"
	"achievement-tracker/core/errs"
	"achievement-tracker/core/logger"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// redactedParams are query parameters never written to logs.
var redactedParams = []string{"key"}

// Fetcher performs cache-first, retry-bounded GETs against remote JSON APIs.
type Fetcher struct {
	getter Getter
	cache  *cache.Cache
	cfg    Config
	logger *zap.Logger
	group  singleflight.Group
}

// New creates a Fetcher. c may be nil, which disables request caching.
func New(getter Getter, c *cache.Cache, cfg Config, log *zap.Logger) *Fetcher {
	cfg.normalize()
	if getter == nil {
		getter = NewHTTPGetter()
	}
	return &Fetcher{
		getter: getter,
		cache:  c,
		cfg:    cfg,
		logger: logger.Component(log, "fetch"),
	}
}

// RequestKey returns the cache key of a request: the hex SHA-256 of the URL
// followed by its parameters in sorted key order.
func RequestKey(rawURL string, params url.Values) string {
	sum := sha256.Sum256([]byte(rawURL + "?" + params.Encode()))
	return hex.EncodeToString(sum[:])
}

// FetchJSON returns the JSON body of a GET, served from the api_requests
// namespace when a valid entry exists.
func (f *Fetcher) FetchJSON(ctx context.Context, rawURL string, params url.Values) (json.RawMessage, error) {
	key := RequestKey(rawURL, params)

	if f.cache != nil {
		if data, ok := f.cache.Get(cache.NamespaceRequests, key); ok {
			if f.cfg.ShowCalls {
				f.logger.Info("API cache hit", zap.String("url", rawURL))
			}
			return json.RawMessage(data), nil
		}
	}

	v, err, _ := f.group.Do(key, func() (any, error) {
		body, err := f.get(ctx, rawURL, params)
		if err != nil {
			return nil, err
		}
		if !json.Valid(body) {
			return nil, errs.Ef(errs.KindRemoteDecode, "fetch json", "response from %s is not valid JSON", rawURL)
		}
		if f.cache != nil {
			f.cache.Set(cache.NamespaceRequests, key, json.RawMessage(body), f.cfg.RequestTTL)
		}
		return json.RawMessage(body), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(json.RawMessage), nil
}

// Fetch is FetchJSON decoding the body into v.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, params url.Values, v any) error {
	body, err := f.FetchJSON(ctx, rawURL, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errs.E(errs.KindRemoteDecode, "decode "+rawURL, err)
	}
	return nil
}

// FetchRaw performs the retried GET without caching or decoding.
func (f *Fetcher) FetchRaw(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	return f.get(ctx, rawURL, params)
}

func (f *Fetcher) get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.cfg.InitialBackoff

	attempt := 0
	op := func() ([]byte, error) {
		attempt++
		if f.cfg.ShowCalls {
			f.logger.Info("API call",
				zap.String("url", rawURL),
				zap.String("params", redact(params)),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", f.cfg.MaxRetries))
		}

		resp, err := f.getter.Get(ctx, rawURL, params, f.cfg.Timeout)
		if err != nil {
			f.logger.Debug("Request attempt failed",
				zap.String("url", rawURL), zap.Int("attempt", attempt), zap.Error(err))
			return nil, errs.E(errs.KindRemoteTransport, "get "+rawURL, err)
		}
		if !resp.OK() {
			return nil, backoff.Permanent(errs.Ef(errs.KindRemoteStatus, "get "+rawURL, "unexpected status %d", resp.Status))
		}
		return resp.Body, nil
	}

	body, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(f.cfg.MaxRetries)))
	if err != nil {
		if !errs.Retryable(err) && errs.KindOf(err) == errs.KindInternal {
			err = errs.E(errs.KindRemoteTransport, "get "+rawURL, err)
		}
		return nil, err
	}
	return body, nil
}

func redact(params url.Values) string {
	if len(params) == 0 {
		return ""
	}
	clean := make(url.Values, len(params))
	for k, v := range params {
		clean[k] = v
	}
	for _, k := range redactedParams {
		if clean.Has(k) {
			clean.Set(k, "***")
		}
	}
	return clean.Encode()
}
