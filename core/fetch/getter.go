package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Response is the outcome of a single GET.
type Response struct {
	// Status is the HTTP status code.
	Status int
	// Body is the fully read response body.
	Body []byte
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Getter performs a single GET with a per-request timeout. Transport failures
// (connect, timeout, body read) are returned as errors; any HTTP status is a
// successful Get.
type Getter interface {
	Get(ctx context.Context, rawURL string, params url.Values, timeout time.Duration) (*Response, error)
}

// HTTPGetter is the default Getter backed by net/http.
type HTTPGetter struct {
	Client    *http.Client
	UserAgent string
}

// NewHTTPGetter returns a Getter using a dedicated http.Client.
func NewHTTPGetter() *HTTPGetter {
	return &HTTPGetter{
		Client:    &http.Client{},
		UserAgent: "achievement-tracker/1.0",
	}
}

// Get implements Getter.
func (g *HTTPGetter) Get(ctx context.Context, rawURL string, params url.Values, timeout time.Duration) (*Response, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	target := rawURL
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		target = rawURL + sep + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if g.UserAgent != "" {
		req.Header.Set("User-Agent", g.UserAgent)
	}

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{Status: resp.StatusCode, Body: body}, nil
}
