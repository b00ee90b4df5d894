// Package http implements recipe page fetching and sitemap discovery over
// plain HTTP. Pages are fetched as served; scripts are never executed.
package http

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/recipescrape"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize = 8 << 20

// DefaultUserAgent identifies the scraper to recipe sites. Several large
// recipe sites reject requests without a browser-like agent.
const DefaultUserAgent = "Mozilla/5.0 (compatible; recipescrape/1.0; +https://github.com/fwojciec/recipescrape)"

// Ensure Fetcher implements recipescrape.Fetcher at compile time.
var _ recipescrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves recipe pages with a single GET request per URL.
// Failed requests are reported, never retried.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize overrides DefaultMaxBodySize. Larger bodies are truncated.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML of the page at url.
//
// Transport failures and non-200 responses return EUNAVAILABLE; responses
// that are clearly not HTML return EINVALID. Context cancellation is
// returned as the context's error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", recipescrape.Errorf(recipescrape.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", recipescrape.Errorf(recipescrape.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", recipescrape.Errorf(recipescrape.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	if !isHTML(resp.Header.Get("Content-Type")) {
		return "", recipescrape.Errorf(recipescrape.EINVALID, "unsupported content type %q for %s", resp.Header.Get("Content-Type"), url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return "", recipescrape.Errorf(recipescrape.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// isHTML accepts HTML and XHTML content types, and a missing one.
func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return true
	}
	return strings.Contains(mediaType, "html") || mediaType == "text/plain"
}
