package http

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/recipescrape"
)

// Ensure SitemapService implements recipescrape.SitemapService.
var _ recipescrape.SitemapService = (*SitemapService)(nil)

// fallbackSitemapPaths are tried in order when robots.txt names no sitemap.
// WordPress, which most recipe blogs run on, serves one of the latter two.
var fallbackSitemapPaths = []string{"/sitemap.xml", "/sitemap_index.xml", "/wp-sitemap.xml"}

// SitemapService discovers recipe page URLs from a site's XML sitemaps.
type SitemapService struct {
	client  *http.Client
	maxURLs int
}

// SitemapOption configures a SitemapService.
type SitemapOption func(*SitemapService)

// WithMaxURLs stops discovery once n URLs have been collected. Zero means
// no limit.
func WithMaxURLs(n int) SitemapOption {
	return func(s *SitemapService) {
		s.maxURLs = n
	}
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client, opts ...SitemapOption) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	s := &SitemapService{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DiscoverURLs returns the page URLs listed in a site's sitemaps, in
// sitemap order without duplicates. Returns an empty slice (not nil) if the
// site has no sitemap.
//
// When siteURL has a non-root path (e.g., https://example.com/recipes/),
// only URLs under that path are returned. Child sitemaps of an index that
// fail to load are skipped.
func (s *SitemapService) DiscoverURLs(ctx context.Context, siteURL string, filter *recipescrape.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	site, err := url.Parse(siteURL)
	if err != nil || site.Host == "" {
		return nil, recipescrape.Errorf(recipescrape.EINVALID, "invalid site URL %q", siteURL)
	}

	prefix := strings.TrimSuffix(site.Path, "/")
	root := &url.URL{Scheme: site.Scheme, Host: site.Host}

	sitemaps, err := s.locateSitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	w := &sitemapWalker{
		svc:      s,
		seenMaps: make(map[string]bool),
		seenURLs: make(map[string]bool),
		keep: func(u string) bool {
			return underPath(u, prefix) && filter.Match(u)
		},
		urls: []string{},
	}
	for _, sm := range sitemaps {
		if err := w.walk(ctx, sm, 0); err != nil {
			return nil, err
		}
		if w.full() {
			break
		}
	}

	return w.urls, nil
}

// locateSitemaps reads Sitemap: directives from robots.txt, falling back
// to well-known sitemap paths.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if sitemaps, err := s.robotsSitemaps(ctx, robots); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, path := range fallbackSitemapPaths {
		candidate := root.ResolveReference(&url.URL{Path: path}).String()
		ok, err := s.exists(ctx, candidate)
		if err != nil && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if ok {
			return []string{candidate}, nil
		}
	}
	return nil, nil
}

func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "sitemap") {
			continue
		}
		if loc := strings.TrimSpace(value); loc != "" {
			sitemaps = append(sitemaps, loc)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, recipescrape.Errorf(recipescrape.EUNAVAILABLE, "reading robots.txt: %v", err)
	}
	return sitemaps, nil
}

// maxSitemapDepth bounds sitemap index nesting.
const maxSitemapDepth = 5

// sitemapWalker collects URLs across a tree of sitemaps and indexes.
type sitemapWalker struct {
	svc      *SitemapService
	seenMaps map[string]bool
	seenURLs map[string]bool
	keep     func(string) bool
	urls     []string
}

func (w *sitemapWalker) full() bool {
	return w.svc.maxURLs > 0 && len(w.urls) >= w.svc.maxURLs
}

// walk loads one sitemap. Errors loading nested sitemaps (depth > 0) are
// swallowed so one broken child does not lose the rest of the site.
func (w *sitemapWalker) walk(ctx context.Context, sitemapURL string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.seenMaps[sitemapURL] || depth > maxSitemapDepth || w.full() {
		return nil
	}
	w.seenMaps[sitemapURL] = true

	root, err := w.svc.load(ctx, sitemapURL)
	if err != nil {
		if depth > 0 && ctx.Err() == nil {
			return nil
		}
		return err
	}

	if root.Tag == "sitemapindex" {
		for _, loc := range locs(root, "sitemap") {
			if err := w.walk(ctx, loc, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, loc := range locs(root, "url") {
		if w.full() {
			break
		}
		if w.seenURLs[loc] || !w.keep(loc) {
			continue
		}
		w.seenURLs[loc] = true
		w.urls = append(w.urls, loc)
	}
	return nil
}

// load fetches and parses a sitemap, transparently gunzipping it.
func (s *SitemapService) load(ctx context.Context, sitemapURL string) (*etree.Element, error) {
	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, recipescrape.Errorf(recipescrape.EUNAVAILABLE, "reading sitemap %s: %v", sitemapURL, err)
	}
	if bytes.HasPrefix(data, []byte{0x1f, 0x8b}) {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, recipescrape.Errorf(recipescrape.EINVALID, "sitemap %s: %v", sitemapURL, err)
		}
		defer zr.Close()
		if data, err = io.ReadAll(zr); err != nil {
			return nil, recipescrape.Errorf(recipescrape.EINVALID, "sitemap %s: %v", sitemapURL, err)
		}
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, recipescrape.Errorf(recipescrape.EINVALID, "parsing sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, recipescrape.Errorf(recipescrape.EINVALID, "empty sitemap %s", sitemapURL)
	}
	return root, nil
}

// locs returns the trimmed <loc> text of each child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// underPath reports whether rawURL's path is prefix or below it.
func underPath(rawURL, prefix string) bool {
	if prefix == "" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Path == prefix || strings.HasPrefix(u.Path, prefix+"/")
}

func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, recipescrape.Errorf(recipescrape.EINVALID, "invalid URL %q: %v", target, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, recipescrape.Errorf(recipescrape.EUNAVAILABLE, "fetch %s: %v", target, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, recipescrape.Errorf(recipescrape.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}

func (s *SitemapService) exists(ctx context.Context, target string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
