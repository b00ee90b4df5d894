package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/fwojciec/recipescrape"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages a batch scrapes at once.
const DefaultConcurrency = 4

// Batch scrapes many recipe pages concurrently. Failures of single pages
// are reported through the progress callback and never abort the batch.
type Batch struct {
	Service  *Service
	Sitemaps recipescrape.SitemapService

	// Limiter spaces requests to the same domain. Nil means no limit.
	Limiter recipescrape.DomainLimiter

	// Seen suppresses duplicate URLs. Nil means an exact set that only spans
	// one Run; set a bloom.Filter to share one across runs or to bound memory
	// on very large batches at the cost of rare false skips.
	Seen recipescrape.URLSet

	Concurrency int
}

// BatchResult holds the outcome of a batch.
type BatchResult struct {
	Scraped int
	Saved   int
	Failed  int
	Skipped int
	Bytes   int

	// Results holds the successful pages in input order.
	Results []*Result
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress. It is never
// called concurrently.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	position int
	url      string
	result   *Result
	err      error
}

// Discover lists recipe page URLs from a site's sitemaps.
func (b *Batch) Discover(ctx context.Context, siteURL string, filter *recipescrape.URLFilter) ([]string, error) {
	if b.Sitemaps == nil {
		return nil, recipescrape.Errorf(recipescrape.EINTERNAL, "sitemap service not configured")
	}
	urls, err := b.Sitemaps.DiscoverURLs(ctx, siteURL, filter)
	if err != nil {
		return nil, fmt.Errorf("sitemap discovery: %w", err)
	}
	return urls, nil
}

// Run scrapes every URL once. URLs differing only by fragment are
// duplicates, as are URLs already saved for the owner. It returns an
// error only when ctx is canceled, along with the partial result.
func (b *Batch) Run(ctx context.Context, urls []string, opts Options, progress ProgressFunc) (*BatchResult, error) {
	notify := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}

	seen := b.Seen
	if seen == nil {
		seen = make(urlSet, len(urls))
	}

	result := &BatchResult{}
	var queue []string
	for _, u := range urls {
		u = stripFragment(strings.TrimSpace(u))
		if u == "" {
			continue
		}
		if seen.TestAndAdd(u) {
			result.Skipped++
			continue
		}
		queue = append(queue, u)
	}

	total := len(queue)
	notify(ProgressEvent{Type: ProgressStarted, Total: total})

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan pageResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range queue {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				resultCh <- b.process(gctx, i, u, opts)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]*Result, total)
	var completed atomic.Int64
	for pr := range resultCh {
		done := int(completed.Add(1))

		switch {
		case pr.err == nil:
			results[pr.position] = pr.result
			result.Scraped++
			result.Bytes += pr.result.Bytes
			if pr.result.Saved != nil {
				result.Saved++
			}
			notify(ProgressEvent{Type: ProgressCompleted, Completed: done, Total: total, URL: pr.url})
		case recipescrape.ErrorCode(pr.err) == recipescrape.ECONFLICT:
			result.Skipped++
			notify(ProgressEvent{Type: ProgressSkipped, Completed: done, Total: total, URL: pr.url, Error: pr.err})
		default:
			result.Failed++
			notify(ProgressEvent{Type: ProgressFailed, Completed: done, Total: total, URL: pr.url, Error: pr.err})
		}
	}

	for _, r := range results {
		if r != nil {
			result.Results = append(result.Results, r)
		}
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: int(completed.Load()), Total: total})

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

func (b *Batch) process(ctx context.Context, position int, rawURL string, opts Options) pageResult {
	pr := pageResult{position: position, url: rawURL}

	if b.Limiter != nil {
		if err := b.Limiter.Wait(ctx, hostOf(rawURL)); err != nil {
			pr.err = err
			return pr
		}
	}

	pr.result, pr.err = b.Service.Scrape(ctx, rawURL, opts)
	return pr
}

func stripFragment(rawURL string) string {
	if idx := strings.Index(rawURL, "#"); idx != -1 {
		return rawURL[:idx]
	}
	return rawURL
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
