package scrape

import (
	"context"
	"time"

	"github.com/fwojciec/recipescrape"
)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// fetchWithRetry fetches a URL, retrying after each delay while the
// fetcher reports the page as unavailable. Invalid URLs and non-HTML
// responses are not retried.
func fetchWithRetry(ctx context.Context, f recipescrape.Fetcher, url string, delays []time.Duration, logf LogFunc) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		html, err := f.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt == len(delays) || recipescrape.ErrorCode(err) != recipescrape.EUNAVAILABLE {
			break
		}

		if logf != nil {
			logf("retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
