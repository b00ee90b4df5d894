package recipescrape

import "context"

// DomainLimiter provides per-domain rate limiting for batch scraping.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// URLSet records which URLs a batch has already taken.
type URLSet interface {
	// TestAndAdd adds the URL and reports whether it was already present.
	// False positives are allowed; false negatives are not.
	TestAndAdd(url string) bool
}
