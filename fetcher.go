package recipescrape

import "context"

// Fetcher retrieves the HTML of a recipe page.
type Fetcher interface {
	// Fetch returns the page body for the URL.
	// Transport failures and non-200 responses are returned as errors;
	// implementations never retry.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
