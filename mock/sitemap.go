package mock

import (
	"context"

	"github.com/fwojciec/recipescrape"
)

var _ recipescrape.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of recipescrape.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, siteURL string, filter *recipescrape.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, siteURL string, filter *recipescrape.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, siteURL, filter)
}
