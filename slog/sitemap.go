package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/recipescrape"
)

// Ensure LoggingSitemapService implements recipescrape.SitemapService.
var _ recipescrape.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging.
type LoggingSitemapService struct {
	next   recipescrape.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next recipescrape.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs how many recipe
// URLs survived the filter.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, siteURL string, filter *recipescrape.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", siteURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		}
		if filter != nil {
			attrs = append(attrs, "include", len(filter.Include), "exclude", len(filter.Exclude))
		}
		s.logger.Info("sitemap discovery", attrs...)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, siteURL, filter)
}
