package recipescrape

import (
	"context"
	"regexp"
)

// SitemapService discovers recipe page URLs from a site's sitemaps.
type SitemapService interface {
	// DiscoverURLs lists the page URLs published in a site's sitemaps.
	// Sitemaps are located through robots.txt, falling back to /sitemap.xml;
	// sitemap indexes are followed recursively.
	//
	// A nil filter returns every URL.
	DiscoverURLs(ctx context.Context, siteURL string, filter *URLFilter) ([]string, error)
}

// URLFilter narrows a set of discovered URLs, typically to recipe pages.
type URLFilter struct {
	// Include keeps only URLs matching at least one pattern, when non-empty.
	Include []*regexp.Regexp

	// Exclude drops URLs matching any pattern. Applied after Include.
	Exclude []*regexp.Regexp
}

// Match reports whether the URL passes the filter. A nil filter passes everything.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 && !matchAny(f.Include, url) {
		return false
	}

	return !matchAny(f.Exclude, url)
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
