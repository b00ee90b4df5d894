// Package scrape orchestrates recipe scraping. It coordinates fetching,
// extraction, optional ingredient refinement and storage of recipes, for
// single pages and for batches discovered from sitemaps.
package scrape

import (
	"context"
	"net/url"
	"time"

	"github.com/fwojciec/recipescrape"
)

// Service scrapes single recipe pages.
//
// Fetcher and Extractor are required. Normalizer and Recipes are only
// used when Options ask for refinement or saving.
type Service struct {
	Fetcher     recipescrape.Fetcher
	Extractor   recipescrape.RecipeExtractor
	Normalizer  recipescrape.IngredientNormalizer
	Recipes     recipescrape.RecipeService
	RetryDelays []time.Duration
	Logf        LogFunc
}

// Options controls what Scrape does after extraction.
type Options struct {
	// Refine sends ambiguous ingredient lines to the Normalizer.
	Refine bool

	// Save stores the recipe for OwnerID.
	Save    bool
	OwnerID string
}

// Result holds the outcome of scraping one page.
type Result struct {
	URL     string
	Bytes   int
	Recipe  *recipescrape.ScrapedRecipe
	Refined int

	// Saved is the stored recipe when Options.Save was set.
	Saved *recipescrape.Recipe
}

// Scrape fetches a page and extracts its recipe. Fetch failures and
// storage failures are returned as errors; a page without recipe markup
// still yields a record with placeholders. Refinement failures are logged
// and the parsed ingredients are kept.
func (s *Service) Scrape(ctx context.Context, rawURL string, opts Options) (*Result, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}
	if opts.Save && s.Recipes == nil {
		return nil, recipescrape.Errorf(recipescrape.EINTERNAL, "recipe storage not configured")
	}

	html, err := fetchWithRetry(ctx, s.Fetcher, rawURL, s.RetryDelays, s.Logf)
	if err != nil {
		return nil, err
	}

	rec, err := s.Extractor.Extract(html, rawURL)
	if err != nil {
		return nil, err
	}

	result := &Result{URL: rawURL, Bytes: len(html), Recipe: rec}

	if opts.Refine && s.Normalizer != nil {
		n, err := recipescrape.Refine(ctx, s.Normalizer, rec)
		if err != nil {
			s.logf("refine %s: %v", rawURL, err)
		}
		result.Refined = n
	}

	if opts.Save {
		saved := &recipescrape.Recipe{
			OwnerID:       opts.OwnerID,
			SourceURL:     rawURL,
			ScrapedRecipe: *rec,
		}
		if err := s.Recipes.CreateRecipe(ctx, saved); err != nil {
			return result, err
		}
		result.Saved = saved
	}

	return result, nil
}

func (s *Service) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	}
}

// validateURL accepts absolute http and https URLs only.
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return recipescrape.Errorf(recipescrape.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return recipescrape.Errorf(recipescrape.EINVALID, "invalid URL %q: must be an absolute http(s) URL", rawURL)
	}
	return nil
}
