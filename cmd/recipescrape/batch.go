package main

import (
	"fmt"
	"regexp"

	"github.com/fwojciec/recipescrape"
	"github.com/fwojciec/recipescrape/bloom"
	"github.com/fwojciec/recipescrape/scrape"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	urls := c.URLs
	if c.Sitemap != "" {
		filter, err := compileFilter(c.Include, c.Exclude)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", recipescrape.ErrorMessage(err))
			return err
		}

		discovered, err := deps.Batch.Discover(deps.Ctx, c.Sitemap, filter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		if c.Limit > 0 && len(discovered) > c.Limit {
			discovered = discovered[:c.Limit]
		}
		fmt.Fprintf(deps.Stdout, "Found %d URLs in sitemap\n", len(discovered))
		urls = append(urls, discovered...)
	}

	if len(urls) == 0 {
		fmt.Fprintln(deps.Stderr, "error: give recipe URLs or --sitemap")
		return recipescrape.Errorf(recipescrape.EINVALID, "no URLs to scrape")
	}

	batch := deps.Batch
	if c.BloomAbove > 0 && len(urls) > c.BloomAbove && batch.Seen == nil {
		b := *batch
		b.Seen = bloom.NewFilter(uint(len(urls)), 0.001)
		batch = &b
	}

	result, err := batch.Run(deps.Ctx, urls, scrape.Options{
		Refine:  c.Refine,
		Save:    c.Save,
		OwnerID: c.Owner,
	}, func(e scrape.ProgressEvent) {
		switch e.Type {
		case scrape.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s\n", e.Completed, e.Total, scrape.TruncateURL(e.URL, 80))
		case scrape.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s (already saved)\n", e.Completed, e.Total, scrape.TruncateURL(e.URL, 80))
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s: %s\n", e.Completed, e.Total, scrape.TruncateURL(e.URL, 80), recipescrape.ErrorMessage(e.Error))
		}
	})
	if result != nil {
		fmt.Fprintf(deps.Stdout, "\nScraped %d recipes (%s)", result.Scraped, scrape.FormatBytes(result.Bytes))
		if c.Save {
			fmt.Fprintf(deps.Stdout, ", saved %d", result.Saved)
		}
		if result.Skipped > 0 {
			fmt.Fprintf(deps.Stdout, ", skipped %d", result.Skipped)
		}
		if result.Failed > 0 {
			fmt.Fprintf(deps.Stdout, ", failed %d", result.Failed)
		}
		fmt.Fprintln(deps.Stdout)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}

// compileFilter builds a URLFilter from include and exclude patterns. It
// returns nil when no patterns are given.
func compileFilter(include, exclude []string) (*recipescrape.URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}

	filter := &recipescrape.URLFilter{}
	for _, p := range include {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, recipescrape.Errorf(recipescrape.EINVALID, "invalid include pattern %q: %v", p, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, p := range exclude {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, recipescrape.Errorf(recipescrape.EINVALID, "invalid exclude pattern %q: %v", p, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}
