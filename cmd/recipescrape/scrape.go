package main

import (
	"fmt"

	"github.com/fwojciec/recipescrape"
	"github.com/fwojciec/recipescrape/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	result, err := deps.Scraper.Scrape(deps.Ctx, c.URL, scrape.Options{
		Refine:  c.Refine,
		Save:    c.Save,
		OwnerID: c.Owner,
	})
	if err != nil {
		if recipescrape.ErrorCode(err) == recipescrape.ECONFLICT {
			fmt.Fprintf(deps.Stderr, "error: %s. Use 'recipescrape list' to find it.\n", recipescrape.ErrorMessage(err))
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", recipescrape.ErrorMessage(err))
		}
		return err
	}

	if c.JSON {
		if result.Saved != nil {
			return printJSON(deps.Stdout, result.Saved)
		}
		return printJSON(deps.Stdout, result.Recipe)
	}

	printRecipe(deps.Stdout, result.Recipe)
	if result.Refined > 0 {
		fmt.Fprintf(deps.Stdout, "\nRefined %d ingredients\n", result.Refined)
	}
	if result.Saved != nil {
		fmt.Fprintf(deps.Stdout, "\nSaved recipe %s\n", result.Saved.ID)
	}
	return nil
}
