package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/recipescrape"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	html, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	sourceURL := c.URL
	if sourceURL == "" {
		sourceURL = c.File
	}

	rec, format, err := deps.Extractor.ExtractFormat(string(html), sourceURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipescrape.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return printJSON(deps.Stdout, rec)
	}

	printRecipe(deps.Stdout, rec)
	fmt.Fprintf(deps.Stdout, "\nFormat: %s\n", format)
	return nil
}
