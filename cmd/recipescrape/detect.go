package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/recipescrape"
)

// Run executes the detect command.
func (c *DetectCmd) Run(deps *Dependencies) error {
	html, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	format := deps.Detector.Detect(string(html))
	if format == recipescrape.FormatUnknown {
		fmt.Fprintln(deps.Stdout, "unknown")
		return nil
	}

	fmt.Fprintln(deps.Stdout, format)
	return nil
}
