package main

import (
	"fmt"

	"github.com/fwojciec/recipescrape"
	"github.com/fwojciec/recipescrape/scrape"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := recipescrape.RecipeFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Owner != "" {
		filter.OwnerID = &c.Owner
	}

	recipes, err := deps.Recipes.FindRecipes(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipescrape.ErrorMessage(err))
		return err
	}

	if len(recipes) == 0 {
		fmt.Fprintln(deps.Stdout, "No recipes found. Use 'recipescrape scrape --save' to add one.")
		return nil
	}

	for _, r := range recipes {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", r.ID, r.Title, scrape.TruncateURL(r.SourceURL, 60))
	}

	return nil
}
