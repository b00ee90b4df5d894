package main

import (
	"fmt"

	"github.com/fwojciec/recipescrape"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	recipe, err := deps.Recipes.FindRecipeByID(deps.Ctx, c.ID)
	if err != nil {
		if recipescrape.ErrorCode(err) == recipescrape.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: recipe %q not found. Use 'recipescrape list' to see saved recipes.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", recipescrape.ErrorMessage(err))
		}
		return err
	}

	if c.JSON {
		return printJSON(deps.Stdout, recipe)
	}

	printRecipe(deps.Stdout, &recipe.ScrapedRecipe)
	fmt.Fprintf(deps.Stdout, "\nSource: %s\nSaved:  %s\n", recipe.SourceURL, recipe.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}
