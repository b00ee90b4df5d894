package main

import (
	"fmt"

	"github.com/fwojciec/recipescrape"
)

// exportPageSize is the number of recipes read from storage at a time.
const exportPageSize = 100

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	store := deps.Store(c.Dir)

	filter := recipescrape.RecipeFilter{Limit: exportPageSize}
	if c.Owner != "" {
		filter.OwnerID = &c.Owner
	}

	n := 0
	for {
		recipes, err := deps.Recipes.FindRecipes(deps.Ctx, filter)
		if err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error: %s\n", recipescrape.ErrorMessage(err))
			return err
		}

		for _, r := range recipes {
			if err := store.Save(deps.Ctx, r); err != nil {
				_ = store.Abort()
				fmt.Fprintf(deps.Stderr, "error: %s: %v\n", r.SourceURL, err)
				return err
			}
			n++
		}

		if len(recipes) < exportPageSize {
			break
		}
		filter.Offset += exportPageSize
	}

	if err := store.Commit(); err != nil {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d recipes to %s\n", n, c.Dir)
	return nil
}
