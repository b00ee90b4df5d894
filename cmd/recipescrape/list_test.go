package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/recipescrape"
	main "github.com/fwojciec/recipescrape/cmd/recipescrape"
	"github.com/fwojciec/recipescrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists recipes with ID, title, and URL", func(t *testing.T) {
		t.Parallel()

		var gotFilter recipescrape.RecipeFilter
		recipes := &mock.RecipeService{
			FindRecipesFn: func(_ context.Context, filter recipescrape.RecipeFilter) ([]*recipescrape.Recipe, error) {
				gotFilter = filter
				return []*recipescrape.Recipe{
					{ID: "r-1", SourceURL: "https://example.com/stew", ScrapedRecipe: recipescrape.ScrapedRecipe{Title: "Beef Stew"}},
					{ID: "r-2", SourceURL: "https://example.com/soup", ScrapedRecipe: recipescrape.ScrapedRecipe{Title: "Tomato Soup"}},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Recipes: recipes,
		}

		err := (&main.ListCmd{Owner: "alice", Limit: 10, Offset: 5}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "r-1")
		assert.Contains(t, output, "Tomato Soup")
		assert.Contains(t, output, "https://example.com/stew")

		require.NotNil(t, gotFilter.OwnerID)
		assert.Equal(t, "alice", *gotFilter.OwnerID)
		assert.Equal(t, 10, gotFilter.Limit)
		assert.Equal(t, 5, gotFilter.Offset)
	})

	t.Run("lists every owner by default", func(t *testing.T) {
		t.Parallel()

		recipes := &mock.RecipeService{
			FindRecipesFn: func(_ context.Context, filter recipescrape.RecipeFilter) ([]*recipescrape.Recipe, error) {
				assert.Nil(t, filter.OwnerID)
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Recipes: recipes}

		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No recipes found")
	})

	t.Run("returns error when find fails", func(t *testing.T) {
		t.Parallel()

		recipes := &mock.RecipeService{
			FindRecipesFn: func(context.Context, recipescrape.RecipeFilter) ([]*recipescrape.Recipe, error) {
				return nil, errors.New("database error")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Recipes: recipes}

		err := (&main.ListCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
