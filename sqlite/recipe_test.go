package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/recipescrape"
	"github.com/fwojciec/recipescrape/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }
func iptr(v int) *int         { return &v }

func newRecipe(owner, sourceURL string) *recipescrape.Recipe {
	return &recipescrape.Recipe{
		OwnerID:   owner,
		SourceURL: sourceURL,
		ScrapedRecipe: recipescrape.ScrapedRecipe{
			Title:       "Beef Stew",
			Description: sptr("A hearty stew."),
			ImageURL:    sptr("https://example.com/stew.jpg"),
			Servings:    iptr(6),
			PrepTime:    iptr(20),
			CookTime:    iptr(120),
			Ingredients: []recipescrape.Ingredient{
				{
					Amount:       fptr(2),
					AmountMax:    fptr(3),
					Unit:         sptr("lb"),
					Name:         "beef chuck",
					Section:      sptr("Stew"),
					OriginalText: "2-3 lbs beef chuck",
				},
				{
					Name:         "salt to taste",
					OriginalText: "salt to taste",
				},
			},
			Instructions: []string{"Brown the beef.", "Simmer for two hours."},
		},
	}
}

func TestRecipeService_CreateRecipe(t *testing.T) {
	t.Parallel()

	t.Run("creates recipe with generated ID, hash and timestamps", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecipeService(db)

		recipe := newRecipe("alice", "https://example.com/stew")
		require.NoError(t, svc.CreateRecipe(context.Background(), recipe))

		assert.NotEmpty(t, recipe.ID)
		assert.Len(t, recipe.SourceHash, 16)
		assert.False(t, recipe.CreatedAt.IsZero())
		assert.Equal(t, recipe.CreatedAt, recipe.UpdatedAt)
	})

	t.Run("returns EINVALID for missing owner", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecipeService(db)

		err := svc.CreateRecipe(context.Background(), newRecipe("", "https://example.com/stew"))
		require.Error(t, err)
		assert.Equal(t, recipescrape.EINVALID, recipescrape.ErrorCode(err))
	})

	t.Run("returns ECONFLICT for same owner and URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecipeService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateRecipe(ctx, newRecipe("alice", "https://example.com/stew")))

		err := svc.CreateRecipe(ctx, newRecipe("alice", "https://example.com/stew"))
		require.Error(t, err)
		assert.Equal(t, recipescrape.ECONFLICT, recipescrape.ErrorCode(err))
	})

	t.Run("allows same URL for different owners", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecipeService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateRecipe(ctx, newRecipe("alice", "https://example.com/stew")))
		require.NoError(t, svc.CreateRecipe(ctx, newRecipe("bob", "https://example.com/stew")))
	})

	t.Run("stores placeholder instruction for recipe without steps", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecipeService(db)
		ctx := context.Background()

		recipe := newRecipe("alice", "https://example.com/stew")
		recipe.Instructions = nil
		require.NoError(t, svc.CreateRecipe(ctx, recipe))

		found, err := svc.FindRecipeByID(ctx, recipe.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{recipescrape.DefaultInstruction}, found.Instructions)
	})
}

func TestRecipeService_FindRecipeByID(t *testing.T) {
	t.Parallel()

	t.Run("returns recipe with ingredients and instructions in order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecipeService(db)
		ctx := context.Background()

		recipe := newRecipe("alice", "https://example.com/stew")
		require.NoError(t, svc.CreateRecipe(ctx, recipe))

		found, err := svc.FindRecipeByID(ctx, recipe.ID)
		require.NoError(t, err)
		assert.Equal(t, recipe.ID, found.ID)
		assert.Equal(t, recipe.OwnerID, found.OwnerID)
		assert.Equal(t, recipe.SourceURL, found.SourceURL)
		assert.Equal(t, recipe.SourceHash, found.SourceHash)
		assert.True(t, recipe.CreatedAt.Equal(found.CreatedAt))
		assert.Equal(t, recipe.ScrapedRecipe, found.ScrapedRecipe)
	})

	t.Run("keeps missing optional fields nil", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecipeService(db)
		ctx := context.Background()

		recipe := &recipescrape.Recipe{
			OwnerID:       "alice",
			SourceURL:     "https://example.com/toast",
			ScrapedRecipe: recipescrape.ScrapedRecipe{Title: "Toast"},
		}
		require.NoError(t, svc.CreateRecipe(ctx, recipe))

		found, err := svc.FindRecipeByID(ctx, recipe.ID)
		require.NoError(t, err)
		assert.Nil(t, found.Description)
		assert.Nil(t, found.ImageURL)
		assert.Nil(t, found.Servings)
		assert.Nil(t, found.PrepTime)
		assert.Nil(t, found.CookTime)
		assert.NotNil(t, found.Ingredients)
		assert.Empty(t, found.Ingredients)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecipeService(db)

		_, err := svc.FindRecipeByID(context.Background(), "nonexistent")
		require.Error(t, err)
		assert.Equal(t, recipescrape.ENOTFOUND, recipescrape.ErrorCode(err))
	})
}

func TestRecipeService_FindRecipes(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) *sqlite.RecipeService {
		t.Helper()
		db := setupTestDB(t)
		svc := sqlite.NewRecipeService(db)
		ctx := context.Background()
		for _, r := range []*recipescrape.Recipe{
			newRecipe("alice", "https://example.com/a"),
			newRecipe("alice", "https://example.com/b"),
			newRecipe("alice", "https://example.com/c"),
			newRecipe("bob", "https://example.com/a"),
		} {
			require.NoError(t, svc.CreateRecipe(ctx, r))
		}
		return svc
	}

	t.Run("returns all recipes newest first", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		recipes, err := svc.FindRecipes(context.Background(), recipescrape.RecipeFilter{})
		require.NoError(t, err)
		require.Len(t, recipes, 4)
		assert.Equal(t, "bob", recipes[0].OwnerID)
		assert.Equal(t, "https://example.com/a", recipes[3].SourceURL)
	})

	t.Run("filters by owner", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		owner := "alice"
		recipes, err := svc.FindRecipes(context.Background(), recipescrape.RecipeFilter{OwnerID: &owner})
		require.NoError(t, err)
		require.Len(t, recipes, 3)
		for _, r := range recipes {
			assert.Equal(t, "alice", r.OwnerID)
		}
	})

	t.Run("filters by source URL", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		sourceURL := "https://example.com/a"
		recipes, err := svc.FindRecipes(context.Background(), recipescrape.RecipeFilter{SourceURL: &sourceURL})
		require.NoError(t, err)
		assert.Len(t, recipes, 2)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		owner := "alice"
		recipes, err := svc.FindRecipes(context.Background(), recipescrape.RecipeFilter{OwnerID: &owner, Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, "https://example.com/b", recipes[0].SourceURL)
	})

	t.Run("applies offset without limit", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		recipes, err := svc.FindRecipes(context.Background(), recipescrape.RecipeFilter{Offset: 3})
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, "alice", recipes[0].OwnerID)
		assert.Equal(t, "https://example.com/a", recipes[0].SourceURL)
	})

	t.Run("returns empty for no matches", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		owner := "carol"
		recipes, err := svc.FindRecipes(context.Background(), recipescrape.RecipeFilter{OwnerID: &owner})
		require.NoError(t, err)
		assert.Empty(t, recipes)
	})
}

func TestRecipeService_DeleteRecipe(t *testing.T) {
	t.Parallel()

	t.Run("deletes recipe with its ingredients and instructions", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecipeService(db)
		ctx := context.Background()

		recipe := newRecipe("alice", "https://example.com/stew")
		require.NoError(t, svc.CreateRecipe(ctx, recipe))
		require.NoError(t, svc.DeleteRecipe(ctx, recipe.ID))

		_, err := svc.FindRecipeByID(ctx, recipe.ID)
		assert.Equal(t, recipescrape.ENOTFOUND, recipescrape.ErrorCode(err))

		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ingredients").Scan(&count))
		assert.Zero(t, count)
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM instructions").Scan(&count))
		assert.Zero(t, count)
	})

	t.Run("allows saving the URL again after delete", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecipeService(db)
		ctx := context.Background()

		recipe := newRecipe("alice", "https://example.com/stew")
		require.NoError(t, svc.CreateRecipe(ctx, recipe))
		require.NoError(t, svc.DeleteRecipe(ctx, recipe.ID))
		require.NoError(t, svc.CreateRecipe(ctx, newRecipe("alice", "https://example.com/stew")))
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecipeService(db)

		err := svc.DeleteRecipe(context.Background(), "nonexistent")
		require.Error(t, err)
		assert.Equal(t, recipescrape.ENOTFOUND, recipescrape.ErrorCode(err))
	})
}
