package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/recipescrape"
	"github.com/fwojciec/recipescrape/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkWALMode compares write performance between WAL and rollback journal modes.
// This simulates a batch scrape saving one recipe per page.
func BenchmarkWALMode(b *testing.B) {
	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkRecipeInserts(b, false)
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkRecipeInserts(b, true)
	})
}

func benchmarkRecipeInserts(b *testing.B, useWAL bool) {
	b.Helper()

	dbPath := filepath.Join(b.TempDir(), "bench.db")

	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())

	ctx := context.Background()
	if !useWAL {
		_, err := db.ExecContext(ctx, "PRAGMA journal_mode = DELETE")
		require.NoError(b, err)
	}

	defer func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	svc := sqlite.NewRecipeService(db)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := svc.CreateRecipe(ctx, benchRecipe(i)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFindRecipes measures loading a page of recipes with their
// ingredients and instructions.
func BenchmarkFindRecipes(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	svc := sqlite.NewRecipeService(db)
	for i := 0; i < 100; i++ {
		require.NoError(b, svc.CreateRecipe(ctx, benchRecipe(i)))
	}

	owner := "bench-owner"
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		recipes, err := svc.FindRecipes(ctx, recipescrape.RecipeFilter{OwnerID: &owner, Limit: 20})
		if err != nil {
			b.Fatal(err)
		}
		if len(recipes) != 20 {
			b.Fatalf("expected 20 recipes, got %d", len(recipes))
		}
	}
}

func benchRecipe(i int) *recipescrape.Recipe {
	amount := 2.0
	unit := "cup"
	ingredients := make([]recipescrape.Ingredient, 10)
	for j := range ingredients {
		ingredients[j] = recipescrape.Ingredient{
			Amount:       &amount,
			Unit:         &unit,
			Name:         fmt.Sprintf("ingredient %d", j),
			OriginalText: fmt.Sprintf("2 cups ingredient %d", j),
		}
	}
	return &recipescrape.Recipe{
		OwnerID:   "bench-owner",
		SourceURL: fmt.Sprintf("https://example.com/recipes/%d", i),
		ScrapedRecipe: recipescrape.ScrapedRecipe{
			Title:        fmt.Sprintf("Recipe %d", i),
			Ingredients:  ingredients,
			Instructions: []string{"Mix everything.", "Bake for 30 minutes.", "Let cool."},
		},
	}
}
