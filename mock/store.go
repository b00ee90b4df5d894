package mock

import (
	"context"

	"github.com/fwojciec/recipescrape"
)

var _ recipescrape.RecipeStore = (*RecipeStore)(nil)

// RecipeStore is a mock implementation of recipescrape.RecipeStore.
type RecipeStore struct {
	SaveFn   func(ctx context.Context, recipe *recipescrape.Recipe) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *RecipeStore) Save(ctx context.Context, recipe *recipescrape.Recipe) error {
	return s.SaveFn(ctx, recipe)
}

func (s *RecipeStore) Commit() error {
	return s.CommitFn()
}

func (s *RecipeStore) Abort() error {
	return s.AbortFn()
}
