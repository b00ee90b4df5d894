package mock

import (
	"context"

	"github.com/fwojciec/recipescrape"
)

var _ recipescrape.RecipeService = (*RecipeService)(nil)

// RecipeService is a mock implementation of recipescrape.RecipeService.
type RecipeService struct {
	CreateRecipeFn   func(ctx context.Context, recipe *recipescrape.Recipe) error
	FindRecipeByIDFn func(ctx context.Context, id string) (*recipescrape.Recipe, error)
	FindRecipesFn    func(ctx context.Context, filter recipescrape.RecipeFilter) ([]*recipescrape.Recipe, error)
	DeleteRecipeFn   func(ctx context.Context, id string) error
}

func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *recipescrape.Recipe) error {
	return s.CreateRecipeFn(ctx, recipe)
}

func (s *RecipeService) FindRecipeByID(ctx context.Context, id string) (*recipescrape.Recipe, error) {
	return s.FindRecipeByIDFn(ctx, id)
}

func (s *RecipeService) FindRecipes(ctx context.Context, filter recipescrape.RecipeFilter) ([]*recipescrape.Recipe, error) {
	return s.FindRecipesFn(ctx, filter)
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) error {
	return s.DeleteRecipeFn(ctx, id)
}
