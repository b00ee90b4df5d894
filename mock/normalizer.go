package mock

import (
	"context"

	"github.com/fwojciec/recipescrape"
)

var _ recipescrape.IngredientNormalizer = (*IngredientNormalizer)(nil)

// IngredientNormalizer is a mock implementation of recipescrape.IngredientNormalizer.
type IngredientNormalizer struct {
	NormalizeIngredientsFn func(ctx context.Context, lines []string, units []string) ([]recipescrape.NormalizedIngredient, error)
}

func (n *IngredientNormalizer) NormalizeIngredients(ctx context.Context, lines []string, units []string) ([]recipescrape.NormalizedIngredient, error) {
	return n.NormalizeIngredientsFn(ctx, lines, units)
}
