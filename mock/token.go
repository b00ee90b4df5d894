package mock

import (
	"context"

	"github.com/fwojciec/recipescrape"
)

var _ recipescrape.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of recipescrape.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
