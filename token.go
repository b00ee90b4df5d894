package recipescrape

import "context"

// TokenCounter counts tokens in text for a specific model. Normalizers use
// it to keep each request under the model's prompt budget.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
