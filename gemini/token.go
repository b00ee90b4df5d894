package gemini

import (
	"context"

	"github.com/fwojciec/recipescrape"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ recipescrape.TokenCounter = (*TokenCounter)(nil)

// TokenCounter sizes normalizer prompts offline. Given to the Normalizer
// through WithTokenCounter, it lets SplitLines cut a long ingredient list
// into batches whose BuildPrompt text stays under the token budget, so no
// request is rejected for length.
type TokenCounter struct {
	model string
	tok   *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the local tokenizer for model. The vocabulary is
// downloaded on first use and cached by the genai package.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, recipescrape.Errorf(recipescrape.EINVALID, "tokenizer for %s: %v", model, err)
	}
	return &TokenCounter{model: model, tok: tok}, nil
}

// CountTokens returns the size of prompt as a single user turn.
func (tc *TokenCounter) CountTokens(ctx context.Context, prompt string) (int, error) {
	if prompt == "" {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	turn := genai.NewContentFromText(prompt, genai.RoleUser)
	result, err := tc.tok.CountTokens([]*genai.Content{turn}, nil)
	if err != nil {
		return 0, recipescrape.Errorf(recipescrape.EINTERNAL, "counting %s tokens: %v", tc.model, err)
	}
	return int(result.TotalTokens), nil
}
