//go:build integration

package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/recipescrape"
	"github.com/fwojciec/recipescrape/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The local tokenizer fetches its vocabulary on first use.
func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("gemini-2.0-flash")
	require.NoError(t, err)

	var _ recipescrape.TokenCounter = tc
	ctx := context.Background()

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("stops on a canceled context", func(t *testing.T) {
		t.Parallel()

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := tc.CountTokens(canceled, "2 cups flour")
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("prompt grows with ingredient lines", func(t *testing.T) {
		t.Parallel()

		units := recipescrape.Units()
		short, err := tc.CountTokens(ctx, gemini.BuildPrompt([]string{"2 cups flour"}, units))
		require.NoError(t, err)

		long, err := tc.CountTokens(ctx, gemini.BuildPrompt([]string{"2 cups flour", "1 tsp baking soda", "a pinch of salt"}, units))
		require.NoError(t, err)

		assert.Positive(t, short)
		assert.Greater(t, long, short)
	})

	t.Run("splits lines under a small budget", func(t *testing.T) {
		t.Parallel()

		lines := []string{"2 cups flour", "1 tsp baking soda", "a pinch of salt"}
		units := recipescrape.Units()
		one, err := tc.CountTokens(ctx, gemini.BuildPrompt(lines[:1], units))
		require.NoError(t, err)

		batches, err := gemini.SplitLines(ctx, tc, lines, units, one)
		require.NoError(t, err)
		assert.Greater(t, len(batches), 1)
	})
}

func TestNewTokenCounter_UnknownModel(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewTokenCounter("not-a-gemini-model")

	require.Error(t, err)
	assert.Equal(t, recipescrape.EINVALID, recipescrape.ErrorCode(err))
	assert.Contains(t, recipescrape.ErrorMessage(err), "not-a-gemini-model")
}
