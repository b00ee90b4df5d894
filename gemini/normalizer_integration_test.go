//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/recipescrape"
	"github.com/fwojciec/recipescrape/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNormalizer_Integration_StructuresLines(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)

	normalizer := gemini.NewNormalizer(client)

	results, err := normalizer.NormalizeIngredients(ctx,
		[]string{"a couple tablespoons of olive oil", "two large eggs"},
		recipescrape.Units(),
	)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Contains(t, results[0].Name, "olive oil")
	require.NotNil(t, results[1].Amount)
	assert.InDelta(t, 2.0, *results[1].Amount, 0.001)
}
