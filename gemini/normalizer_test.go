package gemini_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/recipescrape"
	"github.com/fwojciec/recipescrape/gemini"
	"github.com/fwojciec/recipescrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNormalizer_NormalizeIngredients_EmptyLines(t *testing.T) {
	t.Parallel()

	normalizer := gemini.NewNormalizer(nil) // nil client ok for this test

	results, err := normalizer.NormalizeIngredients(context.Background(), nil, recipescrape.Units())

	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestNormalizer_NormalizeIngredients_ReturnsErrorWithoutClient(t *testing.T) {
	t.Parallel()

	normalizer := gemini.NewNormalizer(nil)

	_, err := normalizer.NormalizeIngredients(context.Background(), []string{"2 glugs oil"}, recipescrape.Units())

	require.Error(t, err)
	assert.Equal(t, recipescrape.EUNAVAILABLE, recipescrape.ErrorCode(err))
}

func TestBuildConfig_RequestsJSONArray(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.ResponseSchema)
	assert.Equal(t, genai.TypeArray, config.ResponseSchema.Type)
	require.NotNil(t, config.ResponseSchema.Items)
	assert.Contains(t, config.ResponseSchema.Items.Properties, "amount")
	assert.Contains(t, config.ResponseSchema.Items.Properties, "unit")
	assert.Contains(t, config.ResponseSchema.Items.Properties, "name")
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "ingredient")
}

func TestBuildConfig_SetsZeroTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.0, *config.Temperature, 0.001)
}

func TestBuildPrompt_ContainsUnitsAndNumberedLines(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildPrompt([]string{"2 glugs olive oil", "a knob of butter"}, []string{"cup", "tbsp"})

	assert.Contains(t, prompt, "<units>\ncup, tbsp\n</units>")
	assert.Contains(t, prompt, "1. 2 glugs olive oil\n")
	assert.Contains(t, prompt, "2. a knob of butter\n")
	assert.Contains(t, prompt, "Return exactly 2 objects")
}

func TestBuildPrompt_DoesNotContainSystemInstruction(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildPrompt([]string{"1 egg"}, recipescrape.Units())

	assert.NotContains(t, prompt, "You convert recipe ingredient lines")
}

func TestParseResponse(t *testing.T) {
	t.Parallel()

	t.Run("decodes results in order", func(t *testing.T) {
		t.Parallel()

		results, err := gemini.ParseResponse(`[
			{"amount": 2, "unit": "tbsp", "name": "olive oil"},
			{"amount": null, "unit": null, "name": " butter "}
		]`, 2)

		require.NoError(t, err)
		require.Len(t, results, 2)
		require.NotNil(t, results[0].Amount)
		assert.InDelta(t, 2.0, *results[0].Amount, 0.001)
		require.NotNil(t, results[0].Unit)
		assert.Equal(t, "tbsp", *results[0].Unit)
		assert.Nil(t, results[1].Amount)
		assert.Nil(t, results[1].Unit)
		assert.Equal(t, "butter", results[1].Name)
	})

	t.Run("accepts fenced JSON", func(t *testing.T) {
		t.Parallel()

		results, err := gemini.ParseResponse("```json\n[{\"amount\": 1, \"unit\": null, \"name\": \"egg\"}]\n```", 1)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "egg", results[0].Name)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseResponse("not json", 1)

		require.Error(t, err)
		assert.Equal(t, recipescrape.EINTERNAL, recipescrape.ErrorCode(err))
	})

	t.Run("rejects wrong result count", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseResponse(`[{"amount": 1, "unit": null, "name": "egg"}]`, 2)

		require.Error(t, err)
		assert.Equal(t, recipescrape.EINTERNAL, recipescrape.ErrorCode(err))
		assert.Contains(t, recipescrape.ErrorMessage(err), "1 results for 2 lines")
	})
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	// One token per ingredient line in the prompt.
	counter := &mock.TokenCounter{
		CountTokensFn: func(_ context.Context, text string) (int, error) {
			return strings.Count(text, ". "), nil
		},
	}
	lines := []string{"1 egg", "2 cups flour", "1 tsp salt", "3 tbsp butter", "1 cup milk"}

	t.Run("keeps everything in one batch under budget", func(t *testing.T) {
		t.Parallel()

		batches, err := gemini.SplitLines(context.Background(), counter, lines, nil, 10)

		require.NoError(t, err)
		assert.Equal(t, [][]string{lines}, batches)
	})

	t.Run("splits when the budget is exceeded", func(t *testing.T) {
		t.Parallel()

		batches, err := gemini.SplitLines(context.Background(), counter, lines, nil, 2)

		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"1 egg", "2 cups flour"},
			{"1 tsp salt", "3 tbsp butter"},
			{"1 cup milk"},
		}, batches)
	})

	t.Run("gives an oversized line its own batch", func(t *testing.T) {
		t.Parallel()

		batches, err := gemini.SplitLines(context.Background(), counter, lines[:2], nil, 0)

		require.NoError(t, err)
		assert.Equal(t, [][]string{{"1 egg"}, {"2 cups flour"}}, batches)
	})

	t.Run("propagates counter errors", func(t *testing.T) {
		t.Parallel()

		failing := &mock.TokenCounter{
			CountTokensFn: func(context.Context, string) (int, error) {
				return 0, errors.New("tokenizer unavailable")
			},
		}

		_, err := gemini.SplitLines(context.Background(), failing, lines, nil, 10)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "tokenizer unavailable")
	})
}
