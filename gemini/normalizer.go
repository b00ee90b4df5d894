// Package gemini implements ingredient normalization with Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/recipescrape"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// DefaultTokenBudget is the prompt size a single request is kept under
// when a token counter is configured.
const DefaultTokenBudget = 8000

// Ensure Normalizer implements recipescrape.IngredientNormalizer at compile time.
var _ recipescrape.IngredientNormalizer = (*Normalizer)(nil)

// Normalizer implements recipescrape.IngredientNormalizer using Google Gemini.
// The model is asked for a JSON array with one object per input line.
type Normalizer struct {
	client *genai.Client
	tokens recipescrape.TokenCounter
	budget int
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithTokenCounter splits long ingredient lists into several requests, each
// with a prompt of at most budget tokens.
func WithTokenCounter(tc recipescrape.TokenCounter, budget int) NormalizerOption {
	return func(n *Normalizer) {
		n.tokens = tc
		n.budget = budget
	}
}

// NewNormalizer creates a new Normalizer.
func NewNormalizer(client *genai.Client, opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{client: client, budget: DefaultTokenBudget}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NormalizeIngredients returns one structured reading per line, in order.
func (n *Normalizer) NormalizeIngredients(ctx context.Context, lines []string, units []string) ([]recipescrape.NormalizedIngredient, error) {
	if len(lines) == 0 {
		return []recipescrape.NormalizedIngredient{}, nil
	}
	if n.client == nil {
		return nil, recipescrape.Errorf(recipescrape.EUNAVAILABLE, "gemini client not configured")
	}

	batches := [][]string{lines}
	if n.tokens != nil {
		var err error
		batches, err = SplitLines(ctx, n.tokens, lines, units, n.budget)
		if err != nil {
			return nil, err
		}
	}

	out := make([]recipescrape.NormalizedIngredient, 0, len(lines))
	for _, batch := range batches {
		results, err := n.normalize(ctx, batch, units)
		if err != nil {
			return nil, err
		}
		out = append(out, results...)
	}
	return out, nil
}

func (n *Normalizer) normalize(ctx context.Context, lines []string, units []string) ([]recipescrape.NormalizedIngredient, error) {
	result, err := n.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildPrompt(lines, units)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, recipescrape.Errorf(recipescrape.EUNAVAILABLE, "gemini request failed: %v", err)
	}
	if result == nil {
		return nil, recipescrape.Errorf(recipescrape.EINTERNAL, "gemini returned nil result")
	}

	return ParseResponse(result.Text(), len(lines))
}

// BuildConfig returns the GenerateContentConfig for normalization requests.
// The response is constrained to a JSON array of ingredient objects.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	nullable := true
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You convert recipe ingredient lines into structured data. For each line return the numeric amount, the unit from the allowed list, and the ingredient name. Use null when a line has no amount or no unit. Never invent quantities.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"amount": {Type: genai.TypeNumber, Nullable: &nullable},
					"unit":   {Type: genai.TypeString, Nullable: &nullable},
					"name":   {Type: genai.TypeString},
				},
				Required:         []string{"amount", "unit", "name"},
				PropertyOrdering: []string{"amount", "unit", "name"},
			},
		},
	}
}

// BuildPrompt builds the user prompt with the allowed units and the
// numbered ingredient lines.
func BuildPrompt(lines []string, units []string) string {
	var sb strings.Builder
	sb.WriteString("<units>\n")
	sb.WriteString(strings.Join(units, ", "))
	sb.WriteString("\n</units>\n\n<ingredients>\n")
	for i, line := range lines {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, line)
	}
	sb.WriteString("</ingredients>\n\n")
	fmt.Fprintf(&sb, "Return exactly %d objects, in the same order as the lines.", len(lines))
	return sb.String()
}

// ParseResponse decodes the model's JSON answer. It fails unless the
// answer holds exactly want results.
func ParseResponse(text string, want int) ([]recipescrape.NormalizedIngredient, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var results []recipescrape.NormalizedIngredient
	if err := json.Unmarshal([]byte(text), &results); err != nil {
		return nil, recipescrape.Errorf(recipescrape.EINTERNAL, "invalid gemini response: %v", err)
	}
	if len(results) != want {
		return nil, recipescrape.Errorf(recipescrape.EINTERNAL, "gemini returned %d results for %d lines", len(results), want)
	}
	for i := range results {
		results[i].Name = strings.TrimSpace(results[i].Name)
	}
	return results, nil
}

// SplitLines groups lines into batches whose prompts stay within budget
// tokens. A single line over budget still gets a batch of its own.
func SplitLines(ctx context.Context, tc recipescrape.TokenCounter, lines []string, units []string, budget int) ([][]string, error) {
	var batches [][]string
	var current []string
	for _, line := range lines {
		candidate := append(current[:len(current):len(current)], line)
		count, err := tc.CountTokens(ctx, BuildPrompt(candidate, units))
		if err != nil {
			return nil, fmt.Errorf("count tokens: %w", err)
		}
		if count > budget && len(current) > 0 {
			batches = append(batches, current)
			current = []string{line}
			continue
		}
		current = candidate
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches, nil
}
