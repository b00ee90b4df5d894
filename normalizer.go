package recipescrape

import (
	"context"
	"strings"
	"unicode"
)

// NormalizedIngredient is a best-effort structured reading of one
// ingredient line produced by an external service.
type NormalizedIngredient struct {
	Amount *float64 `json:"amount"`
	Unit   *string  `json:"unit"`
	Name   string   `json:"name"`
}

// IngredientNormalizer structures ingredient lines the text parser could
// not fully resolve, typically backed by a language model.
type IngredientNormalizer interface {
	// NormalizeIngredients returns one result per input line, in order.
	// units is the canonical vocabulary the results should use.
	NormalizeIngredients(ctx context.Context, lines []string, units []string) ([]NormalizedIngredient, error)
}

// NeedsRefinement reports whether the text parser left an ingredient
// ambiguous: a line with digits but no amount, or a unit outside the
// canonical vocabulary.
func NeedsRefinement(ing Ingredient) bool {
	if ing.Unit != nil && !IsCanonicalUnit(*ing.Unit) {
		return true
	}
	return ing.Amount == nil && strings.IndexFunc(ing.OriginalText, unicode.IsDigit) >= 0
}

// Refine sends ambiguous ingredients of rec to n and backfills the fields
// the text parser left empty. Values already set are never overwritten
// and OriginalText is kept. On any error rec is left untouched; callers
// are expected to log the error and carry on with the parsed record.
// It returns the number of ingredients that were changed.
func Refine(ctx context.Context, n IngredientNormalizer, rec *ScrapedRecipe) (int, error) {
	if n == nil || rec == nil {
		return 0, nil
	}

	var idx []int
	var lines []string
	for i, ing := range rec.Ingredients {
		if NeedsRefinement(ing) {
			idx = append(idx, i)
			lines = append(lines, ing.OriginalText)
		}
	}
	if len(lines) == 0 {
		return 0, nil
	}

	results, err := n.NormalizeIngredients(ctx, lines, Units())
	if err != nil {
		return 0, err
	}
	if len(results) != len(lines) {
		return 0, Errorf(EINTERNAL, "normalizer returned %d results for %d lines", len(results), len(lines))
	}

	var changed int
	for j, res := range results {
		ing := &rec.Ingredients[idx[j]]
		updated := false

		if ing.Amount == nil && res.Amount != nil {
			ing.Amount = ptr(*res.Amount)
			updated = true
		}
		if res.Unit != nil && *res.Unit != "" && (ing.Unit == nil || !IsCanonicalUnit(*ing.Unit)) {
			if unit := NormalizeUnit(*res.Unit); IsCanonicalUnit(unit) {
				ing.Unit = ptr(unit)
				updated = true
			}
		}
		if updated && strings.TrimSpace(res.Name) != "" {
			ing.Name = strings.TrimSpace(res.Name)
		}
		if updated {
			changed++
		}
	}

	return changed, nil
}
