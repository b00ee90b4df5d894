package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/recipescrape"
)

var _ Strategy = (*GenericStrategy)(nil)

var (
	metaDescriptionSel = cascadia.MustCompile(`meta[name="description"], meta[property="og:description"]`)
	metaImageSel       = cascadia.MustCompile(`meta[property="og:image"], meta[name="twitter:image"]`)
)

// GenericStrategy is the fallback for pages without recognizable recipe
// markup. It collects ingredient and instruction lines from any element
// whose class, id, itemprop or attribute names mention ingredients,
// instructions, directions or steps.
//
// It is always applicable, so it must be the last strategy tried. Results
// can be poor on pages that use none of these words in their markup.
type GenericStrategy struct{}

// NewGenericStrategy creates a new GenericStrategy.
func NewGenericStrategy() *GenericStrategy {
	return &GenericStrategy{}
}

// Name returns the strategy's identifier.
func (s *GenericStrategy) Name() string {
	return "generic"
}

// Format returns recipescrape.FormatGeneric.
func (s *GenericStrategy) Format() recipescrape.Format {
	return recipescrape.FormatGeneric
}

// Detect always returns true.
func (s *GenericStrategy) Detect(doc *goquery.Document) bool {
	return true
}

// Extract always returns a recipe, possibly with no ingredients.
func (s *GenericStrategy) Extract(doc *goquery.Document) (*recipescrape.ScrapedRecipe, bool) {
	rec := &recipescrape.ScrapedRecipe{
		Title:        findTitle(doc),
		Ingredients:  findIngredients(doc),
		Instructions: findInstructions(doc),
	}

	Enrich(rec, doc)
	applyMetaTags(rec, doc)

	return rec, true
}

// findIngredients parses ingredient lines collected with the keyword
// heuristics, keeping the heading they appear under as the section.
func findIngredients(doc *goquery.Document) []recipescrape.Ingredient {
	var out []recipescrape.Ingredient
	for _, line := range collectLines(doc, ingredientKeywords) {
		ing := recipescrape.ParseIngredient(line.Text)
		if ing.OriginalText == "" {
			continue
		}
		ing.Section = optionalString(line.Section)
		out = append(out, ing)
	}
	return out
}

// applyMetaTags fills a missing description or image from the page's
// description and Open Graph meta tags.
func applyMetaTags(rec *recipescrape.ScrapedRecipe, doc *goquery.Document) {
	if rec.Description == nil {
		rec.Description = optionalString(metaContent(doc, metaDescriptionSel))
	}
	if rec.ImageURL == nil {
		rec.ImageURL = optionalString(metaContent(doc, metaImageSel))
	}
}

func metaContent(doc *goquery.Document, m goquery.Matcher) string {
	var content string
	doc.FindMatcher(m).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		content = s.AttrOr("content", "")
		return content == ""
	})
	return content
}
