package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/recipescrape"
)

var _ Strategy = (*LinkedDataStrategy)(nil)

// LinkedDataStrategy extracts recipes from schema.org Recipe objects
// embedded in application/ld+json script blocks.
//
// Metadata from linked data is reliable, but ingredients are usually plain
// strings and go through the ingredient text parser.
type LinkedDataStrategy struct{}

// NewLinkedDataStrategy creates a new LinkedDataStrategy.
func NewLinkedDataStrategy() *LinkedDataStrategy {
	return &LinkedDataStrategy{}
}

// Name returns the strategy's identifier.
func (s *LinkedDataStrategy) Name() string {
	return "json-ld"
}

// Format returns recipescrape.FormatLinkedData.
func (s *LinkedDataStrategy) Format() recipescrape.Format {
	return recipescrape.FormatLinkedData
}

// Detect reports whether the page has any linked-data script block.
func (s *LinkedDataStrategy) Detect(doc *goquery.Document) bool {
	return doc.FindMatcher(linkedDataSel).Length() > 0
}

// Extract maps the first Recipe node found to a ScrapedRecipe.
// Returns false if no block holds a Recipe.
func (s *LinkedDataStrategy) Extract(doc *goquery.Document) (*recipescrape.ScrapedRecipe, bool) {
	node := findLinkedDataRecipe(doc)
	if node == nil {
		return nil, false
	}

	rec := &recipescrape.ScrapedRecipe{
		Title:        ldString(node["name"]),
		Ingredients:  ldIngredients(node["recipeIngredient"]),
		Instructions: ldInstructions(node["recipeInstructions"]),
	}
	if rec.Ingredients == nil {
		// Older markup used "ingredients".
		rec.Ingredients = ldIngredients(node["ingredients"])
	}

	applyLinkedData(rec, node)

	return rec, true
}
