// Package goquery implements recipe extraction strategies on top of
// goquery. Each strategy recognizes one family of recipe markup; the
// Extractor tries them in a fixed priority order.
package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/recipescrape"
)

// Strategy extracts recipes from one family of markup.
type Strategy interface {
	// Name returns the strategy's identifier (e.g., "wprm", "generic").
	Name() string

	// Format returns the format this strategy handles.
	Format() recipescrape.Format

	// Detect is a cheap check for the strategy's signature markup.
	Detect(doc *goquery.Document) bool

	// Extract returns the recipe and true, or false if the markup is not
	// usable by this strategy.
	Extract(doc *goquery.Document) (*recipescrape.ScrapedRecipe, bool)
}

// DefaultStrategies returns the structured strategies in priority order.
// The generic fallback is not included.
func DefaultStrategies() []Strategy {
	return []Strategy{
		NewPluginStrategy(),
		NewDataAttributeStrategy(),
		NewLinkedDataStrategy(),
	}
}

var firstIntRe = regexp.MustCompile(`\d+`)

// cleanText collapses whitespace in the text of a selection.
func cleanText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

// parseFirstInt returns the first run of digits in text.
func parseFirstInt(text string) (int, bool) {
	m := firstIntRe.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// imageSource returns the best image URL of an <img>, preferring lazy-load
// attributes over placeholder src values.
func imageSource(img *goquery.Selection) string {
	for _, attr := range []string{"data-lazy-src", "data-src", "src"} {
		if v, ok := img.Attr(attr); ok {
			v = strings.TrimSpace(v)
			if v != "" && !strings.HasPrefix(v, "data:") {
				return v
			}
		}
	}
	return ""
}

func intPtr(v int) *int {
	return &v
}

func stringPtr(v string) *string {
	return &v
}

// optionalString returns nil for blank strings.
func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
