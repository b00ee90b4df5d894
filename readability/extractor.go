// Package readability reads page metadata with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/recipescrape"
	"github.com/go-shiori/go-readability"
)

// Ensure MetadataExtractor implements recipescrape.MetadataExtractor at compile time.
var _ recipescrape.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor wraps go-readability to read the title, excerpt and
// lead image of a page.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata processes raw HTML and returns its page metadata.
func (e *MetadataExtractor) ExtractMetadata(rawHTML string) (*recipescrape.PageMetadata, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, recipescrape.Errorf(recipescrape.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &recipescrape.PageMetadata{
		Title:       strings.TrimSpace(article.Title),
		Description: strings.TrimSpace(article.Excerpt),
		ImageURL:    strings.TrimSpace(article.Image),
	}, nil
}
