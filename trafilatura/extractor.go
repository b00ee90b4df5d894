// Package trafilatura reads page metadata with go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/recipescrape"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure MetadataExtractor implements recipescrape.MetadataExtractor at compile time.
var _ recipescrape.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor wraps go-trafilatura to read the title, description
// and lead image of a page. When the page has no meta description, the
// first sentence-length paragraph of the main content is used.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	meta := &recipescrape.PageMetadata{
		Title:       strings.TrimSpace(result.Metadata.Title),
		Description: strings.TrimSpace(result.Metadata.Description),
		ImageURL:    strings.TrimSpace(result.Metadata.Image),
	}
	if meta.Description == "" {
		meta.Description = leadParagraph(result.ContentText)
	}
	return meta, nil
}

// leadParagraph returns the first paragraph of text long enough to read
// as a summary.
func leadParagraph(text string) string {
	for _, p := range strings.Split(text, "\n") {
		p = strings.TrimSpace(p)
		if len(strings.Fields(p)) >= 8 {
			return p
		}
	}
	return ""
}
