package mock

import "github.com/fwojciec/recipescrape"

var (
	_ recipescrape.RecipeExtractor   = (*RecipeExtractor)(nil)
	_ recipescrape.MetadataExtractor = (*MetadataExtractor)(nil)
	_ recipescrape.FormatDetector    = (*FormatDetector)(nil)
)

// RecipeExtractor is a mock implementation of recipescrape.RecipeExtractor.
type RecipeExtractor struct {
	ExtractFn func(html, sourceURL string) (*recipescrape.ScrapedRecipe, error)
}

func (e *RecipeExtractor) Extract(html, sourceURL string) (*recipescrape.ScrapedRecipe, error) {
	return e.ExtractFn(html, sourceURL)
}

// MetadataExtractor is a mock implementation of recipescrape.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(html string) (*recipescrape.PageMetadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(html string) (*recipescrape.PageMetadata, error) {
	return e.ExtractMetadataFn(html)
}

// FormatDetector is a mock implementation of recipescrape.FormatDetector.
type FormatDetector struct {
	DetectFn func(html string) recipescrape.Format
}

func (d *FormatDetector) Detect(html string) recipescrape.Format {
	return d.DetectFn(html)
}
