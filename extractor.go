package recipescrape

// RecipeExtractor turns a recipe page into a normalized record.
type RecipeExtractor interface {
	// Extract parses raw HTML and returns the recipe found in it.
	// The sourceURL is used for diagnostics only.
	// The returned record always has a title and at least one instruction.
	// Only a document that cannot be parsed at all yields an error.
	Extract(html string, sourceURL string) (*ScrapedRecipe, error)
}

// PageMetadata holds page-level metadata found outside any recipe markup.
type PageMetadata struct {
	Title       string
	Description string
	ImageURL    string
}

// MetadataExtractor reads page-level metadata (meta tags, main content
// heuristics) from HTML. It is used to backfill fields that no recipe
// strategy could supply.
type MetadataExtractor interface {
	ExtractMetadata(html string) (*PageMetadata, error)
}
