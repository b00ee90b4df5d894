package recipescrape

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	// Used for recipe descriptions that carry inline markup.
	Convert(html string) (string, error)
}
