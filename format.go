package recipescrape

// Format identifies the markup a recipe page is published in.
type Format string

// Recognized recipe formats, listed in extraction priority order.
const (
	FormatUnknown       Format = ""
	FormatPluginMarkup  Format = "wprm"
	FormatDataAttribute Format = "data-attribute"
	FormatLinkedData    Format = "json-ld"
	FormatGeneric       Format = "generic"
)

// FormatDetector identifies the recipe format of an HTML page.
type FormatDetector interface {
	// Detect analyzes HTML and returns the highest-priority format present.
	// Returns FormatUnknown if no structured format can be recognized.
	Detect(html string) Format
}
