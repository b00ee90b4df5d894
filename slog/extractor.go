package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/recipescrape"
)

// Ensure LoggingExtractor implements recipescrape.RecipeExtractor.
var _ recipescrape.RecipeExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a RecipeExtractor with logging of the detected
// recipe format and the size of the result.
type LoggingExtractor struct {
	next     recipescrape.RecipeExtractor
	detector recipescrape.FormatDetector
	logger   *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor. The detector may be
// nil, in which case no format is logged.
func NewLoggingExtractor(next recipescrape.RecipeExtractor, detector recipescrape.FormatDetector, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, detector: detector, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(html string, sourceURL string) (rec *recipescrape.ScrapedRecipe, err error) {
	format := "(unknown)"
	if e.detector != nil {
		if f := e.detector.Detect(html); f != recipescrape.FormatUnknown {
			format = string(f)
		}
	}

	defer func(begin time.Time) {
		attrs := []any{
			"url", sourceURL,
			"format", format,
			"duration", time.Since(begin),
			"err", err,
		}
		if rec != nil {
			attrs = append(attrs,
				"title", rec.Title,
				"ingredients", len(rec.Ingredients),
				"instructions", len(rec.Instructions),
			)
		}
		e.logger.Info("recipe extraction", attrs...)
	}(time.Now())
	return e.next.Extract(html, sourceURL)
}
