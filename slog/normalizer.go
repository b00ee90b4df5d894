package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/recipescrape"
)

// Ensure LoggingNormalizer implements recipescrape.IngredientNormalizer.
var _ recipescrape.IngredientNormalizer = (*LoggingNormalizer)(nil)

// LoggingNormalizer wraps an IngredientNormalizer with logging.
type LoggingNormalizer struct {
	next   recipescrape.IngredientNormalizer
	logger *slog.Logger
}

// NewLoggingNormalizer creates a new LoggingNormalizer.
func NewLoggingNormalizer(next recipescrape.IngredientNormalizer, logger *slog.Logger) *LoggingNormalizer {
	return &LoggingNormalizer{next: next, logger: logger}
}

// NormalizeIngredients delegates to the wrapped normalizer and logs the
// number of lines sent and results received.
func (n *LoggingNormalizer) NormalizeIngredients(ctx context.Context, lines []string, units []string) (results []recipescrape.NormalizedIngredient, err error) {
	defer func(begin time.Time) {
		n.logger.Info("ingredient normalization",
			"lines", len(lines),
			"results", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.NormalizeIngredients(ctx, lines, units)
}
