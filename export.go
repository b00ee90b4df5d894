package recipescrape

import "context"

// RecipeStore writes recipes to an external store with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type RecipeStore interface {
	Save(ctx context.Context, recipe *Recipe) error
	Commit() error
	Abort() error
}
