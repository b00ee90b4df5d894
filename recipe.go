package recipescrape

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// Placeholders used when a page yields no title or no instructions.
const (
	DefaultTitle       = "Untitled Recipe"
	DefaultInstruction = "No instructions found"
)

// Ingredient is a single structured ingredient line.
//
// Nil pointer fields mean the value was not present in the source.
// OriginalText always holds the cleaned source line so the entry can be
// re-parsed or edited later.
type Ingredient struct {
	Amount       *float64 `json:"amount"`
	AmountMax    *float64 `json:"amountMax,omitempty"`
	Unit         *string  `json:"unit"`
	Name         string   `json:"name"`
	Section      *string  `json:"section,omitempty"`
	OriginalText string   `json:"originalText"`
}

// ScrapedRecipe is the normalized result of extracting a recipe from a page.
type ScrapedRecipe struct {
	Title        string       `json:"title"`
	Description  *string      `json:"description"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	ImageURL     *string      `json:"imageUrl"`
	Servings     *int         `json:"servings"`
	PrepTime     *int         `json:"prepTime"`
	CookTime     *int         `json:"cookTime"`
}

// Normalize applies the title and instruction placeholders so that a
// record is never returned without either.
func (r *ScrapedRecipe) Normalize() {
	if r.Title == "" {
		r.Title = DefaultTitle
	}
	if len(r.Instructions) == 0 {
		r.Instructions = []string{DefaultInstruction}
	}
	if r.Ingredients == nil {
		r.Ingredients = []Ingredient{}
	}
}

// Recipe is a scraped recipe persisted on behalf of an owner.
type Recipe struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"ownerId"`
	SourceURL  string    `json:"sourceUrl"`
	SourceHash string    `json:"sourceHash"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	ScrapedRecipe
}

// Validate returns an error if the recipe contains invalid fields.
func (r *Recipe) Validate() error {
	if r.OwnerID == "" {
		return Errorf(EINVALID, "recipe owner ID required")
	}
	if r.SourceURL == "" {
		return Errorf(EINVALID, "recipe source URL required")
	}
	if r.Title == "" {
		return Errorf(EINVALID, "recipe title required")
	}
	return nil
}

// RecipeService represents a service for managing persisted recipes.
type RecipeService interface {
	// CreateRecipe assigns an ID and timestamps and stores the recipe.
	CreateRecipe(ctx context.Context, recipe *Recipe) error

	// FindRecipeByID retrieves a recipe by ID.
	// Returns ENOTFOUND if recipe does not exist.
	FindRecipeByID(ctx context.Context, id string) (*Recipe, error)

	// FindRecipes retrieves recipes matching the filter.
	FindRecipes(ctx context.Context, filter RecipeFilter) ([]*Recipe, error)

	// DeleteRecipe permanently removes a recipe with its ingredients and steps.
	// Returns ENOTFOUND if recipe does not exist.
	DeleteRecipe(ctx context.Context, id string) error
}

// RecipeFilter represents a filter for FindRecipes.
type RecipeFilter struct {
	ID        *string `json:"id"`
	OwnerID   *string `json:"ownerId"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// String renders the parsed amount, unit and name, e.g. "1-2 cup flour".
// Lines with neither amount nor unit render as their source text.
func (i Ingredient) String() string {
	if i.Amount == nil && i.Unit == nil {
		if i.OriginalText != "" {
			return i.OriginalText
		}
		return i.Name
	}
	if i.Amount == nil && *i.Unit == "to taste" {
		return i.Name + ", to taste"
	}

	var parts []string
	if i.Amount != nil {
		amount := formatAmount(*i.Amount)
		if i.AmountMax != nil {
			amount += "-" + formatAmount(*i.AmountMax)
		}
		parts = append(parts, amount)
	}
	if i.Unit != nil {
		parts = append(parts, *i.Unit)
	}
	if i.Name != "" {
		parts = append(parts, i.Name)
	}
	return strings.Join(parts, " ")
}

func formatAmount(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(strconv.FormatFloat(v, 'f', 2, 64), "0"), ".")
}
