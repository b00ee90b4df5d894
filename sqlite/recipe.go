package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/recipescrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ recipescrape.RecipeService = (*RecipeService)(nil)

// RecipeService implements recipescrape.RecipeService using SQLite.
// Ingredients and instructions live in child tables keyed by position.
type RecipeService struct {
	db *DB
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(db *DB) *RecipeService {
	return &RecipeService{db: db}
}

// hashSource computes the xxHash of a source URL as a hex string. It keys
// the lookup of recipes by URL.
func hashSource(sourceURL string) string {
	return hex.EncodeToString(binary.BigEndian.AppendUint64(nil, xxhash.Sum64String(sourceURL)))
}

const recipeColumns = `id, owner_id, source_url, source_hash, title, description, image_url,
	servings, prep_time, cook_time, created_at, updated_at`

// CreateRecipe stores a recipe with its ingredients and instructions.
// Returns ECONFLICT if the owner already saved a recipe from the same URL.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *recipescrape.Recipe) error {
	if err := recipe.Validate(); err != nil {
		return err
	}
	recipe.Normalize()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	hash := hashSource(recipe.SourceURL)

	var existing string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM recipes WHERE owner_id = ? AND source_hash = ? AND source_url = ?
	`, recipe.OwnerID, hash, recipe.SourceURL).Scan(&existing)
	if err == nil {
		return recipescrape.Errorf(recipescrape.ECONFLICT, "recipe from %s already saved as %s", recipe.SourceURL, existing)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	now := time.Now().UTC().Truncate(time.Second)
	recipe.ID = uuid.New().String()
	recipe.SourceHash = hash
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO recipes (`+recipeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, recipe.ID, recipe.OwnerID, recipe.SourceURL, recipe.SourceHash, recipe.Title,
		nullString(recipe.Description), nullString(recipe.ImageURL),
		nullInt(recipe.Servings), nullInt(recipe.PrepTime), nullInt(recipe.CookTime),
		recipe.CreatedAt.Format(time.RFC3339), recipe.UpdatedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	for i, ing := range recipe.Ingredients {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO ingredients (recipe_id, position, amount, amount_max, unit, name, section, original_text)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, recipe.ID, i, nullFloat(ing.Amount), nullFloat(ing.AmountMax), nullString(ing.Unit),
			ing.Name, nullString(ing.Section), ing.OriginalText); err != nil {
			return err
		}
	}

	for i, step := range recipe.Instructions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO instructions (recipe_id, position, text) VALUES (?, ?, ?)
		`, recipe.ID, i, step); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRecipeByID retrieves a recipe by ID.
func (s *RecipeService) FindRecipeByID(ctx context.Context, id string) (*recipescrape.Recipe, error) {
	recipes, err := s.FindRecipes(ctx, recipescrape.RecipeFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, recipescrape.Errorf(recipescrape.ENOTFOUND, "recipe not found")
	}
	return recipes[0], nil
}

// FindRecipes retrieves recipes matching the filter, newest first.
func (s *RecipeService) FindRecipes(ctx context.Context, filter recipescrape.RecipeFilter) ([]*recipescrape.Recipe, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + recipeColumns + " FROM recipes WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.OwnerID != nil {
		query.WriteString(" AND owner_id = ?")
		args = append(args, *filter.OwnerID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_hash = ? AND source_url = ?")
		args = append(args, hashSource(*filter.SourceURL), *filter.SourceURL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []*recipescrape.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for _, recipe := range recipes {
		if err := s.loadChildren(ctx, recipe); err != nil {
			return nil, err
		}
	}

	return recipes, nil
}

// DeleteRecipe permanently removes a recipe. Its ingredients and
// instructions are removed by cascade.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM recipes WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return recipescrape.Errorf(recipescrape.ENOTFOUND, "recipe not found")
	}

	return nil
}

func scanRecipe(rows *sql.Rows) (*recipescrape.Recipe, error) {
	var r recipescrape.Recipe
	var description, imageURL sql.NullString
	var servings, prepTime, cookTime sql.NullInt64
	var createdAt, updatedAt string

	if err := rows.Scan(&r.ID, &r.OwnerID, &r.SourceURL, &r.SourceHash, &r.Title,
		&description, &imageURL, &servings, &prepTime, &cookTime, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	r.Description = stringPtr(description)
	r.ImageURL = stringPtr(imageURL)
	r.Servings = intPtr(servings)
	r.PrepTime = intPtr(prepTime)
	r.CookTime = intPtr(cookTime)

	var err error
	if r.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &r, nil
}

// loadChildren reads the ordered ingredients and instructions of a recipe.
func (s *RecipeService) loadChildren(ctx context.Context, r *recipescrape.Recipe) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT amount, amount_max, unit, name, section, original_text
		FROM ingredients WHERE recipe_id = ? ORDER BY position
	`, r.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	r.Ingredients = []recipescrape.Ingredient{}
	for rows.Next() {
		var ing recipescrape.Ingredient
		var amount, amountMax sql.NullFloat64
		var unit, section sql.NullString
		if err := rows.Scan(&amount, &amountMax, &unit, &ing.Name, &section, &ing.OriginalText); err != nil {
			return err
		}
		ing.Amount = floatPtr(amount)
		ing.AmountMax = floatPtr(amountMax)
		ing.Unit = stringPtr(unit)
		ing.Section = stringPtr(section)
		r.Ingredients = append(r.Ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	steps, err := s.db.QueryContext(ctx, `
		SELECT text FROM instructions WHERE recipe_id = ? ORDER BY position
	`, r.ID)
	if err != nil {
		return err
	}
	defer steps.Close()

	r.Instructions = nil
	for steps.Next() {
		var text string
		if err := steps.Scan(&text); err != nil {
			return err
		}
		r.Instructions = append(r.Instructions, text)
	}
	return steps.Err()
}
