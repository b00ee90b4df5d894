package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/recipescrape"
)

// Enrich backfills servings, times, description and image from the page's
// linked data. Fields that are already set are never overwritten, so it
// is safe to apply after any strategy.
func Enrich(rec *recipescrape.ScrapedRecipe, doc *goquery.Document) {
	if rec == nil || !needsEnrichment(rec) {
		return
	}
	if node := findLinkedDataRecipe(doc); node != nil {
		applyLinkedData(rec, node)
	}
}

func needsEnrichment(rec *recipescrape.ScrapedRecipe) bool {
	return rec.Servings == nil || rec.PrepTime == nil || rec.CookTime == nil ||
		rec.Description == nil || rec.ImageURL == nil
}

// applyLinkedData fills nil metadata fields of rec from a Recipe node.
func applyLinkedData(rec *recipescrape.ScrapedRecipe, node map[string]any) {
	if rec.Description == nil {
		rec.Description = optionalString(ldString(node["description"]))
	}
	if rec.ImageURL == nil {
		rec.ImageURL = optionalString(ldImage(node["image"]))
	}
	if rec.Servings == nil {
		if n, ok := ldYield(node["recipeYield"]); ok {
			rec.Servings = intPtr(n)
		}
	}

	prep, hasPrep := ldDuration(node["prepTime"])
	if rec.PrepTime == nil && hasPrep {
		rec.PrepTime = intPtr(prep)
	}

	if rec.CookTime == nil {
		if cook, ok := ldDuration(node["cookTime"]); ok {
			rec.CookTime = intPtr(cook)
		} else if total, ok := ldDuration(node["totalTime"]); ok {
			// Without a cook time, whatever of the total is not prep.
			if hasPrep && total > prep {
				total -= prep
			}
			rec.CookTime = intPtr(total)
		}
	}
}
