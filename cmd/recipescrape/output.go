package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/recipescrape"
	"github.com/fwojciec/recipescrape/scrape"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printRecipe writes a recipe in a readable plain-text layout.
func printRecipe(w io.Writer, rec *recipescrape.ScrapedRecipe) {
	fmt.Fprintln(w, rec.Title)

	var facts []string
	if rec.Servings != nil {
		facts = append(facts, fmt.Sprintf("Serves %d", *rec.Servings))
	}
	if rec.PrepTime != nil {
		facts = append(facts, "Prep "+scrape.FormatMinutes(*rec.PrepTime))
	}
	if rec.CookTime != nil {
		facts = append(facts, "Cook "+scrape.FormatMinutes(*rec.CookTime))
	}
	if len(facts) > 0 {
		fmt.Fprintln(w, strings.Join(facts, "  |  "))
	}
	if rec.ImageURL != nil {
		fmt.Fprintf(w, "Image: %s\n", *rec.ImageURL)
	}
	if rec.Description != nil {
		fmt.Fprintf(w, "\n%s\n", *rec.Description)
	}

	fmt.Fprintln(w, "\nIngredients:")
	if len(rec.Ingredients) == 0 {
		fmt.Fprintln(w, "  (none found)")
	}
	section := ""
	for _, ing := range rec.Ingredients {
		if ing.Section != nil && *ing.Section != section {
			section = *ing.Section
			fmt.Fprintf(w, "  %s:\n", section)
		}
		fmt.Fprintf(w, "  - %s\n", ing)
	}

	fmt.Fprintln(w, "\nInstructions:")
	for i, step := range rec.Instructions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}
}
