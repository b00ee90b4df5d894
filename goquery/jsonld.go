package goquery

import (
	"encoding/json"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/recipescrape"
)

var linkedDataSel = cascadia.MustCompile(`script[type="application/ld+json"]`)

// findLinkedDataRecipe returns the first Recipe node across all linked-data
// blocks of the document. Blocks that are not valid JSON are skipped.
func findLinkedDataRecipe(doc *goquery.Document) map[string]any {
	var recipe map[string]any
	doc.FindMatcher(linkedDataSel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(strings.TrimSpace(s.Text())), &data); err != nil {
			return true
		}
		recipe = findRecipeNode(data)
		return recipe == nil
	})
	return recipe
}

// findRecipeNode walks a decoded linked-data value looking for an object
// whose @type includes "Recipe". It handles top-level arrays, @graph
// containers and pages that wrap the recipe in mainEntity.
func findRecipeNode(v any) map[string]any {
	switch node := v.(type) {
	case []any:
		for _, item := range node {
			if found := findRecipeNode(item); found != nil {
				return found
			}
		}
	case map[string]any:
		if hasType(node, "Recipe") {
			return node
		}
		if graph, ok := node["@graph"]; ok {
			if found := findRecipeNode(graph); found != nil {
				return found
			}
		}
		if main, ok := node["mainEntity"]; ok {
			return findRecipeNode(main)
		}
	}
	return nil
}

// hasType reports whether the node's @type is, or contains, typ.
func hasType(node map[string]any, typ string) bool {
	switch t := node["@type"].(type) {
	case string:
		return t == typ
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == typ {
				return true
			}
		}
	}
	return false
}

// ldString returns a trimmed, entity-decoded string value. Numbers are
// formatted; anything else yields "".
func ldString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(html.UnescapeString(s))
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}

// ldNumber returns a numeric value given as a JSON number or a numeric string.
func ldNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		return recipescrape.ParseMixedNumber(recipescrape.NormalizeUnicodeFractions(n))
	}
	return 0, false
}

// ldImage resolves an image given as a string, an array, or an ImageObject.
func ldImage(v any) string {
	switch img := v.(type) {
	case string:
		return strings.TrimSpace(img)
	case []any:
		for _, item := range img {
			if u := ldImage(item); u != "" {
				return u
			}
		}
	case map[string]any:
		if u := ldString(img["url"]); u != "" {
			return u
		}
		return ldString(img["contentUrl"])
	}
	return ""
}

// ldYield reads recipeYield given as a number, a string like "4 servings",
// or an array of either.
func ldYield(v any) (int, bool) {
	switch y := v.(type) {
	case float64:
		if y <= 0 {
			return 0, false
		}
		return int(math.Round(y)), true
	case string:
		return parseFirstInt(y)
	case []any:
		for _, item := range y {
			if n, ok := ldYield(item); ok {
				return n, true
			}
		}
	}
	return 0, false
}

// ldDuration converts an ISO-8601 duration field to minutes.
func ldDuration(v any) (int, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	return recipescrape.ParseDurationISO8601(s)
}

// ldIngredients maps recipeIngredient entries to Ingredients. Plain strings
// go through the text parser; PropertyValue-style objects are mapped field
// by field.
func ldIngredients(v any) []recipescrape.Ingredient {
	var items []any
	switch list := v.(type) {
	case []any:
		items = list
	case string:
		items = []any{list}
	default:
		return nil
	}

	var out []recipescrape.Ingredient
	for _, item := range items {
		switch entry := item.(type) {
		case string:
			ing := recipescrape.ParseIngredient(html.UnescapeString(entry))
			if ing.OriginalText != "" {
				out = append(out, ing)
			}
		case map[string]any:
			if ing, ok := ldStructuredIngredient(entry); ok {
				out = append(out, ing)
			}
		}
	}
	return out
}

// ldStructuredIngredient combines value, unit code and name of a
// structured ingredient record without text parsing.
func ldStructuredIngredient(entry map[string]any) (recipescrape.Ingredient, bool) {
	name := ldString(entry["name"])
	if name == "" {
		return recipescrape.Ingredient{}, false
	}

	var ing recipescrape.Ingredient
	var parts []string

	if value, ok := ldNumber(entry["value"]); ok {
		ing.Amount = &value
		parts = append(parts, ldString(entry["value"]))
	}
	if maxValue, ok := ldNumber(entry["maxValue"]); ok && ing.Amount != nil {
		ing.AmountMax = &maxValue
		parts[0] = fmt.Sprintf("%s-%s", parts[0], ldString(entry["maxValue"]))
	}

	unit := ldString(entry["unitText"])
	if unit == "" {
		unit = ldString(entry["unitCode"])
	}
	if unit != "" {
		ing.Unit = stringPtr(recipescrape.NormalizeUnit(unit))
		parts = append(parts, unit)
	}

	ing.Name = name
	parts = append(parts, name)
	ing.OriginalText = strings.Join(parts, " ")

	return ing, true
}

// ldInstructions flattens recipeInstructions given as a string, a list of
// strings, HowToStep objects, or HowToSection objects with nested steps.
func ldInstructions(v any) []string {
	switch ins := v.(type) {
	case string:
		text := ldString(ins)
		return recipescrape.CleanInstructions(strings.Split(stripTags(text), "\n"))
	case []any:
		var out []string
		for _, item := range ins {
			out = append(out, ldInstructions(item)...)
		}
		return out
	case map[string]any:
		if hasType(ins, "HowToSection") || ins["itemListElement"] != nil {
			return ldInstructions(ins["itemListElement"])
		}
		text := ldString(ins["text"])
		if text == "" {
			text = ldString(ins["name"])
		}
		if line := recipescrape.CleanLine(stripTags(text)); line != "" {
			return []string{line}
		}
	}
	return nil
}

// stripTags removes inline markup some sites leave in linked-data text,
// turning line breaks and paragraph ends into newlines.
func stripTags(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	replacer := strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n", "</p>", "\n", "</li>", "\n")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(replacer.Replace(s)))
	if err != nil {
		return s
	}
	return doc.Text()
}
