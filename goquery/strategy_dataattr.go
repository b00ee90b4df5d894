package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/recipescrape"
	"golang.org/x/net/html"
)

var _ Strategy = (*DataAttributeStrategy)(nil)

// maxContainerDepth bounds how far above a name element the shared
// container with its quantity is searched for.
const maxContainerDepth = 4

var (
	quantityAttrs = []string{"data-ingredient-quantity", "data-quantity", "data-amount"}
	unitAttrs     = []string{"data-ingredient-unit", "data-unit"}
	nameAttrs     = []string{"data-ingredient-name", "data-name"}

	dataQuantitySel = cascadia.MustCompile("[data-ingredient-quantity], [data-quantity], [data-amount]")
	dataUnitSel     = cascadia.MustCompile("[data-ingredient-unit], [data-unit]")
	dataNameSel     = cascadia.MustCompile("[data-ingredient-name], [data-name]")
	dataSignalSel   = cascadia.MustCompile("[data-ingredient-quantity], [data-ingredient-unit], [data-ingredient-name], [data-quantity], [data-amount]")
)

// DataAttributeStrategy extracts ingredients from markup that labels the
// quantity, unit and name of each ingredient with data attributes, e.g.
//
//	<li><span data-ingredient-quantity="2">2</span>
//	    <span data-ingredient-unit="cup">cups</span>
//	    <span data-ingredient-name>flour</span></li>
//
// A quantity is paired with a name through their nearest shared ancestor.
// Sections come from the headings preceding the ingredient lists. Title and
// instructions are found the same way as by GenericStrategy.
type DataAttributeStrategy struct{}

// NewDataAttributeStrategy creates a new DataAttributeStrategy.
func NewDataAttributeStrategy() *DataAttributeStrategy {
	return &DataAttributeStrategy{}
}

// Name returns the strategy's identifier.
func (s *DataAttributeStrategy) Name() string {
	return "data-attribute"
}

// Format returns recipescrape.FormatDataAttribute.
func (s *DataAttributeStrategy) Format() recipescrape.Format {
	return recipescrape.FormatDataAttribute
}

// Detect reports whether any element carries an ingredient data attribute.
// The bare data-name attribute is too common to count on its own.
func (s *DataAttributeStrategy) Detect(doc *goquery.Document) bool {
	return doc.FindMatcher(dataSignalSel).Length() > 0
}

// Extract returns false when the attributes yield no ingredients.
func (s *DataAttributeStrategy) Extract(doc *goquery.Document) (*recipescrape.ScrapedRecipe, bool) {
	ingredients := s.ingredients(doc)
	if len(ingredients) == 0 {
		return nil, false
	}

	rec := &recipescrape.ScrapedRecipe{
		Title:        findTitle(doc),
		Ingredients:  ingredients,
		Instructions: findInstructions(doc),
	}
	Enrich(rec, doc)

	return rec, true
}

// ingredients pairs name elements with quantities first, then reads
// quantities that have no name element from their enclosing line.
func (s *DataAttributeStrategy) ingredients(doc *goquery.Document) []recipescrape.Ingredient {
	sections := headingSections(doc.Selection)
	used := make(map[*html.Node]bool)
	var out []recipescrape.Ingredient

	doc.FindMatcher(dataNameSel).Each(func(_ int, name *goquery.Selection) {
		container := sharedContainer(name)
		if container == nil {
			if !hasAnyAttr(name, "data-ingredient-name") {
				return
			}
			container = name
		}
		if used[container.Get(0)] {
			return
		}
		used[container.Get(0)] = true

		ing, ok := s.namedIngredient(name, container)
		if !ok {
			return
		}
		ing.Section = optionalString(sectionOf(sections, name.Get(0), nil))
		out = append(out, ing)
	})

	doc.FindMatcher(dataQuantitySel).Each(func(_ int, qty *goquery.Selection) {
		container := qty.ClosestMatcher(listItemSel)
		if container.Length() == 0 {
			container = qty.Parent()
		}
		if container.Length() == 0 || isUsed(used, qty.Get(0)) {
			return
		}
		used[container.Get(0)] = true

		ing := recipescrape.ParseIngredient(cleanText(container))
		if ing.OriginalText == "" {
			return
		}
		if amount, amountMax := recipescrape.ParseAmount(quantityValue(qty)); amount != nil {
			ing.Amount, ing.AmountMax = amount, amountMax
		}
		if unit := unitValue(container); unit != "" {
			ing.Unit = stringPtr(recipescrape.NormalizeUnit(unit))
		}
		ing.Section = optionalString(sectionOf(sections, container.Get(0), nil))
		out = append(out, ing)
	})

	return out
}

// namedIngredient builds an ingredient from a name element and the
// quantity and unit elements of its container.
func (s *DataAttributeStrategy) namedIngredient(name, container *goquery.Selection) (recipescrape.Ingredient, bool) {
	var nameText string
	if name.IsMatcher(dataQuantitySel) || name.IsMatcher(dataUnitSel) {
		// All attributes on one element: the text is the whole line.
		nameText = attrValue(name, nameAttrs...)
	} else {
		nameText = cleanText(name)
		if nameText == "" {
			nameText = attrValue(name, nameAttrs...)
		}
	}
	if nameText == "" {
		return recipescrape.Ingredient{}, false
	}

	ing := recipescrape.Ingredient{Name: nameText}

	var parts []string
	if qty := matchOrFind(container, dataQuantitySel); qty.Length() > 0 {
		text := quantityValue(qty)
		ing.Amount, ing.AmountMax = recipescrape.ParseAmount(text)
		parts = append(parts, text)
	}
	if unit := unitValue(container); unit != "" {
		ing.Unit = stringPtr(recipescrape.NormalizeUnit(unit))
		parts = append(parts, unit)
	}
	parts = append(parts, nameText)

	ing.OriginalText = cleanText(container)
	if ing.OriginalText == "" {
		ing.OriginalText = strings.Join(parts, " ")
	}
	return ing, true
}

// sharedContainer returns the nearest element, starting at name itself,
// that holds a quantity or unit and no other name element. Returns nil if
// there is none within maxContainerDepth levels.
func sharedContainer(name *goquery.Selection) *goquery.Selection {
	cur := name
	for depth := 0; depth <= maxContainerDepth && cur.Length() > 0; depth++ {
		if countMatches(cur, dataNameSel) > 1 {
			return nil
		}
		if countMatches(cur, dataQuantitySel) > 0 || countMatches(cur, dataUnitSel) > 0 {
			return cur
		}
		cur = cur.Parent()
	}
	return nil
}

// countMatches counts elements matching m in s, including s itself.
func countMatches(s *goquery.Selection, m goquery.Matcher) int {
	n := s.FindMatcher(m).Length()
	if s.IsMatcher(m) {
		n++
	}
	return n
}

// matchOrFind returns s if it matches m, else the first descendant that does.
func matchOrFind(s *goquery.Selection, m goquery.Matcher) *goquery.Selection {
	if s.IsMatcher(m) {
		return s
	}
	return s.FindMatcher(m).First()
}

// quantityValue prefers a numeric attribute value over the element text.
func quantityValue(qty *goquery.Selection) string {
	if v := attrValue(qty, quantityAttrs...); v != "" {
		if amount, _ := recipescrape.ParseAmount(v); amount != nil {
			return v
		}
	}
	return cleanText(qty)
}

// unitValue reads the unit of a container from the attribute value, or the
// unit element's text when the attribute is only a marker.
func unitValue(container *goquery.Selection) string {
	unit := matchOrFind(container, dataUnitSel)
	if unit.Length() == 0 {
		return ""
	}
	if v := attrValue(unit, unitAttrs...); v != "" {
		if _, ok := recipescrape.ParseFraction(v); !ok {
			return v
		}
	}
	if unit.IsMatcher(dataQuantitySel) {
		return ""
	}
	return cleanText(unit)
}

// attrValue returns the first non-empty value among attrs.
func attrValue(s *goquery.Selection, attrs ...string) string {
	for _, attr := range attrs {
		if v := strings.TrimSpace(s.AttrOr(attr, "")); v != "" && v != "true" {
			return v
		}
	}
	return ""
}

func hasAnyAttr(s *goquery.Selection, attrs ...string) bool {
	for _, attr := range attrs {
		if _, ok := s.Attr(attr); ok {
			return true
		}
	}
	return false
}

// isUsed reports whether n or one of its ancestors was already read.
func isUsed(used map[*html.Node]bool, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if used[n] {
			return true
		}
	}
	return false
}
