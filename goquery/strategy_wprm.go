package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/recipescrape"
)

var _ Strategy = (*PluginStrategy)(nil)

var (
	wprmContainerSel       = cascadia.MustCompile(".wprm-recipe-container, .wprm-recipe")
	wprmNameSel            = cascadia.MustCompile(".wprm-recipe-name")
	wprmSummarySel         = cascadia.MustCompile(".wprm-recipe-summary")
	wprmImageSel           = cascadia.MustCompile(".wprm-recipe-image img")
	wprmServingsSel        = cascadia.MustCompile(".wprm-recipe-servings")
	wprmIngredientGroupSel = cascadia.MustCompile(".wprm-recipe-ingredient-group")
	wprmGroupNameSel       = cascadia.MustCompile(".wprm-recipe-group-name")
	wprmIngredientSel      = cascadia.MustCompile(".wprm-recipe-ingredient")
	wprmAmountSel          = cascadia.MustCompile(".wprm-recipe-ingredient-amount")
	wprmUnitSel            = cascadia.MustCompile(".wprm-recipe-ingredient-unit")
	wprmIngredientNameSel  = cascadia.MustCompile(".wprm-recipe-ingredient-name")
	wprmNotesSel           = cascadia.MustCompile(".wprm-recipe-ingredient-notes")
	wprmInstructionSel     = cascadia.MustCompile(".wprm-recipe-instruction")
	wprmInstructionTextSel = cascadia.MustCompile(".wprm-recipe-instruction-text")
)

// PluginStrategy extracts recipes published with the WP Recipe Maker
// plugin. Validated against WPRM 8.x and 9.x markup.
//
// The plugin exposes amount, unit, name and notes of every ingredient in
// separate elements, and servings and times as dedicated fields, so no
// free-text parsing is needed:
// - .wprm-recipe-ingredient-group for named ingredient sections
// - .wprm-recipe-ingredient-{amount,unit,name,notes} per ingredient
// - .wprm-recipe-{prep,cook}_time-{hours,minutes} for times
// - .wprm-recipe-instruction-text per step
//
// Fields the card leaves out are backfilled from the page's linked data.
type PluginStrategy struct{}

// NewPluginStrategy creates a new PluginStrategy.
func NewPluginStrategy() *PluginStrategy {
	return &PluginStrategy{}
}

// Name returns the strategy's identifier.
func (s *PluginStrategy) Name() string {
	return "wprm"
}

// Format returns recipescrape.FormatPluginMarkup.
func (s *PluginStrategy) Format() recipescrape.Format {
	return recipescrape.FormatPluginMarkup
}

// Detect reports whether the page has a WPRM recipe container.
func (s *PluginStrategy) Detect(doc *goquery.Document) bool {
	return doc.FindMatcher(wprmContainerSel).Length() > 0
}

// Extract reads the first WPRM recipe card on the page.
func (s *PluginStrategy) Extract(doc *goquery.Document) (*recipescrape.ScrapedRecipe, bool) {
	card := doc.FindMatcher(wprmContainerSel).First()
	if card.Length() == 0 {
		return nil, false
	}

	rec := &recipescrape.ScrapedRecipe{
		Title:        cleanText(card.FindMatcher(wprmNameSel).First()),
		Description:  optionalString(cleanText(card.FindMatcher(wprmSummarySel).First())),
		Ingredients:  s.ingredients(card),
		Instructions: s.instructions(card),
	}

	if img := card.FindMatcher(wprmImageSel).First(); img.Length() > 0 {
		rec.ImageURL = optionalString(imageSource(img))
	}
	if n, ok := parseFirstInt(cleanText(card.FindMatcher(wprmServingsSel).First())); ok {
		rec.Servings = intPtr(n)
	}
	if minutes, ok := wprmMinutes(card, "prep_time"); ok {
		rec.PrepTime = intPtr(minutes)
	}
	if minutes, ok := wprmMinutes(card, "cook_time"); ok {
		rec.CookTime = intPtr(minutes)
	}
	Enrich(rec, doc)

	return rec, true
}

// ingredients reads ingredients group by group so that each keeps its
// section label. Cards without groups are read directly.
func (s *PluginStrategy) ingredients(card *goquery.Selection) []recipescrape.Ingredient {
	var out []recipescrape.Ingredient

	groups := card.FindMatcher(wprmIngredientGroupSel)
	if groups.Length() == 0 {
		card.FindMatcher(wprmIngredientSel).Each(func(_ int, li *goquery.Selection) {
			if ing, ok := s.ingredient(li, ""); ok {
				out = append(out, ing)
			}
		})
		return out
	}

	groups.Each(func(_ int, group *goquery.Selection) {
		section := cleanText(group.FindMatcher(wprmGroupNameSel).First())
		group.FindMatcher(wprmIngredientSel).Each(func(_ int, li *goquery.Selection) {
			if ing, ok := s.ingredient(li, section); ok {
				out = append(out, ing)
			}
		})
	})
	return out
}

// ingredient builds one Ingredient from the plugin's sub-fields. The
// sub-field texts joined together form OriginalText.
func (s *PluginStrategy) ingredient(li *goquery.Selection, section string) (recipescrape.Ingredient, bool) {
	amountText := cleanText(li.FindMatcher(wprmAmountSel))
	unitText := cleanText(li.FindMatcher(wprmUnitSel))
	name := cleanText(li.FindMatcher(wprmIngredientNameSel))
	notes := cleanText(li.FindMatcher(wprmNotesSel))

	if name == "" {
		// Some themes render the ingredient without sub-fields.
		line := cleanText(li)
		if line == "" {
			return recipescrape.Ingredient{}, false
		}
		ing := recipescrape.ParseIngredient(line)
		ing.Section = optionalString(section)
		return ing, true
	}

	var parts []string
	for _, p := range []string{amountText, unitText, name, notes} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	ing := recipescrape.Ingredient{
		Name:         name,
		Section:      optionalString(section),
		OriginalText: strings.Join(parts, " "),
	}
	ing.Amount, ing.AmountMax = recipescrape.ParseAmount(amountText)
	if unitText != "" {
		ing.Unit = stringPtr(recipescrape.NormalizeUnit(unitText))
	}
	return ing, true
}

func (s *PluginStrategy) instructions(card *goquery.Selection) []string {
	var lines []string
	card.FindMatcher(wprmInstructionSel).Each(func(_ int, step *goquery.Selection) {
		text := step.FindMatcher(wprmInstructionTextSel)
		if text.Length() == 0 {
			text = step
		}
		lines = append(lines, cleanText(text))
	})
	return recipescrape.CleanInstructions(lines)
}

// wprmMinutes reads a WPRM time field, e.g. field "prep_time" from
// .wprm-recipe-prep_time-hours and .wprm-recipe-prep_time-minutes.
func wprmMinutes(card *goquery.Selection, field string) (int, bool) {
	hours, hasHours := parseFirstInt(cleanText(card.Find(".wprm-recipe-" + field + "-hours").First()))
	minutes, hasMinutes := parseFirstInt(cleanText(card.Find(".wprm-recipe-" + field + "-minutes").First()))
	if !hasHours && !hasMinutes {
		return 0, false
	}
	return hours*60 + minutes, true
}
