package recipescrape

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// unitSynonyms maps each canonical unit to the surface forms recipes use
// for it. Single-letter abbreviations that clash case-insensitively
// ("t" and "T", "c", "l") are deliberately absent.
var unitSynonyms = map[string][]string{
	"teaspoon":    {"teaspoon", "teaspoons", "tsp", "tsps", "tspn"},
	"tablespoon":  {"tablespoon", "tablespoons", "tbsp", "tbsps", "tbs", "tbl", "tbls", "tblsp"},
	"cup":         {"cup", "cups"},
	"fluid ounce": {"fluid ounce", "fluid ounces", "fl oz", "fl. oz", "floz"},
	"pint":        {"pint", "pints", "pt", "pts"},
	"quart":       {"quart", "quarts", "qt", "qts"},
	"gallon":      {"gallon", "gallons", "gal", "gals"},
	"milliliter":  {"milliliter", "milliliters", "millilitre", "millilitres", "ml", "mls"},
	"liter":       {"liter", "liters", "litre", "litres", "ltr"},
	"ounce":       {"ounce", "ounces", "oz"},
	"pound":       {"pound", "pounds", "lb", "lbs"},
	"gram":        {"gram", "grams", "gramme", "grammes", "g", "gr"},
	"kilogram":    {"kilogram", "kilograms", "kg", "kgs", "kilo", "kilos"},
	"milligram":   {"milligram", "milligrams", "mg"},
	"pinch":       {"pinch", "pinches"},
	"dash":        {"dash", "dashes"},
	"clove":       {"clove", "cloves"},
	"can":         {"can", "cans", "tin", "tins"},
	"package":     {"package", "packages", "pkg", "pkgs", "packet", "packets"},
	"stick":       {"stick", "sticks"},
	"slice":       {"slice", "slices"},
	"piece":       {"piece", "pieces", "pc", "pcs"},
	"bunch":       {"bunch", "bunches"},
	"sprig":       {"sprig", "sprigs"},
	"handful":     {"handful", "handfuls"},
	"to taste":    {"to taste"},
}

var (
	// unitLookup is the reverse table: lowercase surface form -> canonical.
	unitLookup map[string]string

	// unitSurfaces lists every surface form, longest first, for anchored matching.
	unitSurfaces []string

	// canonicalUnits is the sorted canonical vocabulary.
	canonicalUnits []string
)

func init() {
	unitLookup = make(map[string]string)
	for canonical, forms := range unitSynonyms {
		canonicalUnits = append(canonicalUnits, canonical)
		unitLookup[canonical] = canonical
		for _, form := range forms {
			unitLookup[strings.ToLower(form)] = canonical
		}
	}
	sort.Strings(canonicalUnits)

	for form := range unitLookup {
		unitSurfaces = append(unitSurfaces, form)
	}
	sort.Slice(unitSurfaces, func(i, j int) bool {
		if len(unitSurfaces[i]) != len(unitSurfaces[j]) {
			return len(unitSurfaces[i]) > len(unitSurfaces[j])
		}
		return unitSurfaces[i] < unitSurfaces[j]
	})
}

// NormalizeUnit returns the canonical name for a unit token, matched
// case-insensitively and ignoring a trailing period. Unknown tokens are
// returned unchanged so they survive for display.
func NormalizeUnit(token string) string {
	key := strings.ToLower(strings.TrimSpace(token))
	if canonical, ok := unitLookup[key]; ok {
		return canonical
	}
	if canonical, ok := unitLookup[strings.TrimSuffix(key, ".")]; ok {
		return canonical
	}
	return token
}

// IsCanonicalUnit reports whether unit is one of the canonical names.
func IsCanonicalUnit(unit string) bool {
	_, ok := unitSynonyms[unit]
	return ok
}

// Units returns the canonical unit vocabulary in sorted order.
func Units() []string {
	units := make([]string, len(canonicalUnits))
	copy(units, canonicalUnits)
	return units
}

// MatchUnit finds the longest unit surface form at the start of text.
// The match must end on a word boundary, so "g" never matches the start of
// "garlic". A period directly after the unit ("tbsp.") is consumed too.
// It returns the canonical unit and the exact text that was matched.
func MatchUnit(text string) (canonical string, matched string, ok bool) {
	for _, form := range unitSurfaces {
		if len(text) < len(form) || !strings.EqualFold(text[:len(form)], form) {
			continue
		}

		end := len(form)
		if end < len(text) && text[end] == '.' {
			end++
		}
		if !atWordBoundary(text, end) {
			continue
		}

		return unitLookup[form], text[:end], true
	}
	return "", "", false
}

// atWordBoundary reports whether position i in s is not followed by a
// letter or digit.
func atWordBoundary(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
