package recipescrape

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// numberPattern matches one quantity: a mixed number, a simple fraction,
// an integer or a decimal. Mixed numbers come first so "1 1/2" is taken whole.
const numberPattern = `\d+\s+\d+\s*/\s*\d+|\d+\s*/\s*\d+|\d+(?:\.\d+)?|\.\d+`

// quantityRe matches a leading quantity, optionally a range joined by a
// hyphen, an en or em dash, or the word "to".
var quantityRe = regexp.MustCompile(`^(` + numberPattern + `)(?:\s*(?:-|–|—|\bto\b)\s*(` + numberPattern + `))?`)

var toTasteSuffixRe = regexp.MustCompile(`(?i)[\s,]*(?:or\s+)?to\s+taste\.?$`)

// ParseIngredient turns one free-text ingredient line into an Ingredient.
//
// The line is cleaned of list markers first and OriginalText holds that
// cleaned line. A leading quantity (integer, decimal, fraction, mixed number
// or range) becomes Amount and AmountMax; a known unit directly after it is
// normalized into Unit; the rest is Name. Lines without a leading quantity
// become Name in full, except that a trailing "to taste" is split off into
// Unit. Unknown numeric or unit tokens never fail the line.
func ParseIngredient(line string) Ingredient {
	cleaned := CleanLine(line)
	ing := Ingredient{OriginalText: cleaned}
	if cleaned == "" {
		return ing
	}

	text := NormalizeUnicodeFractions(cleaned)

	m := quantityRe.FindStringSubmatchIndex(text)
	var low float64
	ok := m != nil && quantityEndsCleanly(text, m[1])
	if ok {
		low, ok = ParseMixedNumber(text[m[2]:m[3]])
	}
	if !ok {
		// No usable quantity, e.g. "1/0 cup": no unit is matched either.
		ing.Name = text
		if loc := toTasteSuffixRe.FindStringIndex(text); loc != nil && loc[0] > 0 {
			ing.Name = strings.TrimSpace(text[:loc[0]])
			ing.Unit = ptr("to taste")
		}
		return ing
	}

	ing.Amount = ptr(low)
	if m[4] >= 0 {
		if high, ok := ParseMixedNumber(text[m[4]:m[5]]); ok {
			ing.AmountMax = ptr(high)
		}
	}

	rest := strings.TrimSpace(text[m[1]:])
	if canonical, matched, ok := MatchUnit(rest); ok {
		ing.Unit = ptr(canonical)
		rest = strings.TrimSpace(rest[len(matched):])
		rest = strings.TrimSpace(trimPrefixFold(rest, "of "))
	}

	ing.Name = rest
	if ing.Name == "" {
		ing.Name = cleaned
	}

	return ing
}

// ParseAmount parses a standalone quantity such as "1 1/2", "2-3" or "½".
// Both results are nil when text is not a quantity; amountMax is set only
// for ranges. Used for markup that exposes the amount in its own field.
func ParseAmount(text string) (amount, amountMax *float64) {
	text = strings.TrimSpace(NormalizeUnicodeFractions(text))
	m := quantityRe.FindStringSubmatchIndex(text)
	if m == nil || m[1] != len(text) {
		return nil, nil
	}

	low, ok := ParseMixedNumber(text[m[2]:m[3]])
	if !ok {
		return nil, nil
	}
	amount = ptr(low)
	if m[4] >= 0 {
		if high, ok := ParseMixedNumber(text[m[4]:m[5]]); ok {
			amountMax = ptr(high)
		}
	}
	return amount, amountMax
}

// ParseIngredients parses each non-empty line, attaching section when set.
func ParseIngredients(lines []string, section string) []Ingredient {
	var out []Ingredient
	for _, line := range lines {
		ing := ParseIngredient(line)
		if ing.OriginalText == "" {
			continue
		}
		if section != "" {
			ing.Section = ptr(section)
		}
		out = append(out, ing)
	}
	return out
}

// quantityEndsCleanly rejects quantities glued to words or sizes, such as
// "2nd" or "1-inch", which are not amounts.
func quantityEndsCleanly(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[end:])
	if unicode.IsSpace(r) {
		return true
	}
	// "200g", "2cups": a unit glued to the number.
	if unicode.IsLetter(r) {
		_, _, ok := MatchUnit(text[end:])
		return ok
	}
	return r == '(' || r == ','
}

func trimPrefixFold(s, prefix string) string {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):]
	}
	return s
}

func ptr[T any](v T) *T {
	return &v
}
