package recipescrape

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// unicodeFractions maps vulgar-fraction glyphs to their ASCII form.
var unicodeFractions = map[rune]string{
	'¼': "1/4",
	'½': "1/2",
	'¾': "3/4",
	'⅐': "1/7",
	'⅑': "1/9",
	'⅒': "1/10",
	'⅓': "1/3",
	'⅔': "2/3",
	'⅕': "1/5",
	'⅖': "2/5",
	'⅗': "3/5",
	'⅘': "4/5",
	'⅙': "1/6",
	'⅚': "5/6",
	'⅛': "1/8",
	'⅜': "3/8",
	'⅝': "5/8",
	'⅞': "7/8",
}

var (
	decimalRe     = regexp.MustCompile(`^(?:\d+(?:\.\d*)?|\.\d+)$`)
	mixedNumberRe = regexp.MustCompile(`^(\d+)\s+(\d+)\s*/\s*(\d+)$`)
)

// NormalizeUnicodeFractions replaces vulgar-fraction glyphs with "n/d".
// A glyph directly following a digit is separated by a space so that
// "1½" reads as the mixed number "1 1/2".
func NormalizeUnicodeFractions(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	var prev rune
	for _, r := range text {
		switch {
		case unicodeFractions[r] != "":
			if unicode.IsDigit(prev) {
				sb.WriteByte(' ')
			}
			sb.WriteString(unicodeFractions[r])
		case r == '⁄': // fraction slash
			sb.WriteByte('/')
		default:
			sb.WriteRune(r)
		}
		prev = r
	}

	return sb.String()
}

// ParseFraction parses "a/b", a bare integer or a decimal.
// The second return value is false for anything else, including a zero
// denominator.
func ParseFraction(token string) (float64, bool) {
	token = strings.TrimSpace(token)

	if num, den, ok := strings.Cut(token, "/"); ok {
		n, okN := parseDecimal(num)
		d, okD := parseDecimal(den)
		if !okN || !okD || d == 0 {
			return 0, false
		}
		return n / d, true
	}

	return parseDecimal(token)
}

// ParseMixedNumber parses "<int> <num>/<den>", falling back to ParseFraction.
func ParseMixedNumber(text string) (float64, bool) {
	text = strings.TrimSpace(text)

	if m := mixedNumberRe.FindStringSubmatch(text); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		frac, ok := ParseFraction(m[2] + "/" + m[3])
		if !ok {
			return 0, false
		}
		return whole + frac, true
	}

	return ParseFraction(text)
}

// parseDecimal accepts plain digits with an optional decimal part only;
// strconv alone would also take "NaN", "Inf" and exponents.
func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !decimalRe.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
