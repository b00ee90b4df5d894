package recipescrape

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// listNumberRe matches "1.", "2)", "3-" and "4:" list markers. The
	// punctuation must be followed by whitespace (or a closing paren by
	// anything), so "1.5 cups" and "2-3 tbsp" are left alone.
	listNumberRe = regexp.MustCompile(`^\s*\d{1,3}(?:[.:](?:\s+|$)|\)\s*|-\s+)`)

	// stepLabelRe matches a leading "Step 3:" label.
	stepLabelRe = regexp.MustCompile(`(?i)^\s*step\s+\d{1,3}\s*[.:)\-]?\s*`)

	asciiBulletRe = regexp.MustCompile(`^[-*+]\s+`)
)

// CleanLine strips list numbering, bullet glyphs and ASCII bullets from
// the start of a line and collapses inner whitespace.
//
// A bare leading number is never treated as a marker: "1 yellow onion"
// is returned as is.
func CleanLine(line string) string {
	s := strings.TrimSpace(line)

	if loc := stepLabelRe.FindStringIndex(s); loc != nil {
		s = s[loc[1]:]
	} else if loc := listNumberRe.FindStringIndex(s); loc != nil {
		s = s[loc[1]:]
	}

	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return isBulletGlyph(r) || unicode.IsSpace(r)
	})

	if loc := asciiBulletRe.FindStringIndex(s); loc != nil {
		s = s[loc[1]:]
	}

	return strings.Join(strings.Fields(s), " ")
}

// CleanInstructions cleans every line and drops the ones left empty.
func CleanInstructions(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if cleaned := CleanLine(line); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// isBulletGlyph reports whether r is a bullet, checkbox or arrow glyph
// commonly used as a list marker.
func isBulletGlyph(r rune) bool {
	switch {
	case r == '·', // middle dot
		r == '•', r == '‣', r == '⁃', r == '∙',
		r >= '←' && r <= '⇿', // arrows
		r >= '■' && r <= '◿', // geometric shapes
		r >= '☐' && r <= '☒', // ballot boxes
		r >= '✓' && r <= '✘', // check marks
		r >= '➔' && r <= '➿', // dingbat arrows
		r == '⮚', r == '⯈':
		return true
	}
	return false
}
