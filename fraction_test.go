package recipescrape_test

import (
	"testing"

	"github.com/fwojciec/recipescrape"
	"github.com/stretchr/testify/assert"
)

func TestParseFraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{name: "simple fraction", input: "1/2", want: 0.5, ok: true},
		{name: "improper fraction", input: "3/2", want: 1.5, ok: true},
		{name: "integer", input: "3", want: 3, ok: true},
		{name: "decimal", input: "1.25", want: 1.25, ok: true},
		{name: "leading dot decimal", input: ".5", want: 0.5, ok: true},
		{name: "surrounding whitespace", input: " 2/4 ", want: 0.5, ok: true},
		{name: "zero denominator", input: "1/0", ok: false},
		{name: "word", input: "cup", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "NaN is not a number here", input: "NaN", ok: false},
		{name: "exponent rejected", input: "1e3", ok: false},
		{name: "mixed number is not a simple fraction", input: "1 1/2", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := recipescrape.ParseFraction(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParseMixedNumber(t *testing.T) {
	t.Parallel()

	t.Run("sums whole and fractional parts", func(t *testing.T) {
		t.Parallel()

		got, ok := recipescrape.ParseMixedNumber("1 1/2")
		assert.True(t, ok)
		assert.InDelta(t, 1.5, got, 1e-9)
	})

	t.Run("falls back to simple fraction", func(t *testing.T) {
		t.Parallel()

		got, ok := recipescrape.ParseMixedNumber("3/4")
		assert.True(t, ok)
		assert.InDelta(t, 0.75, got, 1e-9)
	})

	t.Run("falls back to integer", func(t *testing.T) {
		t.Parallel()

		got, ok := recipescrape.ParseMixedNumber("2")
		assert.True(t, ok)
		assert.InDelta(t, 2.0, got, 1e-9)
	})

	t.Run("rejects zero denominator in fractional part", func(t *testing.T) {
		t.Parallel()

		_, ok := recipescrape.ParseMixedNumber("2 1/0")
		assert.False(t, ok)
	})
}

func TestNormalizeUnicodeFractions(t *testing.T) {
	t.Parallel()

	t.Run("replaces standalone glyph", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "3/4 cup", recipescrape.NormalizeUnicodeFractions("¾ cup"))
	})

	t.Run("separates glyph from preceding digit", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "1 1/2 cups", recipescrape.NormalizeUnicodeFractions("1½ cups"))
	})

	t.Run("replaces fraction slash", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "1/3 cup", recipescrape.NormalizeUnicodeFractions("1⁄3 cup"))
	})

	t.Run("leaves plain text untouched", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "salt and pepper", recipescrape.NormalizeUnicodeFractions("salt and pepper"))
	})

	t.Run("round-trips numerically through ParseFraction", func(t *testing.T) {
		t.Parallel()

		for glyph, want := range map[string]float64{"¼": 0.25, "½": 0.5, "¾": 0.75, "⅛": 0.125, "⅔": 2.0 / 3.0} {
			got, ok := recipescrape.ParseFraction(recipescrape.NormalizeUnicodeFractions(glyph))
			assert.True(t, ok, glyph)
			assert.InDelta(t, want, got, 1e-9, glyph)
		}
	})
}
