// Package arabic canonicalizes Arabic script so that orthographic variants of
// the same word compare equal.
package arabic

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Letters the normalizer folds into.
const (
	Alef = 'ا'
	Yeh  = 'ي'
	Heh  = 'ه'
)

// diacritics covers the harakat block (fathatan through wavy hamza below)
// and the superscript alef.
var diacritics = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x064B, Hi: 0x065F, Stride: 1},
		{Lo: 0x0670, Hi: 0x0670, Stride: 1},
	},
}

func isDiacritic(r rune) bool {
	return unicode.Is(diacritics, r)
}

func foldAlef(r rune) rune {
	switch r {
	case 'إ', 'أ', 'آ', 'ا':
		return Alef
	}
	return r
}

func foldYeh(r rune) rune {
	switch r {
	case 'ي', 'ى':
		return Yeh
	}
	return r
}

func foldTehMarbuta(r rune) rune {
	if r == 'ة' {
		return Heh
	}
	return r
}

// newNormalizer returns a fresh chain; chains carry buffers and must not be
// shared between goroutines.
func newNormalizer() transform.Transformer {
	return transform.Chain(
		runes.Remove(runes.Predicate(isDiacritic)),
		runes.Map(foldAlef),
		runes.Map(foldYeh),
		runes.Map(foldTehMarbuta),
	)
}

// Normalize canonicalizes v if it is a string. Any other value, including
// nil, has no textual content and yields "".
func Normalize(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return NormalizeString(s)
}

// NormalizeString strips diacritics, then folds alef forms, yeh forms and
// teh marbuta to a single letter each. It is pure and idempotent.
func NormalizeString(s string) string {
	if s == "" {
		return ""
	}
	result, _, _ := transform.String(newNormalizer(), s)
	return result
}
