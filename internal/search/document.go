package search

import (
	"strings"
	"unicode"

	"github.com/knowledge-engine/quranfruits/internal/corpus"
)

// Document is an indexed verse with its position in the corpus.
type Document struct {
	Position int
	Verse    corpus.Verse
	Vector   SparseVector
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// Tokenize splits text into lowercase word tokens. A token is a run of at
// least two letters, digits or underscores; anything else separates tokens.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if len([]rune(field)) < 2 { // single characters carry no meaning
			continue
		}
		tokens = append(tokens, strings.ToLower(field))
	}
	return tokens
}
