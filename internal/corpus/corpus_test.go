package corpus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/knowledge-engine/quranfruits/internal/corpus"
)

func TestNewDropsIncomplete(t *testing.T) {
	c := corpus.New(
		corpus.Verse{Surah: "1", Number: corpus.VerseNumber{Value: 1, Valid: true}, Text: "الحمد لله"},
		corpus.Verse{Surah: "", Text: "رب العالمين"},
		corpus.Verse{Surah: "1", Text: ""},
	)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, []string{"الحمد لله"}, c.Texts())
}

func TestVersesReturnsCopy(t *testing.T) {
	c := corpus.New(corpus.Verse{Surah: "1", Text: "الحمد"})
	verses := c.Verses()
	verses[0].Text = "changed"
	assert.Equal(t, "الحمد", c.At(0).Text)
}

func TestNilCorpus(t *testing.T) {
	var c *corpus.Corpus
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Verses())
	assert.Empty(t, c.Texts())
}

func TestParseVerseNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want corpus.VerseNumber
	}{
		{"7", corpus.VerseNumber{Value: 7, Valid: true}},
		{" 12 ", corpus.VerseNumber{Value: 12, Valid: true}},
		{"3.0", corpus.VerseNumber{Value: 3, Valid: true}},
		{"3.5", corpus.VerseNumber{}},
		{"abc", corpus.VerseNumber{}},
		{"NaN", corpus.VerseNumber{}},
		{"Inf", corpus.VerseNumber{}},
		{"", corpus.VerseNumber{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, corpus.ParseVerseNumber(tt.raw), "raw %q", tt.raw)
	}
}
