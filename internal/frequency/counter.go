package frequency

import (
	"strings"

	"github.com/knowledge-engine/quranfruits/internal/corpus"
)

// CategoryCount is the number of mentions found for one category.
type CategoryCount struct {
	Label string
	Count int
}

// Counts holds one entry per lexicon category, in lexicon order.
type Counts []CategoryCount

// Get returns the count for label, or 0 if the label is unknown.
func (c Counts) Get(label string) int {
	for _, cc := range c {
		if cc.Label == label {
			return cc.Count
		}
	}
	return 0
}

// Map returns the counts keyed by label.
func (c Counts) Map() map[string]int {
	m := make(map[string]int, len(c))
	for _, cc := range c {
		m[cc.Label] = cc.Count
	}
	return m
}

// Total returns the sum over all categories.
func (c Counts) Total() int {
	total := 0
	for _, cc := range c {
		total += cc.Count
	}
	return total
}

// Count tallies, per category, the verses containing each variant and sums
// over variants. A verse holding two variants of one category counts twice.
func Count(c *corpus.Corpus, lex Lexicon) Counts {
	texts := c.Texts()
	for i, t := range texts {
		texts[i] = strings.ToLower(t)
	}

	counts := make(Counts, len(lex.Categories))
	for i, category := range lex.Categories {
		total := 0
		for _, variant := range category.Variants {
			needle := strings.ToLower(variant)
			for _, text := range texts {
				if strings.Contains(text, needle) {
					total++
				}
			}
		}
		counts[i] = CategoryCount{Label: category.Label, Count: total}
	}
	return counts
}
