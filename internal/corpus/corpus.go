// Package corpus holds the in-memory table of verses and the loader that
// builds it from a delimited file.
package corpus

// Corpus is an immutable, ordered collection of verses in input order.
type Corpus struct {
	verses []Verse
}

// New builds a corpus from verses whose text is already normalized.
// Incomplete verses are dropped, matching the loader's policy.
func New(verses ...Verse) *Corpus {
	kept := make([]Verse, 0, len(verses))
	for _, v := range verses {
		if v.Complete() {
			kept = append(kept, v)
		}
	}
	return &Corpus{verses: kept}
}

// Len returns the number of verses. A nil corpus is empty.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.verses)
}

// At returns the verse at position i.
func (c *Corpus) At(i int) Verse {
	return c.verses[i]
}

// Verses returns a copy of the verses in corpus order.
func (c *Corpus) Verses() []Verse {
	if c == nil {
		return nil
	}
	out := make([]Verse, len(c.verses))
	copy(out, c.verses)
	return out
}

// Texts returns the normalized text of every verse in corpus order.
func (c *Corpus) Texts() []string {
	texts := make([]string, c.Len())
	for i := range texts {
		texts[i] = c.verses[i].Text
	}
	return texts
}
