package search

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptyVocabulary is returned when the fitted documents contain no tokens.
var ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain no terms")

// Vectorizer turns text into a vector
type Vectorizer interface {
	Fit(docs []string) error
	Transform(text string) SparseVector
	// Size is the number of vocabulary columns learned by Fit.
	Size() int
}

var _ Vectorizer = (*TFIDFVectorizer)(nil)

// TFIDFVectorizer implements Term Frequency - Inverse Document Frequency
// with raw term counts, smoothed IDF and L2-normalized output.
type TFIDFVectorizer struct {
	Vocabulary map[string]int
	IDF        []float64
}

func NewTFIDFVectorizer() *TFIDFVectorizer {
	return &TFIDFVectorizer{
		Vocabulary: make(map[string]int),
	}
}

func (v *TFIDFVectorizer) Size() int {
	return len(v.Vocabulary)
}

// Fit learns the vocabulary and IDF weights from docs, replacing any
// previous fit. Vocabulary columns follow sorted term order.
func (v *TFIDFVectorizer) Fit(docs []string) error {
	docCount := float64(len(docs))
	wordDocCounts := make(map[string]int)

	for _, doc := range docs {
		seenInDoc := make(map[string]bool)
		for _, token := range Tokenize(doc) {
			if !seenInDoc[token] {
				wordDocCounts[token]++
				seenInDoc[token] = true
			}
		}
	}
	if len(wordDocCounts) == 0 {
		return ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(wordDocCounts))
	for term := range wordDocCounts {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		vocabulary[term] = i
		// idf = ln((1 + n) / (1 + df)) + 1
		idf[i] = math.Log((1+docCount)/(1+float64(wordDocCounts[term]))) + 1
	}

	v.Vocabulary = vocabulary
	v.IDF = idf
	return nil
}

// Transform projects text onto the learned vocabulary. Unknown terms are
// ignored, so text with no known terms yields the zero vector.
func (v *TFIDFVectorizer) Transform(text string) SparseVector {
	tf := make(map[int]float64)
	for _, token := range Tokenize(text) {
		if idx, exists := v.Vocabulary[token]; exists {
			tf[idx]++
		}
	}

	vec := SparseVector{
		Indices: make([]int, 0, len(tf)),
		Values:  make([]float64, 0, len(tf)),
	}
	for idx := range tf {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)

	var sumSq float64
	for _, idx := range vec.Indices {
		w := tf[idx] * v.IDF[idx]
		vec.Values = append(vec.Values, w)
		sumSq += w * w
	}

	if sumSq > 0 {
		norm := math.Sqrt(sumSq)
		for i := range vec.Values {
			vec.Values[i] /= norm
		}
	}
	return vec
}
