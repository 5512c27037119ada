// Package search provides a TF-IDF similarity index over a verse corpus.
package search

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/knowledge-engine/quranfruits/internal/arabic"
	"github.com/knowledge-engine/quranfruits/internal/corpus"
)

var (
	// ErrNotBuilt is returned when an index is queried before Build succeeded.
	ErrNotBuilt = errors.New("search index queried before it was built")
	// ErrInvalidTopN is returned for a non-positive result limit.
	ErrInvalidTopN = errors.New("top_n must be a positive integer")
)

// Result holds a matching verse and its score
type Result struct {
	Verse    corpus.Verse
	Position int
	Score    float64
}

// Index is a build-once, query-many TF-IDF model of a corpus. It is not
// modified by Query, so concurrent queries after Build are safe.
type Index struct {
	logger        *logrus.Entry
	newVectorizer func() Vectorizer
	vectorizer    Vectorizer
	documents     []*Document
	built         bool
}

// NewIndex returns an unbuilt index backed by TF-IDF.
func NewIndex(logger *logrus.Entry) *Index {
	return NewIndexWithVectorizer(logger, func() Vectorizer {
		return NewTFIDFVectorizer()
	})
}

// NewIndexWithVectorizer returns an unbuilt index that fits a fresh
// vectorizer from newVectorizer on every Build.
func NewIndexWithVectorizer(logger *logrus.Entry, newVectorizer func() Vectorizer) *Index {
	if logger == nil {
		logger = logrus.WithField("component", "search_index")
	}
	return &Index{logger: logger, newVectorizer: newVectorizer}
}

// Build fits the vectorizer on the corpus texts and vectorizes every verse.
// On failure the index keeps its previous state.
func (ix *Index) Build(c *corpus.Corpus) error {
	vectorizer := ix.newVectorizer()
	if err := vectorizer.Fit(c.Texts()); err != nil {
		return fmt.Errorf("build index over %d verses: %w", c.Len(), err)
	}

	documents := make([]*Document, c.Len())
	for i, verse := range c.Verses() {
		documents[i] = &Document{
			Position: i,
			Verse:    verse,
			Vector:   vectorizer.Transform(verse.Text),
		}
	}

	ix.vectorizer = vectorizer
	ix.documents = documents
	ix.built = true

	ix.logger.WithFields(logrus.Fields{
		"documents":  len(documents),
		"vocabulary": vectorizer.Size(),
	}).Info("Search index built")
	return nil
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	return len(ix.documents)
}

// VocabularySize returns the number of learned terms.
func (ix *Index) VocabularySize() int {
	if ix.vectorizer == nil {
		return 0
	}
	return ix.vectorizer.Size()
}

// Query returns up to topN verses ranked by cosine similarity to text, ties
// kept in corpus order. The query is normalized like the corpus before it is
// projected onto the vocabulary.
func (ix *Index) Query(text string, topN int) ([]Result, error) {
	if !ix.built {
		return nil, ErrNotBuilt
	}
	if topN <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopN, topN)
	}

	queryVector := ix.vectorizer.Transform(arabic.NormalizeString(text))

	ranked := make([]Result, len(ix.documents))
	for i, doc := range ix.documents {
		ranked[i] = Result{
			Verse:    doc.Verse,
			Position: doc.Position,
			Score:    CosineSimilarity(queryVector, doc.Vector),
		}
	}

	// Stable, so equal scores stay in corpus order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	results := make([]Result, 0, len(ranked))
	for _, r := range ranked {
		// The loader already drops these; re-checked here so ranking never
		// surfaces a verse without a surah or text.
		if !r.Verse.Complete() {
			continue
		}
		results = append(results, r)
	}

	ix.logger.WithFields(logrus.Fields{
		"query":   text,
		"results": len(results),
		"oov":     queryVector.Len() == 0,
	}).Debug("Search executed")
	return results, nil
}
