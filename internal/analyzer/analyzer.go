// Package analyzer wires the corpus, the similarity index and the fruit
// lexicon together. Construction fails on any startup error; queries after
// that are read-only.
package analyzer

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/knowledge-engine/quranfruits/internal/config"
	"github.com/knowledge-engine/quranfruits/internal/corpus"
	"github.com/knowledge-engine/quranfruits/internal/frequency"
	"github.com/knowledge-engine/quranfruits/internal/search"
)

// Analyzer answers verse searches and fruit frequency questions
type Analyzer struct {
	Logger  *logrus.Entry
	Corpus  *corpus.Corpus
	Index   *search.Index
	Lexicon frequency.Lexicon
}

// New builds the search index over c. Index build failures are returned.
func New(c *corpus.Corpus, lex frequency.Lexicon, logger *logrus.Entry) (*Analyzer, error) {
	if logger == nil {
		logger = logrus.WithField("component", "analyzer")
	}

	ix := search.NewIndex(logger.WithField("component", "search_index"))
	if err := ix.Build(c); err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"verses":     ix.Len(),
		"vocabulary": ix.VocabularySize(),
		"categories": lex.Labels(),
	}).Info("Analyzer ready")

	return &Analyzer{
		Logger:  logger,
		Corpus:  c,
		Index:   ix,
		Lexicon: lex,
	}, nil
}

// Load reads the lexicon and corpus named by cfg and builds the analyzer.
func Load(cfg *config.Config, logger *logrus.Entry) (*Analyzer, error) {
	if logger == nil {
		logger = logrus.WithField("component", "analyzer")
	}

	lex := frequency.DefaultLexicon()
	if cfg.Lexicon.Path != "" {
		var err error
		if lex, err = frequency.LoadLexicon(cfg.Lexicon.Path); err != nil {
			return nil, err
		}
		logger.WithFields(logrus.Fields{
			"path":       cfg.Lexicon.Path,
			"categories": len(lex.Categories),
		}).Info("Loaded fruit lexicon")
	}

	delim, err := parseDelimiter(cfg.Corpus.Delimiter)
	if err != nil {
		return nil, err
	}

	c, err := corpus.Load(cfg.Corpus.Path, corpus.Options{
		Delimiter: delim,
		Logger:    logger.WithField("component", "corpus_loader"),
	})
	if err != nil {
		return nil, err
	}

	return New(c, lex, logger)
}

func parseDelimiter(s string) (rune, error) {
	if s == "" {
		return ',', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("corpus delimiter %q: want a single character", s)
	}
	return r, nil
}

// FindRelatedVerses returns up to topN verses most similar to query.
// Failures other than an unbuilt index are logged and reported as no
// results, so callers treat an empty slice as "not found".
func (a *Analyzer) FindRelatedVerses(query string, topN int) ([]search.Result, error) {
	results, err := a.Index.Query(query, topN)
	if errors.Is(err, search.ErrNotBuilt) {
		return nil, err
	}
	if err != nil {
		a.Logger.WithError(err).WithField("query", query).Error("Search failed")
		return nil, nil
	}
	return results, nil
}

// FruitFrequencies counts lexicon mentions across the corpus.
func (a *Analyzer) FruitFrequencies() frequency.Counts {
	counts := frequency.Count(a.Corpus, a.Lexicon)
	a.Logger.WithField("mentions", counts.Total()).Debug("Counted fruit mentions")
	return counts
}
