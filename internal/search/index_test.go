package search_test

import (
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge-engine/quranfruits/internal/corpus"
	"github.com/knowledge-engine/quranfruits/internal/search"
)

func verse(surah string, number int, text string) corpus.Verse {
	return corpus.Verse{
		Surah:  surah,
		Number: corpus.VerseNumber{Value: number, Valid: true},
		Text:   text,
	}
}

func sampleCorpus() *corpus.Corpus {
	return corpus.New(
		verse("2", 255, "الله لا اله الا هو الحي القيوم"),
		verse("55", 68, "فيهما فاكهه ونخل ورمان"),
		verse("95", 1, "والتين والزيتون"),
		verse("6", 99, "والزيتون والرمان مشتبها وغير متشابه"),
		verse("80", 29, "وزيتونا ونخلا"),
		verse("16", 11, "ينبت لكم به الزرع والزيتون والنخيل والاعناب"),
	)
}

func newIndex(t *testing.T, c *corpus.Corpus) *search.Index {
	t.Helper()
	ix := search.NewIndex(logrus.New().WithField("test", "search"))
	require.NoError(t, ix.Build(c))
	return ix
}

func TestQueryBeforeBuild(t *testing.T) {
	ix := search.NewIndex(nil)
	_, err := ix.Query("رمان", 5)
	assert.ErrorIs(t, err, search.ErrNotBuilt)
	assert.Equal(t, 0, ix.Len())
}

func TestBuildEmptyCorpus(t *testing.T) {
	ix := search.NewIndex(nil)
	err := ix.Build(corpus.New())
	assert.ErrorIs(t, err, search.ErrEmptyVocabulary)

	_, err = ix.Query("رمان", 5)
	assert.ErrorIs(t, err, search.ErrNotBuilt)
}

func TestFailedRebuildKeepsIndex(t *testing.T) {
	ix := newIndex(t, sampleCorpus())
	vocabulary := ix.VocabularySize()
	require.Error(t, ix.Build(corpus.New()))

	assert.Equal(t, 6, ix.Len())
	assert.Equal(t, vocabulary, ix.VocabularySize())
	results, err := ix.Query("والتين", 1)
	require.NoError(t, err)
	assert.Equal(t, "95", results[0].Verse.Surah)
}

func TestQueryRanksMatchingVerseFirst(t *testing.T) {
	ix := newIndex(t, corpus.New(
		verse("1", 1, "الحمد لله رب العالمين"),
		verse("55", 68, "فيها رمان ونخل"),
		verse("1", 2, "الرحمن الرحيم"),
	))

	results, err := ix.Query("رمان", 5)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "55", results[0].Verse.Surah)
	assert.Equal(t, 1, results[0].Position)
	assert.Greater(t, results[0].Score, 0.0)
}

func TestQueryNormalizesInput(t *testing.T) {
	ix := newIndex(t, sampleCorpus())

	results, err := ix.Query("وَالتِّينِ", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "95", results[0].Verse.Surah)
	assert.Greater(t, results[0].Score, 0.0)
}

func TestQueryOrderingAndLimit(t *testing.T) {
	c := sampleCorpus()
	ix := newIndex(t, c)

	for _, topN := range []int{1, 3, 5} {
		t.Run(fmt.Sprintf("top_%d", topN), func(t *testing.T) {
			results, err := ix.Query("والزيتون والرمان", topN)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(results), topN)

			for i, r := range results {
				assert.Equal(t, c.At(r.Position), r.Verse)
				if i > 0 {
					assert.LessOrEqual(t, r.Score, results[i-1].Score)
				}
			}
		})
	}
}

func TestQueryTopNBeyondCorpus(t *testing.T) {
	c := sampleCorpus()
	ix := newIndex(t, c)

	results, err := ix.Query("والزيتون", 100)
	require.NoError(t, err)
	assert.Len(t, results, c.Len())
	assert.Equal(t, "95", results[0].Verse.Surah)
}

func TestQueryUnknownTermKeepsCorpusOrder(t *testing.T) {
	c := sampleCorpus()
	ix := newIndex(t, c)

	results, err := ix.Query("برتقال", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, i, r.Position)
		assert.Equal(t, 0.0, r.Score)
	}
}

func TestQueryInvalidTopN(t *testing.T) {
	ix := newIndex(t, sampleCorpus())
	for _, topN := range []int{0, -1} {
		_, err := ix.Query("رمان", topN)
		assert.ErrorIs(t, err, search.ErrInvalidTopN)
	}
}

func TestVocabularySize(t *testing.T) {
	ix := search.NewIndex(nil)
	assert.Equal(t, 0, ix.VocabularySize())

	require.NoError(t, ix.Build(corpus.New(verse("95", 1, "والتين والزيتون"))))
	assert.Equal(t, 2, ix.VocabularySize())
}

// stubVectorizer maps every text to the same single-column vector.
type stubVectorizer struct {
	fitErr error
	fitted [][]string
}

func (v *stubVectorizer) Fit(docs []string) error {
	v.fitted = append(v.fitted, docs)
	return v.fitErr
}

func (v *stubVectorizer) Transform(string) search.SparseVector {
	return search.SparseVector{Indices: []int{0}, Values: []float64{1}}
}

func (v *stubVectorizer) Size() int {
	return 1
}

func TestIndexUsesVectorizer(t *testing.T) {
	stub := &stubVectorizer{}
	ix := search.NewIndexWithVectorizer(nil, func() search.Vectorizer { return stub })

	c := sampleCorpus()
	require.NoError(t, ix.Build(c))
	require.Len(t, stub.fitted, 1)
	assert.Equal(t, c.Texts(), stub.fitted[0])
	assert.Equal(t, 1, ix.VocabularySize())

	// Equal scores everywhere, so ranking falls back to corpus order.
	results, err := ix.Query("anything", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].Position)
	assert.Equal(t, 1, results[1].Position)
}

func TestIndexVectorizerFitError(t *testing.T) {
	fitErr := fmt.Errorf("fit failed")
	ix := search.NewIndexWithVectorizer(nil, func() search.Vectorizer {
		return &stubVectorizer{fitErr: fitErr}
	})

	assert.ErrorIs(t, ix.Build(sampleCorpus()), fitErr)
	_, err := ix.Query("رمان", 1)
	assert.ErrorIs(t, err, search.ErrNotBuilt)
}

func TestTFIDFVectorizerSize(t *testing.T) {
	v := search.NewTFIDFVectorizer()
	assert.Equal(t, 0, v.Size())
	require.NoError(t, v.Fit([]string{"والتين والزيتون", "والتين"}))
	assert.Equal(t, 2, v.Size())
}
