package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/knowledge-engine/quranfruits/internal/arabic"
)

// Column names the loader requires in the header row.
const (
	ColumnSurah       = "surah"
	ColumnVerseNumber = "verse_number"
	ColumnVerseText   = "verse_text"
)

// missingMarkers are field values treated as absent, in addition to "".
var missingMarkers = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// ErrMissingColumn is wrapped by a LoadError when the header lacks a
// required column.
var ErrMissingColumn = errors.New("missing required column")

// LoadError reports that the corpus file could not be opened or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("corpus load failed: %v", e.Err)
	}
	return fmt.Sprintf("corpus load failed for %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Options controls how the corpus file is parsed.
type Options struct {
	// Delimiter separates fields. Zero means ','.
	Delimiter rune
	Logger    *logrus.Entry
}

// Load reads the corpus at path. Any failure is returned as a *LoadError.
func Load(path string, opts Options) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	c, err := Read(f, opts)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return c, nil
}

// Read parses a UTF-8 delimited table with a header row. Rows with a
// missing value in any column are dropped, verse text is normalized and
// verse numbers are coerced.
func Read(r io.Reader, opts Options) (*Corpus, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.WithField("component", "corpus_loader")
	}

	decoded := transform.NewReader(r, transform.Chain(
		encoding.UTF8Validator,
		unicode.BOMOverride(transform.Nop),
	))

	cr := csv.NewReader(decoded)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &LoadError{Err: errors.New("empty input: no header row")}
	}
	if err != nil {
		return nil, &LoadError{Err: fmt.Errorf("read header: %w", err)}
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	var (
		verses  []Verse
		total   int
		dropped int
		invalid int
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Err: fmt.Errorf("read record: %w", err)}
		}
		total++

		if len(record) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, &LoadError{Err: fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(record))}
		}

		if hasMissing(record, len(header)) {
			dropped++
			continue
		}

		v := Verse{
			Surah:  record[cols.surah],
			Number: ParseVerseNumber(record[cols.number]),
			Text:   arabic.NormalizeString(record[cols.text]),
		}
		if !v.Complete() {
			dropped++
			continue
		}
		if !v.Number.Valid {
			invalid++
		}
		verses = append(verses, v)
	}

	logger.WithFields(logrus.Fields{
		"rows":           total,
		"verses":         len(verses),
		"dropped":        dropped,
		"invalid_number": invalid,
	}).Info("Corpus loaded")

	return &Corpus{verses: verses}, nil
}

type columnIndex struct {
	surah, number, text int
}

func resolveColumns(header []string) (columnIndex, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}

	lookup := func(name string) (int, error) {
		i, ok := idx[name]
		if !ok {
			return 0, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		return i, nil
	}

	var cols columnIndex
	var err error
	if cols.surah, err = lookup(ColumnSurah); err != nil {
		return cols, err
	}
	if cols.number, err = lookup(ColumnVerseNumber); err != nil {
		return cols, err
	}
	if cols.text, err = lookup(ColumnVerseText); err != nil {
		return cols, err
	}
	return cols, nil
}

// hasMissing reports whether any of the width columns is absent or empty.
func hasMissing(record []string, width int) bool {
	if len(record) < width {
		return true
	}
	for _, field := range record {
		if isMissing(field) {
			return true
		}
	}
	return false
}

func isMissing(field string) bool {
	if field == "" {
		return true
	}
	_, ok := missingMarkers[field]
	return ok
}
