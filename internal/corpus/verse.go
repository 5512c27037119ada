package corpus

import (
	"math"
	"strconv"
	"strings"
)

// VerseNumber is a verse's position within its surah. Values that could not
// be parsed are kept with Valid set to false.
type VerseNumber struct {
	Value int
	Valid bool
}

// ParseVerseNumber coerces raw into a VerseNumber. Integral floats such as
// "7.0" are accepted; anything else yields an invalid number.
func ParseVerseNumber(raw string) VerseNumber {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return VerseNumber{Value: n, Valid: true}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return VerseNumber{}
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return VerseNumber{}
	}
	return VerseNumber{Value: int(f), Valid: true}
}

func (n VerseNumber) String() string {
	if !n.Valid {
		return "NaN"
	}
	return strconv.Itoa(n.Value)
}

// Verse is one row of the corpus. Text holds the normalized verse text.
type Verse struct {
	Surah  string
	Number VerseNumber
	Text   string
}

// Complete reports whether the verse carries every required field.
func (v Verse) Complete() bool {
	return v.Surah != "" && v.Text != ""
}
