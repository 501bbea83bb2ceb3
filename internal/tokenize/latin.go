package tokenize

import (
	"sort"
	"strings"
	"unicode"
)

// Latin is a dictionary-free Extractor for Latin-script text. Tokens are
// letter/digit runs, lowercased; keywords are ranked by term frequency
// with stopwords removed. It is the fallback when the gse dictionaries
// cannot be loaded, and the deterministic implementation used in tests.
type Latin struct {
	stopwords Stopwords
}

// NewLatin creates a Latin extractor with the given stopword table.
func NewLatin(stopwords Stopwords) *Latin {
	if stopwords == nil {
		stopwords = DefaultStopwords()
	}
	return &Latin{stopwords: stopwords}
}

// Cut splits text into lowercased word tokens. CJK runes are emitted as
// single-rune tokens so mixed-script text still produces something
// comparable.
func (l *Latin) Cut(text string) []string {
	var out []string
	var word strings.Builder

	flush := func() {
		if word.Len() > 0 {
			out = append(out, strings.ToLower(word.String()))
			word.Reset()
		}
	}

	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			flush()
			out = append(out, string(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			word.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return out
}

// TopKeywords ranks tokens by frequency, skipping stopwords and
// single-character Latin tokens. Ties are broken by lexical order.
func (l *Latin) TopKeywords(text string, k int) []string {
	counts := make(map[string]int)
	for _, w := range l.Cut(text) {
		if l.stopwords.Contains(w) {
			continue
		}
		if len(w) < 2 && w[0] < 0x80 {
			continue
		}
		counts[w]++
	}

	terms := make([]string, 0, len(counts))
	for w := range counts {
		terms = append(terms, w)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > k {
		terms = terms[:k]
	}
	return terms
}
