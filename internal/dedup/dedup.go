// Package dedup removes near-duplicate news items. Items are summarized
// into fingerprints (title plus ranked keyword sets) and compared
// pairwise with a blended Jaccard similarity; the pass is greedy and
// order-dependent, so the first occurrence of a story always wins.
package dedup

import (
	"sort"

	"github.com/zenwen/ainews/internal/news"
	"github.com/zenwen/ainews/internal/tokenize"
)

// DefaultThreshold is the similarity at or above which two items are
// considered the same story.
const DefaultThreshold = 0.8

const (
	titleKeywordCount   = 10
	contentKeywordCount = 30

	titleWeight   = 0.6
	keywordWeight = 0.4

	// Blend inside the keyword sub-score.
	titleKeywordWeight   = 0.4
	contentKeywordWeight = 0.6
)

// Fingerprint is a derived, comparable summary of an item. It is used
// for similarity only, never for identity.
type Fingerprint struct {
	Title           string
	TitleKeywords   []string
	ContentKeywords []string
}

// Engine computes fingerprints and similarities. It holds only the
// read-only tokenizer and stopword table.
type Engine struct {
	extractor tokenize.Extractor
	stopwords tokenize.Stopwords
}

// NewEngine creates a dedup engine.
func NewEngine(extractor tokenize.Extractor, stopwords tokenize.Stopwords) *Engine {
	if stopwords == nil {
		stopwords = tokenize.DefaultStopwords()
	}
	return &Engine{extractor: extractor, stopwords: stopwords}
}

// Fingerprint derives an item's comparable summary: the raw title, the
// top title keywords, and the top content keywords, each in sorted
// order so equal inputs always produce equal fingerprints.
func (e *Engine) Fingerprint(item *news.Item) Fingerprint {
	titleKw := e.extractor.TopKeywords(item.Title, titleKeywordCount)
	contentKw := e.extractor.TopKeywords(item.Content, contentKeywordCount)
	sort.Strings(titleKw)
	sort.Strings(contentKw)

	return Fingerprint{
		Title:           item.Title,
		TitleKeywords:   titleKw,
		ContentKeywords: contentKw,
	}
}

// Similarity blends title similarity (0.6) with keyword-set similarity
// (0.4) into a [0,1] score. It is symmetric.
func (e *Engine) Similarity(a, b Fingerprint) float64 {
	titleSim := e.titleSimilarity(a.Title, b.Title)

	var kwSim float64
	if len(a.TitleKeywords) > 0 && len(b.TitleKeywords) > 0 {
		kwSim += jaccard(toSet(a.TitleKeywords), toSet(b.TitleKeywords)) * titleKeywordWeight
	}
	if len(a.ContentKeywords) > 0 && len(b.ContentKeywords) > 0 {
		kwSim += jaccard(toSet(a.ContentKeywords), toSet(b.ContentKeywords)) * contentKeywordWeight
	}

	return titleSim*titleWeight + kwSim*keywordWeight
}

// Dedupe performs a single left-to-right pass: each candidate is
// compared against the fingerprints of already-accepted items and
// dropped when similarity reaches the threshold. First seen wins.
func (e *Engine) Dedupe(items []*news.Item, threshold float64) []*news.Item {
	if len(items) == 0 {
		return nil
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	unique := make([]*news.Item, 0, len(items))
	seen := make([]Fingerprint, 0, len(items))

	for _, item := range items {
		fp := e.Fingerprint(item)

		duplicate := false
		for _, s := range seen {
			if e.Similarity(fp, s) >= threshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, item)
			seen = append(seen, fp)
		}
	}

	return unique
}

// titleSimilarity is the Jaccard index over tokenized, stopword-filtered
// title word sets. Identical titles short-circuit to 1.0.
func (e *Engine) titleSimilarity(t1, t2 string) float64 {
	if t1 == t2 {
		return 1.0
	}

	w1 := e.tokenSet(t1)
	w2 := e.tokenSet(t2)
	if len(w1) == 0 || len(w2) == 0 {
		return 0.0
	}
	return jaccard(w1, w2)
}

func (e *Engine) tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range e.extractor.Cut(text) {
		if !e.stopwords.Contains(w) {
			set[w] = struct{}{}
		}
	}
	return set
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// jaccard computes |A ∩ B| / |A ∪ B|.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
