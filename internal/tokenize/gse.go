package tokenize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-ego/gse"
	"github.com/go-ego/gse/hmm/extracker"
)

// Gse is the CJK-aware Extractor. It wraps a gse segmenter for mixed
// Chinese/Latin tokenization and a TF-IDF tag extracter for keyword
// ranking. Construction loads the dictionaries once; the value is
// read-only afterwards.
type Gse struct {
	seg gse.Segmenter
	tag extracker.TagExtracter
}

// NewGse loads the default segmentation dictionary and IDF table.
func NewGse() (*Gse, error) {
	g := &Gse{}
	if err := g.seg.LoadDict(); err != nil {
		return nil, fmt.Errorf("loading segmentation dictionary: %w", err)
	}
	g.tag.WithGse(g.seg)
	if err := g.tag.LoadIdf(); err != nil {
		return nil, fmt.Errorf("loading idf table: %w", err)
	}
	return g, nil
}

// Cut splits text into tokens using HMM segmentation for unknown words.
func (g *Gse) Cut(text string) []string {
	words := g.seg.Cut(text, true)
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// TopKeywords returns up to k keywords ranked by TF-IDF weight. Equal
// weights are broken by lexical order so the result is stable.
func (g *Gse) TopKeywords(text string, k int) []string {
	segs := g.tag.ExtractTags(text, k)
	sort.SliceStable(segs, func(i, j int) bool {
		if segs[i].Weight != segs[j].Weight {
			return segs[i].Weight > segs[j].Weight
		}
		return segs[i].Text < segs[j].Text
	})

	out := make([]string, 0, len(segs))
	for _, s := range segs {
		out = append(out, s.Text)
	}
	return out
}
