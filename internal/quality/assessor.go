// Package quality scores how worth-curating a news item is. The
// composite blends content length, title quality, content richness,
// recency, and source reliability under fixed weights.
package quality

import (
	"log"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/zenwen/ainews/internal/news"
	"github.com/zenwen/ainews/internal/readability"
	"github.com/zenwen/ainews/internal/tokenize"
)

// Factor weights. They sum to 1.0.
const (
	weightLength   = 0.20
	weightTitle    = 0.20
	weightRichness = 0.30
	weightRecency  = 0.15
	weightSource   = 0.15
)

// aiTerms are the domain keywords a good title mentions.
var aiTerms = []string{"AI", "人工智能", "机器学习", "深度学习", "GPT", "大模型", "LLM"}

// sourceScores maps source-tag prefixes to reliability. Unmatched
// sources score 0.5.
var sourceScores = []struct {
	prefix string
	score  float64
}{
	{"arxiv", 0.9},
	{"huggingface", 0.9},
	{"github", 0.8},
	{"web_search", 0.6},
}

var (
	separatorPattern  = regexp.MustCompile(`[:：]`)
	urlPattern        = regexp.MustCompile(`https?://[^\s]+`)
	percentagePattern = regexp.MustCompile(`\d+(?:\.\d+)?%`)
)

// Assessor computes composite quality scores. It holds only read-only
// capabilities and is safe for concurrent use.
type Assessor struct {
	extractor tokenize.Extractor
	metric    readability.Metric
}

// NewAssessor creates an assessor over the given tokenizer and
// readability metric.
func NewAssessor(extractor tokenize.Extractor, metric readability.Metric) *Assessor {
	return &Assessor{extractor: extractor, metric: metric}
}

// Assess returns the composite quality score in [0,1]. It is pure for a
// fixed now and never mutates the item; the caller decides whether to
// apply max(existing, assessed).
func (a *Assessor) Assess(item *news.Item, now time.Time) float64 {
	score := contentLengthScore(item.Content)*weightLength +
		a.titleScore(item.Title)*weightTitle +
		a.richnessScore(item.Content)*weightRichness +
		recencyScore(item.PublishedDate, now)*weightRecency +
		sourceScore(item.Source)*weightSource

	return news.Clamp(score)
}

func contentLengthScore(content string) float64 {
	switch length := utf8.RuneCountInString(content); {
	case length < 100:
		return 0.2
	case length < 300:
		return 0.5
	case length < 1000:
		return 0.8
	default:
		return 1.0
	}
}

func (a *Assessor) titleScore(title string) float64 {
	if title == "" {
		return 0.0
	}

	var score float64
	switch length := utf8.RuneCountInString(title); {
	case length >= 10 && length <= 100:
		score += 0.5
	case length > 100:
		score += 0.3
	default:
		score += 0.1
	}

	for _, term := range aiTerms {
		if strings.Contains(title, term) {
			score += 0.3
			break
		}
	}

	if separatorPattern.MatchString(title) {
		score += 0.2
	}

	return news.Clamp(score)
}

func (a *Assessor) richnessScore(content string) float64 {
	if content == "" {
		return 0.0
	}

	var score float64

	switch keywords := a.extractor.TopKeywords(content, 10); {
	case len(keywords) >= 5:
		score += 0.3
	case len(keywords) >= 3:
		score += 0.2
	default:
		score += 0.1
	}

	switch paragraphs := strings.Split(content, "\n\n"); {
	case len(paragraphs) >= 3:
		score += 0.3
	case len(paragraphs) >= 2:
		score += 0.2
	default:
		score += 0.1
	}

	if ease, err := a.metric.Score(content); err == nil && ease >= 30 && ease <= 70 {
		score += 0.2
	} else {
		if err != nil {
			log.Printf("Readability measurement unavailable: %v", err)
		}
		score += 0.1
	}

	if urlPattern.MatchString(content) {
		score += 0.1
	}
	if percentagePattern.MatchString(content) {
		score += 0.1
	}

	return news.Clamp(score)
}

func recencyScore(published, now time.Time) float64 {
	if published.IsZero() {
		return 0.5
	}

	switch days := news.DaysSince(published, now); {
	case days < 1:
		return 1.0
	case days < 3:
		return 0.9
	case days < 7:
		return 0.8
	case days < 14:
		return 0.6
	case days < 30:
		return 0.4
	case days < 90:
		return 0.2
	default:
		return 0.1
	}
}

func sourceScore(source string) float64 {
	for _, s := range sourceScores {
		if strings.HasPrefix(source, s.prefix) {
			return s.score
		}
	}
	return 0.5
}
