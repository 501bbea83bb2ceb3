// Package validate re-scores a rewritten news item against its original
// along four independent axes (length, completeness, readability,
// format) and reports a pass/fail verdict with actionable issues.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/zenwen/ainews/internal/news"
	"github.com/zenwen/ainews/internal/tokenize"
)

// Check weights. They sum to 1.0.
const (
	weightLength       = 0.2
	weightCompleteness = 0.3
	weightReadability  = 0.3
	weightFormat       = 0.2
)

const completenessKeywordCount = 20

// Issue strings. Suggestions are looked up by substring match against
// these, so the lookup keys below must stay substrings of them.
const (
	issueTooShort      = "content too short, likely missing information"
	issueTooLong       = "content too long, hurts readability"
	issuePartialLoss   = "partial information loss"
	issueMajorLoss     = "major information loss"
	issueURLLost       = "source URL lost"
	issueNoParagraphs  = "missing paragraph breaks"
	issueLongSentences = "sentences too long, consider splitting"
	issueNoTitle       = "missing title format"
)

// suggestionTable maps issue substrings to fixes, in lookup order.
var suggestionTable = []struct {
	key        string
	suggestion string
}{
	{"content too short", "add more supporting detail to flesh out the content"},
	{"content too long", "trim the content down to its core information"},
	{"partial information loss", "make sure key terms from the original are kept"},
	{"major information loss", "rewrite again, preserving the original's main points"},
	{"source URL lost", "add the original source link back"},
	{"missing paragraph breaks", "split the text into paragraphs"},
	{"sentences too long", "break long sentences into shorter ones"},
	{"missing title format", "start the article with a '#' heading"},
}

var (
	sentencePattern = regexp.MustCompile(`[。！？.!?]`)
	emojiPattern    = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}]`)
)

// Result is the verdict for one original/rewritten pair. Issues are
// produced fresh on each call; suggestions are derived from them.
type Result struct {
	IsValid     bool     `json:"is_valid"`
	Score       float64  `json:"score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// Validator checks rewritten content quality. It holds only the
// read-only keyword extractor and the quality bar.
type Validator struct {
	extractor  tokenize.Extractor
	minQuality float64
}

// New creates a validator. A zero minQuality falls back to 0.6.
func New(extractor tokenize.Extractor, minQuality float64) *Validator {
	if minQuality <= 0 {
		minQuality = 0.6
	}
	return &Validator{extractor: extractor, minQuality: minQuality}
}

// Validate scores the rewritten item against its original. The verdict
// passes when the composite clears the quality bar and at most one
// issue was found.
func (v *Validator) Validate(original, rewritten *news.Item) Result {
	var score float64
	var issues []string

	s, iss := checkLength(rewritten.Content)
	score += s * weightLength
	issues = append(issues, iss...)

	s, iss = v.checkCompleteness(original, rewritten)
	score += s * weightCompleteness
	issues = append(issues, iss...)

	s, iss = checkReadability(rewritten.Content)
	score += s * weightReadability
	issues = append(issues, iss...)

	s, iss = checkFormat(rewritten.Content)
	score += s * weightFormat
	issues = append(issues, iss...)

	score = news.Clamp(score)
	return Result{
		IsValid:     score >= v.minQuality && len(issues) <= 1,
		Score:       score,
		Issues:      issues,
		Suggestions: suggestions(issues),
	}
}

// checkLength buckets the rewritten content's rune length. Rewrites are
// expected to be article-sized, so the buckets are wider than the raw
// assessment ones and bound above as well as below.
func checkLength(content string) (float64, []string) {
	switch length := utf8.RuneCountInString(content); {
	case length < 500:
		return 0.3, []string{issueTooShort}
	case length < 800:
		return 0.6, nil
	case length <= 3000:
		return 1.0, nil
	default:
		return 0.7, []string{issueTooLong}
	}
}

// checkCompleteness measures how much of the original's key information
// survived the rewrite: keyword retention rate plus source URL presence.
func (v *Validator) checkCompleteness(original, rewritten *news.Item) (float64, []string) {
	var score float64
	var issues []string

	originalKw := toSet(v.extractor.TopKeywords(original.Content, completenessKeywordCount))
	rewrittenKw := toSet(v.extractor.TopKeywords(rewritten.Content, completenessKeywordCount))

	if len(originalKw) == 0 {
		score = 0.5
	} else {
		retained := 0
		for w := range originalKw {
			if _, ok := rewrittenKw[w]; ok {
				retained++
			}
		}
		switch rate := float64(retained) / float64(len(originalKw)); {
		case rate >= 0.7:
			score = 1.0
		case rate >= 0.5:
			score = 0.8
		case rate >= 0.3:
			score = 0.6
			issues = append(issues, issuePartialLoss)
		default:
			score = 0.3
			issues = append(issues, issueMajorLoss)
		}
	}

	if original.URL != "" && !strings.Contains(rewritten.Content, original.URL) {
		issues = append(issues, issueURLLost)
		score *= 0.9
	}

	return score, issues
}

func checkReadability(content string) (float64, []string) {
	var issues []string

	var score float64
	if len(strings.Split(content, "\n\n")) >= 2 {
		score = 0.8
	} else {
		score = 0.5
		issues = append(issues, issueNoParagraphs)
	}

	if avgSentenceLength(content) > 50 {
		score *= 0.8
		issues = append(issues, issueLongSentences)
	}

	if strings.Contains(content, "##") || strings.Contains(content, "**") {
		score = news.Clamp(score + 0.2)
	}

	return score, issues
}

func avgSentenceLength(content string) float64 {
	sentences := sentencePattern.Split(content, -1)

	total := 0
	for _, s := range sentences {
		if strings.TrimSpace(s) != "" {
			total += utf8.RuneCountInString(s)
		}
	}
	n := len(sentences)
	if n == 0 {
		n = 1
	}
	return float64(total) / float64(n)
}

func checkFormat(content string) (float64, []string) {
	var score float64
	var issues []string

	if strings.HasPrefix(content, "#") {
		score += 0.3
	} else {
		issues = append(issues, issueNoTitle)
	}
	if emojiPattern.MatchString(content) {
		score += 0.2
	}
	if strings.Contains(content, "##") {
		score += 0.3
	}
	if strings.Contains(content, "**") || strings.Contains(content, "*") {
		score += 0.2
	}

	return news.Clamp(score), issues
}

// suggestions resolves each issue to a fix via the substring table;
// unmatched issues get a generic fallback.
func suggestions(issues []string) []string {
	var out []string
	for _, issue := range issues {
		matched := false
		for _, entry := range suggestionTable {
			if strings.Contains(issue, entry.key) {
				out = append(out, entry.suggestion)
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, fmt.Sprintf("resolve: %s", issue))
		}
	}
	return out
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
