package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/zenwen/ainews/internal/news"
	"github.com/zenwen/ainews/internal/tokenize"
)

var testNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

const baseText = "OpenAI announced the GPT-5 model today. The model shows strong reasoning. " +
	"Developers can use the API now. Training used new methods. Benchmark scores improved greatly. "

func newTestValidator() *Validator {
	return New(tokenize.NewLatin(nil), 0.6)
}

func originalItem() *news.Item {
	content := strings.Repeat(baseText, 8) // ~1300 runes
	return news.New("OpenAI releases GPT-5", content, "https://example.com/gpt5", "web_search", testNow, nil, 0)
}

func goodRewrite(original *news.Item) *news.Item {
	content := "# 🚀 GPT-5 arrives\n\n" +
		strings.Repeat(baseText, 6) +
		"\n\n## Details\n\n" +
		"**Summary** of the release. Read more at " + original.URL + "."
	return news.New("GPT-5 is here", content, original.URL, original.Source, original.PublishedDate, original.Tags, original.Score)
}

func TestValidateGoodRewritePasses(t *testing.T) {
	v := newTestValidator()
	original := originalItem()

	result := v.Validate(original, goodRewrite(original))
	if !result.IsValid {
		t.Errorf("expected valid result, got score %v with issues %v", result.Score, result.Issues)
	}
	if len(result.Issues) != 0 {
		t.Errorf("expected no issues, got %v", result.Issues)
	}
	if len(result.Suggestions) != 0 {
		t.Errorf("expected no suggestions, got %v", result.Suggestions)
	}
	if result.Score < 0 || result.Score > 1 {
		t.Errorf("score %v out of [0,1]", result.Score)
	}
}

func TestValidateMajorInformationLoss(t *testing.T) {
	v := newTestValidator()
	original := originalItem()
	rewritten := news.New("Something else", "Completely different cooking recipe text without relevant vocabulary.",
		original.URL, original.Source, original.PublishedDate, nil, 0)

	result := v.Validate(original, rewritten)
	if result.IsValid {
		t.Error("expected invalid result")
	}
	if result.Score >= 0.6 {
		t.Errorf("expected composite below the bar, got %v", result.Score)
	}
	if !containsIssue(result.Issues, issueMajorLoss) {
		t.Errorf("expected %q in issues %v", issueMajorLoss, result.Issues)
	}
	if !containsIssue(result.Issues, issueURLLost) {
		t.Errorf("expected %q in issues %v", issueURLLost, result.Issues)
	}
}

func TestValidateURLLostAloneStillCounts(t *testing.T) {
	v := newTestValidator()
	original := originalItem()
	rewritten := goodRewrite(original)
	rewritten.Content = strings.ReplaceAll(rewritten.Content, original.URL, "the announcement page")

	result := v.Validate(original, rewritten)
	if !containsIssue(result.Issues, issueURLLost) {
		t.Errorf("expected %q, got issues %v", issueURLLost, result.Issues)
	}
	// A single issue alone does not fail the verdict if the score holds up.
	if len(result.Issues) == 1 && !result.IsValid {
		t.Errorf("one issue with score %v should still be valid", result.Score)
	}
}

func TestCheckLengthBuckets(t *testing.T) {
	tests := []struct {
		length    int
		wantScore float64
		wantIssue string
	}{
		{200, 0.3, issueTooShort},
		{600, 0.6, ""},
		{1500, 1.0, ""},
		{5000, 0.7, issueTooLong},
	}
	for _, tt := range tests {
		score, issues := checkLength(strings.Repeat("x", tt.length))
		if score != tt.wantScore {
			t.Errorf("checkLength(len %d) = %v, want %v", tt.length, score, tt.wantScore)
		}
		if tt.wantIssue == "" && len(issues) != 0 {
			t.Errorf("checkLength(len %d) unexpected issues %v", tt.length, issues)
		}
		if tt.wantIssue != "" && !containsIssue(issues, tt.wantIssue) {
			t.Errorf("checkLength(len %d) missing issue %q", tt.length, tt.wantIssue)
		}
	}
}

func TestCheckReadabilityParagraphsAndSentences(t *testing.T) {
	score, issues := checkReadability("one long block of text with no breaks at all here.")
	if score != 0.5 || !containsIssue(issues, issueNoParagraphs) {
		t.Errorf("single paragraph: score %v issues %v", score, issues)
	}

	long := strings.Repeat("word ", 30) + "."
	_, issues = checkReadability(long + "\n\n" + long)
	if !containsIssue(issues, issueLongSentences) {
		t.Errorf("expected long-sentence issue, got %v", issues)
	}

	score, issues = checkReadability("Short lines. Split well.\n\nWith **bold** text.")
	if len(issues) != 0 {
		t.Errorf("unexpected issues %v", issues)
	}
	if score != 1.0 {
		t.Errorf("structured text score = %v, want 1.0", score)
	}
}

func TestCheckFormat(t *testing.T) {
	score, issues := checkFormat("# 🔥 Title\n\n## Section\n\n**bold**")
	if score != 1.0 {
		t.Errorf("fully formatted score = %v, want 1.0", score)
	}
	if len(issues) != 0 {
		t.Errorf("unexpected issues %v", issues)
	}

	score, issues = checkFormat("plain text, no markdown")
	if score != 0.0 {
		t.Errorf("plain text score = %v, want 0.0", score)
	}
	if !containsIssue(issues, issueNoTitle) {
		t.Errorf("expected missing-title issue, got %v", issues)
	}
}

func TestSuggestionsLookup(t *testing.T) {
	got := suggestions([]string{issueMajorLoss, issueNoTitle, "some novel problem"})
	if len(got) != 3 {
		t.Fatalf("expected 3 suggestions, got %v", got)
	}
	if got[0] != "rewrite again, preserving the original's main points" {
		t.Errorf("unexpected suggestion for major loss: %q", got[0])
	}
	if got[1] != "start the article with a '#' heading" {
		t.Errorf("unexpected suggestion for missing title: %q", got[1])
	}
	if got[2] != "resolve: some novel problem" {
		t.Errorf("expected generic fallback, got %q", got[2])
	}
}

func TestValidateBatchAndStats(t *testing.T) {
	v := newTestValidator()
	original := originalItem()
	bad := news.New("Something else", "Completely different cooking recipe text without relevant vocabulary.",
		original.URL, original.Source, original.PublishedDate, nil, 0)

	entries := v.ValidateBatch(
		[]*news.Item{original, original},
		[]*news.Item{goodRewrite(original), bad},
	)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	stats := Stats(entries)
	if stats.Total != 2 || stats.Valid != 1 || stats.Invalid != 1 {
		t.Errorf("stats = %+v, want total 2, valid 1, invalid 1", stats)
	}
	if stats.AvgScore <= 0 || stats.AvgScore > 1 {
		t.Errorf("avg score %v out of range", stats.AvgScore)
	}
	if len(stats.CommonIssues) == 0 {
		t.Fatal("expected issue histogram entries")
	}
	for i := 1; i < len(stats.CommonIssues); i++ {
		if stats.CommonIssues[i].Count > stats.CommonIssues[i-1].Count {
			t.Error("issue histogram not sorted by frequency")
		}
	}
}

func TestStatsEmptyBatch(t *testing.T) {
	stats := Stats(nil)
	if stats.Total != 0 || stats.AvgScore != 0 {
		t.Errorf("empty batch stats = %+v", stats)
	}
}

func containsIssue(issues []string, want string) bool {
	for _, issue := range issues {
		if issue == want {
			return true
		}
	}
	return false
}
