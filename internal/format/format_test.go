package format

import (
	"strings"
	"testing"
	"time"

	"github.com/zenwen/ainews/internal/news"
)

func TestFormatAssemblesArticle(t *testing.T) {
	content := "OpenAI发布了新一代模型。这项研究展示了重要进展。\n\n" +
		"什么是新模型\n\n" +
		"新模型在多个基准上刷新了记录，相关论文已在arxiv发布。\n\n" +
		"1. 性能更强\n\n" +
		"2. 成本更低"

	f := New(DefaultOptions())
	out := f.Format("AI模型重大突破", content)

	if !strings.HasPrefix(out, "# 🤖 AI模型重大突破") {
		t.Errorf("title line wrong: %q", strings.SplitN(out, "\n", 2)[0])
	}
	if !strings.Contains(out, "**👉 导读**") {
		t.Error("missing lead-in block")
	}
	if !strings.Contains(out, "OpenAI发布了新一代模型。这项研究展示了重要进展。") {
		t.Error("lead-in should carry the first two sentences")
	}
	if !strings.Contains(out, "## 👉 什么是新模型") {
		t.Error("heading paragraph not promoted to subheading")
	}
	if !strings.Contains(out, "👉 性能更强") {
		t.Error("numbered list marker not replaced")
	}
	if !strings.Contains(out, "**💡 配图建议**") {
		t.Error("missing image suggestions")
	}
	if !strings.Contains(out, "**👉 声明**") {
		t.Error("missing source note")
	}
	if !strings.Contains(out, "❤️ 如果觉得有用，请点赞支持！") {
		t.Error("missing ending")
	}
}

func TestFormatWithoutDecorations(t *testing.T) {
	f := New(Options{})
	out := f.Format("Quarterly update", "First sentence here。Second one。Third one。")

	if !strings.HasPrefix(out, "# Quarterly update") {
		t.Errorf("plain title expected: %q", strings.SplitN(out, "\n", 2)[0])
	}
	if strings.Contains(out, "配图建议") {
		t.Error("image suggestions should be disabled")
	}
	if strings.Contains(out, "声明") {
		t.Error("source note should be disabled")
	}
}

func TestFormatTitleEmojiSelection(t *testing.T) {
	f := New(DefaultOptions())
	tests := []struct {
		title string
		emoji string
	}{
		{"GPT-5正式发布", "🤖"},
		{"研究人员取得进展", "🔬"},
		{"GitHub本周热门项目", "🐙"},
		{"行业动态速览", "📰"},
	}
	for _, tt := range tests {
		got := f.formatTitle(tt.title)
		if !strings.HasPrefix(got, "# "+tt.emoji) {
			t.Errorf("formatTitle(%q) = %q, want emoji %s", tt.title, got, tt.emoji)
		}
	}
}

func TestIntroTruncates(t *testing.T) {
	long := strings.Repeat("很", 300) + "。后续内容。"
	f := New(DefaultOptions())
	intro := f.intro(long)

	if !strings.Contains(intro, "...") {
		t.Error("long lead-in should be truncated with ellipsis")
	}
}

func TestIsHeading(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"什么是大模型", true},
		{"核心要点：三个方面", true},
		{"这是一个完整的句子。", false},
		{strings.Repeat("长", 60), false},
		{"A plain sentence that ends with a period.", false},
	}
	for _, tt := range tests {
		if got := isHeading(tt.text); got != tt.want {
			t.Errorf("isHeading(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestCleanContent(t *testing.T) {
	in := "  line one  \n\n\n\nline two\r\n"
	got := cleanContent(in)
	if got != "line one\n\nline two" {
		t.Errorf("cleanContent = %q", got)
	}
}

func TestFormatItem(t *testing.T) {
	item := news.New("开源工具发布", "这个开源项目托管在github。功能强大。",
		"https://github.com/acme/tool", "github_nlp", time.Time{}, nil, 0.8)

	out := New(DefaultOptions()).FormatItem(item)
	if !strings.Contains(out, "GitHub项目截图或代码示例") {
		t.Error("github content should suggest repository screenshots")
	}
}

func TestOutline(t *testing.T) {
	doc := "# 🤖 标题\n\n正文段落。\n\n## 👉 小标题\n\n更多内容。"
	headings := Outline(doc)
	if len(headings) != 2 {
		t.Fatalf("got %d headings, want 2: %v", len(headings), headings)
	}
	if !WellFormed(doc) {
		t.Error("document with headings should be well formed")
	}
	if WellFormed("just a paragraph with no structure") {
		t.Error("plain paragraph should not be well formed")
	}
}

func TestFormatProducesWellFormedMarkdown(t *testing.T) {
	out := New(DefaultOptions()).Format("AI进展", "第一句。第二句。")
	if !WellFormed(out) {
		t.Error("formatter output should carry a title heading")
	}
}

func TestGenerateTags(t *testing.T) {
	tags := GenerateTags("AI模型ChatGPT基于Transformer，代码在GitHub开源，论文见arXiv。")

	want := map[string]bool{"ai": false, "gpt": false, "transformer": false, "github": false, "arxiv": false}
	for _, tag := range tags {
		if _, ok := want[tag]; ok {
			want[tag] = true
		}
	}
	for tag, found := range want {
		if !found {
			t.Errorf("expected tag %q in %v", tag, tags)
		}
	}
}
