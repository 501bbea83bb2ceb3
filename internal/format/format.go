// Package format renders articles as publication-ready markdown in the
// WeChat public-account style: emoji-decorated title, bold lead-in,
// subheadings, and a source footer.
package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zenwen/ainews/internal/news"
)

var emojis = map[string]string{
	"ai":           "🤖",
	"research":     "🔬",
	"breakthrough": "🚀",
	"github":       "🐙",
	"news":         "📰",
	"point":        "👉",
	"idea":         "💡",
	"star":         "⭐",
	"heart":        "❤️",
	"thinking":     "🤔",
}

var (
	blankRunPattern = regexp.MustCompile(`\n\s*\n\s*\n`)
	listPattern     = regexp.MustCompile(`^[\d\-*•]+\.?\s*`)
)

// Options controls which decorations the formatter applies.
type Options struct {
	IncludeImages      bool
	IncludeSourceLinks bool
	AddEmojis          bool
}

// DefaultOptions enables every decoration.
func DefaultOptions() Options {
	return Options{IncludeImages: true, IncludeSourceLinks: true, AddEmojis: true}
}

// Formatter renders items as markdown articles.
type Formatter struct {
	opts Options
}

// New creates a formatter.
func New(opts Options) *Formatter {
	return &Formatter{opts: opts}
}

// FormatItem renders one item as a complete article.
func (f *Formatter) FormatItem(item *news.Item) string {
	return f.Format(item.Title, item.Content)
}

// Format assembles title, lead-in, body, optional image suggestions,
// source note, and ending into one markdown document.
func (f *Formatter) Format(title, content string) string {
	content = cleanContent(content)

	var b strings.Builder
	b.WriteString(f.formatTitle(title))
	b.WriteString("\n\n")
	b.WriteString(f.intro(content))
	b.WriteString("\n\n")
	b.WriteString(f.formatBody(content))

	if f.opts.IncludeImages {
		if s := f.imageSuggestions(content); s != "" {
			b.WriteString("\n\n")
			b.WriteString(s)
		}
	}
	if f.opts.IncludeSourceLinks {
		b.WriteString("\n\n")
		b.WriteString(f.sourceNote())
	}
	b.WriteString("\n\n")
	b.WriteString(f.ending())

	return b.String()
}

// cleanContent collapses blank-line runs and trims each line.
func cleanContent(content string) string {
	content = strings.ReplaceAll(content, "\r", "")
	content = blankRunPattern.ReplaceAllString(content, "\n\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func (f *Formatter) formatTitle(title string) string {
	if !f.opts.AddEmojis {
		return "# " + title
	}

	lower := strings.ToLower(title)
	emoji := emojis["news"]
	switch {
	case containsAny(lower, "ai", "人工智能", "gpt"):
		emoji = emojis["ai"]
	case containsAny(lower, "突破", "breakthrough", "新"):
		emoji = emojis["breakthrough"]
	case containsAny(lower, "研究", "research", "论文"):
		emoji = emojis["research"]
	case containsAny(lower, "github", "开源"):
		emoji = emojis["github"]
	}
	return fmt.Sprintf("# %s %s", emoji, title)
}

// intro takes the first two sentences of the content as a bold lead-in,
// capped at 200 runes.
func (f *Formatter) intro(content string) string {
	sentences := strings.SplitN(content, "。", 3)
	n := len(sentences)
	if n > 2 {
		n = 2
	}
	intro := strings.Join(sentences[:n], "。")

	runes := []rune(intro)
	if len(runes) > 200 {
		intro = string(runes[:200]) + "..."
	}

	return fmt.Sprintf("**%s 导读**\n\n%s。", emojis["point"], intro)
}

func (f *Formatter) formatBody(content string) string {
	paragraphs := strings.Split(content, "\n\n")
	var out []string

	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if isHeading(p) {
			out = append(out, f.formatHeading(p))
		} else {
			out = append(out, f.formatParagraph(p))
		}
	}
	return strings.Join(out, "\n\n")
}

// isHeading guesses whether a paragraph is a section title: short, no
// sentence terminator, and carrying a heading cue.
func isHeading(text string) bool {
	if len([]rune(text)) >= 50 {
		return false
	}
	if strings.HasSuffix(text, "。") || strings.HasSuffix(text, ".") {
		return false
	}
	if strings.ContainsAny(text, "：:") {
		return true
	}
	if text == strings.ToUpper(text) && text != strings.ToLower(text) {
		return true
	}
	return containsAny(text, "什么是", "如何", "为什么", "介绍", "概述")
}

func (f *Formatter) formatHeading(heading string) string {
	if f.opts.AddEmojis {
		return fmt.Sprintf("## %s %s", emojis["point"], heading)
	}
	return "## " + heading
}

func (f *Formatter) formatParagraph(p string) string {
	if isListItem(p) {
		return f.formatListItem(p)
	}
	if strings.HasPrefix(p, `"`) || strings.HasPrefix(p, "“") {
		return "> " + p
	}
	if strings.Contains(p, "```") {
		return p
	}
	return p
}

func isListItem(text string) bool {
	t := strings.TrimSpace(text)
	for _, prefix := range []string{"1.", "2.", "3.", "4.", "5.", "-", "•", "*"} {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return false
}

func (f *Formatter) formatListItem(item string) string {
	if !f.opts.AddEmojis {
		return item
	}
	return listPattern.ReplaceAllString(strings.TrimSpace(item), emojis["point"]+" ")
}

func (f *Formatter) imageSuggestions(content string) string {
	lower := strings.ToLower(content)
	var suggestions []string

	if strings.Contains(lower, "github") || strings.Contains(content, "开源") {
		suggestions = append(suggestions, "GitHub项目截图或代码示例")
	}
	if strings.Contains(lower, "arxiv") || strings.Contains(content, "论文") {
		suggestions = append(suggestions, "论文首页截图或研究结果图表")
	}
	if strings.Contains(lower, "huggingface") || strings.Contains(content, "模型") {
		suggestions = append(suggestions, "模型架构图或性能对比图表")
	}
	if containsAny(lower, "ai", "人工智能", "gpt") {
		suggestions = append(suggestions, "AI相关的概念图或技术示意图")
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, "与主题相关的配图")
	}
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s 配图建议**\n\n", emojis["idea"])
	for i, s := range suggestions {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• " + s)
	}
	return b.String()
}

func (f *Formatter) sourceNote() string {
	return fmt.Sprintf(`**%s 声明**

本文内容由AI智能体自动整理生成，仅供参考学习。如有错误或侵权，请联系我们及时处理。

原始来源已在文中标注，感谢原作者的贡献。`, emojis["point"])
}

func (f *Formatter) ending() string {
	if !f.opts.AddEmojis {
		return "---\n\n如果觉得有用，请点赞支持！\n关注我们，获取更多AI资讯！\n有什么想法，欢迎留言讨论！"
	}
	return fmt.Sprintf("---\n\n%s 如果觉得有用，请点赞支持！\n%s 关注我们，获取更多AI资讯！\n%s 有什么想法，欢迎留言讨论！",
		emojis["heart"], emojis["star"], emojis["thinking"])
}

// GenerateTags derives topic tags from content keywords.
func GenerateTags(content string) []string {
	techKeywords := []struct {
		tag      string
		keywords []string
	}{
		{"ai", []string{"ai", "人工智能"}},
		{"machine-learning", []string{"机器学习", "ml"}},
		{"deep-learning", []string{"深度学习", "dl"}},
		{"nlp", []string{"自然语言处理", "nlp"}},
		{"computer-vision", []string{"计算机视觉", "cv"}},
		{"gpt", []string{"gpt", "chatgpt"}},
		{"transformer", []string{"transformer", "注意力机制"}},
		{"github", []string{"github", "开源"}},
		{"arxiv", []string{"arxiv", "论文"}},
		{"huggingface", []string{"hugging face", "模型库"}},
	}

	lower := strings.ToLower(content)
	var tags []string
	for _, tk := range techKeywords {
		for _, kw := range tk.keywords {
			if strings.Contains(lower, kw) {
				tags = append(tags, tk.tag)
				break
			}
		}
		if len(tags) >= 10 {
			break
		}
	}
	return tags
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
