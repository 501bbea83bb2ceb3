// Package rewrite turns technical source material into reader-friendly
// articles via an LLM chat API.
package rewrite

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/zenwen/ainews/internal/config"
	"github.com/zenwen/ainews/internal/news"
)

// Rewriter produces a popularized rendition of a news item. The
// returned item keeps the original's URL, source, date, and score.
type Rewriter interface {
	RewriteItem(ctx context.Context, item *news.Item) (*news.Item, error)
}

// OpenAIRewriter implements Rewriter using the OpenAI chat completions API.
type OpenAIRewriter struct {
	client    *openai.Client
	model     string
	style     string
	maxLength int
}

// NewOpenAI creates a rewriter from configuration. apiKey comes from
// the environment variable named in the config.
func NewOpenAI(cfg config.Rewrite, apiKey string) *OpenAIRewriter {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(apiKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(apiKey)
	}

	style := cfg.Style
	if style == "" {
		style = "通俗易懂"
	}
	maxLength := cfg.MaxLength
	if maxLength <= 0 {
		maxLength = 3000
	}

	return &OpenAIRewriter{
		client:    c,
		model:     cfg.Model,
		style:     style,
		maxLength: maxLength,
	}
}

const systemPrompt = "你是一位专业的内容编辑，擅长将技术性内容改写为通俗易懂的文章。"

// RewriteItem rewrites both title and body of an item. On any API
// failure the error is returned and the caller keeps the original.
func (r *OpenAIRewriter) RewriteItem(ctx context.Context, item *news.Item) (*news.Item, error) {
	log.Printf("Rewriting: %s", item.Title)

	title, err := r.rewriteTitle(ctx, item.Title)
	if err != nil {
		return nil, fmt.Errorf("rewriting title: %w", err)
	}

	content, err := r.rewriteContent(ctx, item.Title, item.Content)
	if err != nil {
		return nil, fmt.Errorf("rewriting content: %w", err)
	}

	rewritten := news.New(title, content, item.URL, item.Source,
		item.PublishedDate, append(append([]string{}, item.Tags...), "rewritten"), item.Score)
	return rewritten, nil
}

func (r *OpenAIRewriter) rewriteTitle(ctx context.Context, title string) (string, error) {
	prompt := fmt.Sprintf(`请将以下技术性标题改写为%s的标题，使其更吸引人、更容易理解，同时保持原意。标题应当简洁有力。

原标题: %s

要求:
1. 保持原意，不要添加虚假信息
2. 使用吸引人的表达方式
3. 可以适当使用emoji表情
4. 长度控制在30个字以内
5. 风格要%s

直接返回改写后的标题，不要有任何前缀或解释。`, r.style, title, r.style)

	out, err := r.create(ctx, prompt, 100)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	out = strings.ReplaceAll(out, `"`, "")
	out = strings.ReplaceAll(out, "'", "")
	if out == "" {
		return title, nil
	}
	return out, nil
}

func (r *OpenAIRewriter) rewriteContent(ctx context.Context, title, content string) (string, error) {
	content = truncateRunes(content, 6000)

	prompt := fmt.Sprintf(`请将以下技术性内容改写为%s的文章，使其更易于普通读者理解，同时保持原始信息的准确性。

原标题: %s

原内容:
%s

要求:
1. 使用%s的风格，让内容更容易理解
2. 保持原始信息的准确性，不要添加虚假信息
3. 适当添加emoji表情，增加可读性
4. 为文章添加小标题，使结构更清晰
5. 总字数控制在%d字以内
6. 在文章末尾注明原始来源
7. 可以适当解释专业术语

直接返回改写后的完整文章内容，不要有任何前缀或解释。`,
		r.style, title, content, r.style, r.maxLength)

	out, err := r.create(ctx, prompt, 2000)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Summarize produces a short lead-in paragraph for an article.
func (r *OpenAIRewriter) Summarize(ctx context.Context, content string) (string, error) {
	prompt := fmt.Sprintf(`请为以下内容生成一个简洁的摘要，用于文章开头的引言。摘要应当概括文章的主要内容，吸引读者继续阅读。

内容:
%s

要求:
1. 摘要长度不超过200字
2. 语言简洁明了
3. 突出内容的价值和亮点

直接返回摘要内容，不要有任何前缀或解释。`, truncateRunes(content, 2000))

	out, err := r.create(ctx, prompt, 300)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (r *OpenAIRewriter) create(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 120*time.Second)
		defer cancel()
	}

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
