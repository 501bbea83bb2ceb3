// Package fetch enriches thin news items with full article text
// extracted from their source pages.
package fetch

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"

	"github.com/zenwen/ainews/internal/news"
)

// Items whose content is already at least this many runes are left alone.
const thinContentRunes = 300

// Result holds the results of an enrichment run.
type Result struct {
	Enriched          int
	AlreadyHadContent int
	Failed            int
}

// Enricher fetches full article text via HTTP + readability extraction.
type Enricher struct {
	client *http.Client
}

// NewEnricher creates a new content enricher.
func NewEnricher(timeout time.Duration) *Enricher {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Enricher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

// Enrich replaces thin item content with the readable article body of
// its URL. A domain that returns an HTTP error is skipped for the rest
// of the run. Items are modified in place.
func (e *Enricher) Enrich(ctx context.Context, items []*news.Item) *Result {
	result := &Result{}
	failedDomains := make(map[string]struct{})

	for _, item := range items {
		if utf8.RuneCountInString(item.Content) >= thinContentRunes {
			result.AlreadyHadContent++
			continue
		}
		// Paper abstracts and repo summaries are already the best text
		// we can get; fetching their pages yields boilerplate.
		if strings.HasPrefix(item.Source, "arxiv") || strings.HasPrefix(item.Source, "github") {
			result.AlreadyHadContent++
			continue
		}

		u, _ := url.Parse(item.URL)
		domain := ""
		if u != nil {
			domain = strings.ToLower(u.Host)
		}

		if _, failed := failedDomains[domain]; failed {
			result.Failed++
			continue
		}

		content, httpErr := e.fetchArticleContent(ctx, item.URL)
		if httpErr != nil {
			result.Failed++
			if domain != "" {
				failedDomains[domain] = struct{}{}
			}
			log.Printf("HTTP error for %s — skipping remaining from %s", item.URL, domain)
			continue
		}

		if content != "" {
			item.Content = content
			result.Enriched++
			log.Printf("Fetched content for: %s", item.Title)
		} else {
			result.Failed++
			log.Printf("No extractable content from: %s", item.URL)
		}
	}

	log.Printf("Enrichment complete: %d enriched, %d already full, %d failed",
		result.Enriched, result.AlreadyHadContent, result.Failed)
	return result
}

func (e *Enricher) fetchArticleContent(ctx context.Context, articleURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", nil
	}
	req.Header.Set("User-Agent", "ainews/1.0 (news aggregator)")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", nil // connection error, not HTTP error
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &httpError{code: resp.StatusCode}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil
	}

	parsedURL, _ := url.Parse(articleURL)
	article, err := readability.FromReader(strings.NewReader(string(bodyBytes)), parsedURL)
	if err != nil {
		return "", nil
	}

	text := strings.TrimSpace(article.TextContent)
	if utf8.RuneCountInString(text) > 100 {
		return text, nil
	}
	return "", nil
}

type httpError struct {
	code int
}

func (e *httpError) Error() string {
	return http.StatusText(e.code)
}
