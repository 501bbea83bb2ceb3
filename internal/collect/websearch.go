package collect

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/zenwen/ainews/internal/config"
	"github.com/zenwen/ainews/internal/news"
)

const duckDuckGoURL = "https://html.duckduckgo.com/html/"

// WebSearchSource runs configured queries against the DuckDuckGo HTML
// endpoint and converts the result snippets into news items.
type WebSearchSource struct {
	cfg    config.WebSearchConfig
	client *http.Client
}

// NewWebSearchSource creates a web search source.
func NewWebSearchSource(cfg config.WebSearchConfig) *WebSearchSource {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	return &WebSearchSource{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *WebSearchSource) Name() string { return "web_search" }

// Collect runs every configured query. Results carry no publication
// date; the item constructor stamps them with the collection time.
func (s *WebSearchSource) Collect(ctx context.Context) ([]*news.Item, error) {
	var all []*news.Item
	seen := make(map[string]bool)

	for _, query := range s.cfg.Queries {
		body, err := s.search(ctx, query)
		if err != nil {
			return all, fmt.Errorf("searching %q: %w", query, err)
		}

		results, err := parseSearchResults(body, s.cfg.MaxResults)
		body.Close()
		if err != nil {
			return all, fmt.Errorf("parsing results for %q: %w", query, err)
		}

		for _, r := range results {
			if seen[r.url] {
				continue
			}
			seen[r.url] = true
			all = append(all, news.New(r.title, r.snippet, r.url,
				"web_search", time.Time{}, []string{"web", "search"}, 0))
		}
	}

	return all, nil
}

func (s *WebSearchSource) search(ctx context.Context, query string) (io.ReadCloser, error) {
	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, duckDuckGoURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; ainews/1.0)")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("search status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

type searchResult struct {
	title   string
	url     string
	snippet string
}

// parseSearchResults extracts result links and snippets from the
// DuckDuckGo HTML response.
func parseSearchResults(body io.Reader, max int) ([]searchResult, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, err
	}

	var results []searchResult
	doc.Find(".result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if len(results) >= max {
			return false
		}

		anchor := sel.Find(".result__a").First()
		title := strings.TrimSpace(anchor.Text())
		href, _ := anchor.Attr("href")
		link := resolveRedirect(href)
		if title == "" || link == "" {
			return true
		}

		snippet := strings.TrimSpace(sel.Find(".result__snippet").First().Text())
		results = append(results, searchResult{title: title, url: link, snippet: snippet})
		return true
	})

	return results, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "" {
		return ""
	}
	return href
}
