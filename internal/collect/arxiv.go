package collect

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/zenwen/ainews/internal/config"
	"github.com/zenwen/ainews/internal/news"
)

const arxivAPIBaseURL = "http://export.arxiv.org/api/query"

// ArxivSource pulls recent papers per category from the arXiv Atom API.
type ArxivSource struct {
	cfg    config.ArxivConfig
	parser *gofeed.Parser
}

// NewArxivSource creates an arXiv source.
func NewArxivSource(cfg config.ArxivConfig) *ArxivSource {
	if cfg.MaxPapers <= 0 {
		cfg.MaxPapers = 10
	}
	if cfg.DaysBack <= 0 {
		cfg.DaysBack = 7
	}
	return &ArxivSource{cfg: cfg, parser: gofeed.NewParser()}
}

func (s *ArxivSource) Name() string { return "arxiv" }

// Collect queries each configured category, newest submissions first,
// and keeps papers within the days_back window.
func (s *ArxivSource) Collect(ctx context.Context) ([]*news.Item, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -s.cfg.DaysBack)
	var all []*news.Item

	for _, category := range s.cfg.Categories {
		params := url.Values{
			"search_query": {fmt.Sprintf("cat:%s", category)},
			"sortBy":       {"submittedDate"},
			"sortOrder":    {"descending"},
			"max_results":  {fmt.Sprintf("%d", s.cfg.MaxPapers)},
		}

		feed, err := s.parser.ParseURLWithContext(arxivAPIBaseURL+"?"+params.Encode(), ctx)
		if err != nil {
			return all, fmt.Errorf("querying category %s: %w", category, err)
		}

		for _, entry := range feed.Items {
			item := arxivItem(entry, category, cutoff)
			if item != nil {
				all = append(all, item)
			}
		}
	}

	return all, nil
}

func arxivItem(entry *gofeed.Item, category string, cutoff time.Time) *news.Item {
	title := strings.TrimSpace(strings.ReplaceAll(entry.Title, "\n", " "))
	if title == "" || entry.Link == "" {
		return nil
	}

	var published time.Time
	if entry.PublishedParsed != nil {
		published = *entry.PublishedParsed
	}
	if !published.IsZero() && published.Before(cutoff) {
		return nil
	}

	content := formatPaperContent(entry)
	tags := append([]string{category, "arxiv", "paper"}, entry.Categories...)

	return news.New(title, content, entry.Link, "arxiv_"+category, published, tags, 0)
}

// formatPaperContent builds a readable body from the Atom entry:
// authors, abstract, and the paper link.
func formatPaperContent(entry *gofeed.Item) string {
	var b strings.Builder

	if len(entry.Authors) > 0 {
		names := make([]string, 0, len(entry.Authors))
		for _, a := range entry.Authors {
			names = append(names, a.Name)
		}
		fmt.Fprintf(&b, "Authors: %s\n\n", strings.Join(names, ", "))
	}

	abstract := strings.TrimSpace(strings.Join(strings.Fields(entry.Description), " "))
	if abstract != "" {
		fmt.Fprintf(&b, "Abstract: %s\n\n", abstract)
	}

	fmt.Fprintf(&b, "Paper: %s", entry.Link)
	return b.String()
}
