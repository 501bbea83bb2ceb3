package collect

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"

	"github.com/zenwen/ainews/internal/config"
	"github.com/zenwen/ainews/internal/news"
)

const maxPerFeed = 20

// FeedSource pulls items from user-configured RSS/Atom feeds.
type FeedSource struct {
	feeds  []config.Feed
	parser *gofeed.Parser
}

// NewFeedSource creates a feed source.
func NewFeedSource(feeds []config.Feed) *FeedSource {
	return &FeedSource{feeds: feeds, parser: gofeed.NewParser()}
}

func (s *FeedSource) Name() string { return "feeds" }

// Collect parses all configured feeds. A failing feed is skipped.
func (s *FeedSource) Collect(ctx context.Context) ([]*news.Item, error) {
	var all []*news.Item

	for _, fc := range s.feeds {
		feed, err := s.parser.ParseURLWithContext(fc.URL, ctx)
		if err != nil {
			log.Printf("Failed to parse feed %s: %v", fc.URL, err)
			continue
		}

		name := fc.Name
		if name == "" {
			name = feed.Title
		}

		count := 0
		for _, item := range feed.Items {
			if count >= maxPerFeed {
				break
			}
			converted := feedItem(item, "feed_"+sanitizeTag(name))
			if converted == nil {
				continue
			}
			all = append(all, converted)
			count++
		}
	}

	return all, nil
}

// feedItem converts a parsed feed entry, or returns nil when it lacks a
// usable title or link.
func feedItem(item *gofeed.Item, source string) *news.Item {
	link := item.Link
	if link == "" {
		link = item.GUID
	}
	title := strings.TrimSpace(item.Title)
	if link == "" || title == "" {
		return nil
	}

	content := item.Content
	if content == "" {
		content = item.Description
	}
	content = stripHTML(content)

	var published time.Time
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = *item.UpdatedParsed
	} else if item.Published != "" {
		published = parseDate(item.Published)
	}

	return news.New(title, content, link, source, published, item.Categories, 0)
}

// parseDate parses a date in whatever format the producer used. A zero
// time is returned for unparseable input, which the item constructor
// defaults to now.
func parseDate(raw string) time.Time {
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func sanitizeTag(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "_")
}

// stripHTML removes tags and decodes common entities so feed bodies
// compare cleanly with plain-text content.
func stripHTML(text string) string {
	var result strings.Builder
	inTag := false
	for _, r := range text {
		if r == '<' {
			inTag = true
			result.WriteRune(' ')
			continue
		}
		if r == '>' {
			inTag = false
			continue
		}
		if !inTag {
			result.WriteRune(r)
		}
	}

	s := result.String()
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&#39;", "'")

	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
