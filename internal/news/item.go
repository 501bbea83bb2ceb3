package news

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// Item represents one candidate piece of content collected from a source.
// Producers supply Title/Content/URL/Source and may supply the rest; the
// constructor fills in defaults so downstream code never sees a zero
// PublishedDate or an out-of-range score.
type Item struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	URL           string    `json:"url"`
	Source        string    `json:"source"`
	PublishedDate time.Time `json:"published_date"`
	Tags          []string  `json:"tags"`
	Score         float64   `json:"score"`
}

// New builds an Item. A zero publishedDate defaults to the current UTC
// time; non-zero dates are normalized to UTC. The score is clamped to
// [0,1]. The ID is derived from (title, url) once here and never
// recomputed afterwards.
func New(title, content, url, source string, publishedDate time.Time, tags []string, score float64) *Item {
	if publishedDate.IsZero() {
		publishedDate = time.Now().UTC()
	} else {
		publishedDate = publishedDate.UTC()
	}
	return &Item{
		ID:            itemID(title, url),
		Title:         title,
		Content:       content,
		URL:           url,
		Source:        source,
		PublishedDate: publishedDate,
		Tags:          tags,
		Score:         Clamp(score),
	}
}

// itemID derives the stable fingerprint of (title, url).
func itemID(title, url string) string {
	sum := md5.Sum([]byte(title + url))
	return hex.EncodeToString(sum[:])[:16]
}

// Clamp restricts a score to [0,1].
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// RaiseScore applies max(existing, assessed): scores are only ever
// raised, never lowered.
func (it *Item) RaiseScore(score float64) {
	score = Clamp(score)
	if score > it.Score {
		it.Score = score
	}
}

func (it *Item) String() string {
	title := it.Title
	if len([]rune(title)) > 50 {
		title = string([]rune(title)[:50]) + "..."
	}
	return fmt.Sprintf("Item(title=%q, source=%q)", title, it.Source)
}
