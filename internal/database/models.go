package database

import "time"

// StoredItem is a news item row.
type StoredItem struct {
	ID            string
	Title         string
	Content       string
	URL           string
	Source        string
	PublishedDate time.Time
	Tags          []string
	Score         float64
	CollectedAt   string
}

// Rewrite is a rewritten rendition of a stored item.
type Rewrite struct {
	ID        int64
	ItemID    string
	Title     string
	Content   string
	Style     string
	Model     string
	CreatedAt string
}

// Validation is the quality verdict on a rewrite.
type Validation struct {
	RewriteID   int64
	Score       float64
	IsValid     bool
	Issues      []string
	Suggestions []string
	ValidatedAt string
}

// Article is the joined view the server renders: a stored item with
// its latest rewrite and that rewrite's validation, when present.
type Article struct {
	Item       StoredItem
	Rewrite    *Rewrite
	Validation *Validation
}

// Stats summarizes database contents.
type Stats struct {
	Items       int
	Rewrites    int
	Validations int
	ValidCount  int
	BySource    map[string]int
}
