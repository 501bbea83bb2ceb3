package rewrite

import (
	"context"
	"log"
	"time"

	"github.com/zenwen/ainews/internal/news"
)

// Pair couples an original item with its rewritten rendition so the
// validator can compare them.
type Pair struct {
	Original  *news.Item
	Rewritten *news.Item
}

// Batch rewrites items one at a time, pausing between API calls. An
// item whose rewrite fails is paired with itself so downstream steps
// still see it.
func Batch(ctx context.Context, r Rewriter, items []*news.Item, delay time.Duration) []Pair {
	pairs := make([]Pair, 0, len(items))

	for i, item := range items {
		if i > 0 && delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				log.Printf("Rewrite batch canceled after %d items", len(pairs))
				return pairs
			}
		}

		rewritten, err := r.RewriteItem(ctx, item)
		if err != nil {
			log.Printf("Rewrite failed for %q, keeping original: %v", item.Title, err)
			pairs = append(pairs, Pair{Original: item, Rewritten: item})
			continue
		}
		pairs = append(pairs, Pair{Original: item, Rewritten: rewritten})
	}

	return pairs
}
