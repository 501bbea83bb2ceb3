// Package curate runs the batch curation pass: assess quality, drop
// weak items, remove near-duplicates, and rank the survivors.
package curate

import (
	"log"
	"sort"
	"time"

	"github.com/zenwen/ainews/internal/dedup"
	"github.com/zenwen/ainews/internal/news"
	"github.com/zenwen/ainews/internal/quality"
)

// DefaultMinQualityScore is the quality bar items must clear.
const DefaultMinQualityScore = 0.6

// Curator orchestrates assess, filter, dedup, and rank into one
// deterministic batch operation.
type Curator struct {
	assessor     *quality.Assessor
	engine       *dedup.Engine
	minQuality   float64
	dupThreshold float64
	now          func() time.Time
}

// New creates a curator with the given default thresholds. Zero values
// fall back to the package defaults.
func New(assessor *quality.Assessor, engine *dedup.Engine, minQuality, dupThreshold float64) *Curator {
	if minQuality <= 0 {
		minQuality = DefaultMinQualityScore
	}
	if dupThreshold <= 0 {
		dupThreshold = dedup.DefaultThreshold
	}
	return &Curator{
		assessor:     assessor,
		engine:       engine,
		minQuality:   minQuality,
		dupThreshold: dupThreshold,
		now:          time.Now,
	}
}

// Curate runs the pass with the curator's default thresholds.
func (c *Curator) Curate(items []*news.Item) []*news.Item {
	return c.CurateWith(items, c.minQuality, c.dupThreshold)
}

// CurateWith runs the pass with per-call threshold overrides. Steps are
// strictly ordered: quality filter over the ingestion-ordered batch,
// then dedup (so first-seen means first-ingested, not highest-ranked),
// then a stable rank by (score, published date) descending.
func (c *Curator) CurateWith(items []*news.Item, minQuality, dupThreshold float64) []*news.Item {
	if len(items) == 0 {
		return nil
	}

	now := c.now()

	survivors := make([]*news.Item, 0, len(items))
	for _, item := range items {
		item.RaiseScore(c.assessor.Assess(item, now))
		if item.Score >= minQuality {
			survivors = append(survivors, item)
		}
	}
	log.Printf("Quality filter: %d of %d items passed (min score %.2f)", len(survivors), len(items), minQuality)

	unique := c.engine.Dedupe(survivors, dupThreshold)
	log.Printf("Dedup: %d of %d items kept (threshold %.2f)", len(unique), len(survivors), dupThreshold)

	sort.SliceStable(unique, func(i, j int) bool {
		if unique[i].Score != unique[j].Score {
			return unique[i].Score > unique[j].Score
		}
		return unique[i].PublishedDate.After(unique[j].PublishedDate)
	})

	return unique
}
