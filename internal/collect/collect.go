// Package collect gathers candidate news items from the configured
// producers. Each producer returns raw items; scoring, dedup, and
// ranking happen downstream in the curation engine.
package collect

import (
	"context"
	"log"

	"github.com/zenwen/ainews/internal/config"
	"github.com/zenwen/ainews/internal/news"
)

// Source is one producer of news items.
type Source interface {
	// Name identifies the producer in logs and results.
	Name() string
	// Collect fetches the producer's current batch.
	Collect(ctx context.Context) ([]*news.Item, error)
}

// Result holds the outcome of a collection run.
type Result struct {
	Items      []*news.Item
	TotalFound int
	BySource   map[string]int
	Errors     int
}

// Collector fans out over all enabled sources.
type Collector struct {
	sources []Source
}

// NewCollector builds a collector from configuration.
func NewCollector(cfg *config.Config) *Collector {
	var sources []Source

	if len(cfg.Sources.Feeds) > 0 {
		sources = append(sources, NewFeedSource(cfg.Sources.Feeds))
	}
	if cfg.Sources.Arxiv.Enabled {
		sources = append(sources, NewArxivSource(cfg.Sources.Arxiv))
	}
	if cfg.Sources.GitHub.Enabled {
		sources = append(sources, NewGitHubSource(cfg.Sources.GitHub))
	}
	if cfg.Sources.HuggingFace.Enabled {
		sources = append(sources, NewHuggingFaceSource(cfg.Sources.HuggingFace))
	}
	if cfg.Sources.WebSearch.Enabled {
		sources = append(sources, NewWebSearchSource(cfg.Sources.WebSearch))
	}

	return &Collector{sources: sources}
}

// NewCollectorWithSources builds a collector over explicit sources.
func NewCollectorWithSources(sources ...Source) *Collector {
	return &Collector{sources: sources}
}

// CollectAll runs every source in order. One source failing does not
// affect the others.
func (c *Collector) CollectAll(ctx context.Context) *Result {
	r := &Result{BySource: make(map[string]int)}

	for _, source := range c.sources {
		log.Printf("Collecting from %s...", source.Name())
		items, err := source.Collect(ctx)
		if err != nil {
			log.Printf("Source %s failed: %v", source.Name(), err)
			r.Errors++
			continue
		}

		r.Items = append(r.Items, items...)
		r.TotalFound += len(items)
		r.BySource[source.Name()] = len(items)
		log.Printf("Collected %d items from %s", len(items), source.Name())
	}

	log.Printf("Collection complete: %d items from %d sources, %d errors",
		r.TotalFound, len(c.sources), r.Errors)
	return r
}
