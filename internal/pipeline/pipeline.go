// Package pipeline orchestrates the end-to-end run: collect, enrich,
// curate, rewrite, format, validate, save.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/zenwen/ainews/internal/collect"
	"github.com/zenwen/ainews/internal/config"
	"github.com/zenwen/ainews/internal/curate"
	"github.com/zenwen/ainews/internal/database"
	"github.com/zenwen/ainews/internal/dedup"
	"github.com/zenwen/ainews/internal/fetch"
	"github.com/zenwen/ainews/internal/format"
	"github.com/zenwen/ainews/internal/news"
	"github.com/zenwen/ainews/internal/quality"
	"github.com/zenwen/ainews/internal/readability"
	"github.com/zenwen/ainews/internal/rewrite"
	"github.com/zenwen/ainews/internal/tokenize"
	"github.com/zenwen/ainews/internal/validate"
)

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the results of a full pipeline run.
type Result struct {
	Steps []StepResult
}

// Pipeline orchestrates the 7-step curation pipeline.
type Pipeline struct {
	cfg       *config.Config
	db        *database.DB
	curator   *curate.Curator
	validator *validate.Validator
	rewriter  rewrite.Rewriter
	formatter *format.Formatter
}

// New creates a new pipeline. The CJK-aware tokenizer is loaded once
// and shared by the curator and validator.
func New(cfg *config.Config, db *database.DB) (*Pipeline, error) {
	extractor, err := tokenize.NewGse()
	if err != nil {
		return nil, fmt.Errorf("loading tokenizer: %w", err)
	}

	assessor := quality.NewAssessor(extractor, readability.Flesch{})
	engine := dedup.NewEngine(extractor, tokenize.DefaultStopwords())
	curator := curate.New(assessor, engine,
		cfg.Curation.MinQualityScore, cfg.Curation.DuplicateThreshold)
	validator := validate.New(extractor, cfg.Curation.MinQualityScore)

	var rewriter rewrite.Rewriter
	if cfg.Rewrite.Enabled {
		apiKey := os.Getenv(cfg.Rewrite.APIKeyEnv)
		if apiKey == "" {
			log.Printf("Rewrite enabled but %s is not set; rewrite step will be skipped", cfg.Rewrite.APIKeyEnv)
		} else {
			rewriter = rewrite.NewOpenAI(cfg.Rewrite, apiKey)
		}
	}

	return &Pipeline{
		cfg:       cfg,
		db:        db,
		curator:   curator,
		validator: validator,
		rewriter:  rewriter,
		formatter: format.New(format.DefaultOptions()),
	}, nil
}

// Run executes the full pipeline.
func (p *Pipeline) Run(ctx context.Context) *Result {
	r := &Result{}

	// Step 1: Collect
	items, step := p.runCollect(ctx)
	r.Steps = append(r.Steps, step)
	if step.Err != nil || len(items) == 0 {
		return r
	}

	// Step 2: Enrich
	r.Steps = append(r.Steps, p.runEnrich(ctx, items))

	// Step 3: Curate
	curated, step := p.runCurate(items)
	r.Steps = append(r.Steps, step)
	if len(curated) == 0 {
		return r
	}

	if limit := p.cfg.Curation.MaxArticlesPerRun; limit > 0 && len(curated) > limit {
		curated = curated[:limit]
	}

	// Step 4: Save curated originals
	r.Steps = append(r.Steps, p.runSaveItems(curated))

	if p.rewriter == nil {
		r.Steps = append(r.Steps, StepResult{
			Name:    "Rewrite",
			Summary: "Skipped (not configured)",
		})
		return r
	}

	// Step 5: Rewrite
	pairs, step := p.runRewrite(ctx, curated)
	r.Steps = append(r.Steps, step)

	// Step 6: Format
	r.Steps = append(r.Steps, p.runFormat(pairs))

	// Step 7: Validate and save verdicts
	r.Steps = append(r.Steps, p.runValidate(pairs))

	return r
}

// Curate runs only the scoring and dedup stage over items already in
// hand. Used by the curate subcommand.
func (p *Pipeline) Curate(items []*news.Item) []*news.Item {
	return p.curator.Curate(items)
}

func (p *Pipeline) runCollect(ctx context.Context) ([]*news.Item, StepResult) {
	log.Println("Step 1/7: Collecting news...")
	collector := collect.NewCollector(p.cfg)
	result := collector.CollectAll(ctx)
	return result.Items, StepResult{
		Name:    "Collect",
		Summary: fmt.Sprintf("Found %d items from %d sources (%d source errors)", result.TotalFound, len(result.BySource), result.Errors),
	}
}

func (p *Pipeline) runEnrich(ctx context.Context, items []*news.Item) StepResult {
	log.Println("Step 2/7: Enriching thin content...")
	enricher := fetch.NewEnricher(15 * time.Second)
	result := enricher.Enrich(ctx, items)
	return StepResult{
		Name:    "Enrich",
		Summary: fmt.Sprintf("Enriched %d items, %d already full, %d failed", result.Enriched, result.AlreadyHadContent, result.Failed),
	}
}

func (p *Pipeline) runCurate(items []*news.Item) ([]*news.Item, StepResult) {
	log.Println("Step 3/7: Curating...")
	curated := p.curator.Curate(items)
	return curated, StepResult{
		Name:    "Curate",
		Summary: fmt.Sprintf("Kept %d of %d items", len(curated), len(items)),
	}
}

func (p *Pipeline) runSaveItems(items []*news.Item) StepResult {
	log.Println("Step 4/7: Saving curated items...")
	saved := 0
	for _, item := range items {
		if err := p.db.UpsertItem(item); err != nil {
			log.Printf("Failed to save %q: %v", item.Title, err)
			continue
		}
		saved++
	}
	return StepResult{
		Name:    "Save",
		Summary: fmt.Sprintf("Saved %d items", saved),
	}
}

func (p *Pipeline) runRewrite(ctx context.Context, items []*news.Item) ([]rewrite.Pair, StepResult) {
	log.Println("Step 5/7: Rewriting...")
	pairs := rewrite.Batch(ctx, p.rewriter, items, time.Second)

	rewritten := 0
	for _, pair := range pairs {
		if pair.Rewritten != pair.Original {
			rewritten++
		}
	}
	return pairs, StepResult{
		Name:    "Rewrite",
		Summary: fmt.Sprintf("Rewrote %d of %d items", rewritten, len(pairs)),
	}
}

func (p *Pipeline) runFormat(pairs []rewrite.Pair) StepResult {
	log.Println("Step 6/7: Formatting...")
	for _, pair := range pairs {
		if pair.Rewritten == pair.Original {
			continue
		}
		pair.Rewritten.Content = p.formatter.Format(pair.Rewritten.Title, pair.Rewritten.Content)
		if !format.WellFormed(pair.Rewritten.Content) {
			log.Printf("Formatted article has no heading structure: %s", pair.Rewritten.Title)
		}
	}
	return StepResult{
		Name:    "Format",
		Summary: fmt.Sprintf("Formatted %d articles", len(pairs)),
	}
}

func (p *Pipeline) runValidate(pairs []rewrite.Pair) StepResult {
	log.Println("Step 7/7: Validating...")
	valid := 0
	saved := 0

	for _, pair := range pairs {
		if pair.Rewritten == pair.Original {
			continue
		}

		result := p.validator.Validate(pair.Original, pair.Rewritten)
		if result.IsValid {
			valid++
		}

		rwID, err := p.db.InsertRewrite(pair.Original.ID, pair.Rewritten,
			p.cfg.Rewrite.Style, p.cfg.Rewrite.Model)
		if err != nil {
			log.Printf("Failed to save rewrite of %q: %v", pair.Original.Title, err)
			continue
		}
		if err := p.db.InsertValidation(rwID, &result); err != nil {
			log.Printf("Failed to save validation of %q: %v", pair.Original.Title, err)
			continue
		}
		saved++
	}

	return StepResult{
		Name:    "Validate",
		Summary: fmt.Sprintf("%d valid, %d saved", valid, saved),
	}
}
