package config

import (
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := parse([]byte(""))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if cfg.Curation.MinQualityScore != 0.6 {
		t.Errorf("default min_quality_score = %v, want 0.6", cfg.Curation.MinQualityScore)
	}
	if cfg.Curation.DuplicateThreshold != 0.8 {
		t.Errorf("default duplicate_threshold = %v, want 0.8", cfg.Curation.DuplicateThreshold)
	}
	if !cfg.Sources.Arxiv.Enabled || len(cfg.Sources.Arxiv.Categories) == 0 {
		t.Error("arxiv source should be enabled with default categories")
	}
	if cfg.Rewrite.Model != "gpt-4o-mini" {
		t.Errorf("default rewrite model = %q", cfg.Rewrite.Model)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("default port = %d, want 8000", cfg.Server.Port)
	}
}

func TestParseOverrides(t *testing.T) {
	yaml := `
curation:
  min_quality_score: 0.75
  duplicate_threshold: 0.9
sources:
  arxiv:
    enabled: false
server:
  port: 9100
`
	cfg, err := parse([]byte(yaml))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.Curation.MinQualityScore != 0.75 {
		t.Errorf("min_quality_score = %v, want 0.75", cfg.Curation.MinQualityScore)
	}
	if cfg.Curation.DuplicateThreshold != 0.9 {
		t.Errorf("duplicate_threshold = %v, want 0.9", cfg.Curation.DuplicateThreshold)
	}
	if cfg.Sources.Arxiv.Enabled {
		t.Error("arxiv should be disabled")
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("port = %d, want 9100", cfg.Server.Port)
	}
}

func TestParseRejectsOutOfRangeKnobs(t *testing.T) {
	_, err := parse([]byte("curation:\n  min_quality_score: 1.5\n"))
	if err == nil || !strings.Contains(err.Error(), "min_quality_score") {
		t.Errorf("expected range error, got %v", err)
	}

	_, err = parse([]byte("curation:\n  duplicate_threshold: -0.2\n"))
	if err == nil || !strings.Contains(err.Error(), "duplicate_threshold") {
		t.Errorf("expected range error, got %v", err)
	}
}

func TestDefaultConfigYAMLParses(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("embedded default config does not parse: %v", err)
	}
	if cfg.Curation.MinQualityScore != 0.6 {
		t.Errorf("embedded min_quality_score = %v", cfg.Curation.MinQualityScore)
	}
}
