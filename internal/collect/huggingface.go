package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zenwen/ainews/internal/config"
	"github.com/zenwen/ainews/internal/news"
)

const huggingFaceModelsURL = "https://huggingface.co/api/models"

// HuggingFaceSource pulls trending models from the Hugging Face hub API.
type HuggingFaceSource struct {
	cfg    config.HuggingFaceConfig
	client *http.Client
}

// NewHuggingFaceSource creates a Hugging Face trending-models source.
func NewHuggingFaceSource(cfg config.HuggingFaceConfig) *HuggingFaceSource {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = 10
	}
	return &HuggingFaceSource{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *HuggingFaceSource) Name() string { return "huggingface" }

type hfModel struct {
	ID           string   `json:"id"`
	PipelineTag  string   `json:"pipeline_tag"`
	Tags         []string `json:"tags"`
	Downloads    int      `json:"downloads"`
	Likes        int      `json:"likes"`
	LastModified string   `json:"lastModified"`
}

// Collect fetches the currently trending models sorted by recent downloads.
func (s *HuggingFaceSource) Collect(ctx context.Context) ([]*news.Item, error) {
	params := url.Values{
		"sort":      {"downloads"},
		"direction": {"-1"},
		"limit":     {fmt.Sprintf("%d", s.cfg.MaxItems)},
		"full":      {"false"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, huggingFaceModelsURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "ainews/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("huggingface api status %d", resp.StatusCode)
	}

	var models []hfModel
	if err := json.NewDecoder(resp.Body).Decode(&models); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	var items []*news.Item
	for _, m := range models {
		if m.ID == "" {
			continue
		}
		items = append(items, news.New(
			fmt.Sprintf("Trending model: %s", m.ID),
			formatModelContent(m),
			"https://huggingface.co/"+m.ID,
			"huggingface_models",
			parseDate(m.LastModified),
			modelTags(m),
			0,
		))
	}
	return items, nil
}

func formatModelContent(m hfModel) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Model %s is trending on the Hugging Face hub.\n\n", m.ID)
	if m.PipelineTag != "" {
		fmt.Fprintf(&b, "Task: %s\n", m.PipelineTag)
	}
	fmt.Fprintf(&b, "Downloads: %d\nLikes: %d\n", m.Downloads, m.Likes)
	if len(m.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(trimTags(m.Tags, 8), ", "))
	}
	fmt.Fprintf(&b, "\nModel page: https://huggingface.co/%s", m.ID)
	return b.String()
}

func modelTags(m hfModel) []string {
	tags := []string{"huggingface", "model"}
	if m.PipelineTag != "" {
		tags = append(tags, m.PipelineTag)
	}
	return append(tags, trimTags(m.Tags, 5)...)
}

func trimTags(tags []string, max int) []string {
	if len(tags) <= max {
		return tags
	}
	return tags[:max]
}
