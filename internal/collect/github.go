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

const githubSearchURL = "https://api.github.com/search/repositories"

// GitHubSource pulls recently-updated, starred repositories per topic
// from the GitHub search API.
type GitHubSource struct {
	cfg    config.GitHubConfig
	client *http.Client
}

// NewGitHubSource creates a GitHub trending source.
func NewGitHubSource(cfg config.GitHubConfig) *GitHubSource {
	if cfg.MaxRepos <= 0 {
		cfg.MaxRepos = 10
	}
	if cfg.MinStars <= 0 {
		cfg.MinStars = 100
	}
	return &GitHubSource{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *GitHubSource) Name() string { return "github" }

type githubSearchResponse struct {
	Items []githubRepo `json:"items"`
}

type githubRepo struct {
	FullName    string   `json:"full_name"`
	HTMLURL     string   `json:"html_url"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Stars       int      `json:"stargazers_count"`
	Topics      []string `json:"topics"`
	PushedAt    string   `json:"pushed_at"`
}

// Collect searches each configured topic for active repositories.
func (s *GitHubSource) Collect(ctx context.Context) ([]*news.Item, error) {
	var all []*news.Item

	for _, topic := range s.cfg.Topics {
		repos, err := s.searchTopic(ctx, topic)
		if err != nil {
			return all, fmt.Errorf("searching topic %s: %w", topic, err)
		}

		for _, repo := range repos {
			title := fmt.Sprintf("%s: %s", repo.FullName, firstSentence(repo.Description))
			content := formatRepoContent(repo)
			tags := append([]string{topic, "github", "repository"}, repo.Topics...)

			all = append(all, news.New(title, content, repo.HTMLURL,
				"github_"+topic, parseDate(repo.PushedAt), tags, 0))
		}
	}

	return all, nil
}

func (s *GitHubSource) searchTopic(ctx context.Context, topic string) ([]githubRepo, error) {
	params := url.Values{
		"q":        {fmt.Sprintf("topic:%s stars:>=%d", topic, s.cfg.MinStars)},
		"sort":     {"updated"},
		"order":    {"desc"},
		"per_page": {fmt.Sprintf("%d", s.cfg.MaxRepos)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, githubSearchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "ainews/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github api status %d", resp.StatusCode)
	}

	var parsed githubSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return parsed.Items, nil
}

func formatRepoContent(repo githubRepo) string {
	var b strings.Builder

	if repo.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", repo.Description)
	}
	fmt.Fprintf(&b, "Language: %s\nStars: %d\n", orUnknown(repo.Language), repo.Stars)
	if len(repo.Topics) > 0 {
		fmt.Fprintf(&b, "Topics: %s\n", strings.Join(repo.Topics, ", "))
	}
	fmt.Fprintf(&b, "\nRepository: %s", repo.HTMLURL)
	return b.String()
}

func firstSentence(text string) string {
	if text == "" {
		return "trending repository"
	}
	if idx := strings.IndexAny(text, ".!?"); idx > 0 {
		return text[:idx]
	}
	return text
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
