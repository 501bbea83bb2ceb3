package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Sources  Sources  `yaml:"sources"`
	Curation Curation `yaml:"curation"`
	Rewrite  Rewrite  `yaml:"rewrite"`
	Output   Output   `yaml:"output"`
	Server   Server   `yaml:"server"`
	Logging  Logging  `yaml:"logging"`
}

type Sources struct {
	Feeds       []Feed            `yaml:"feeds"`
	Arxiv       ArxivConfig       `yaml:"arxiv"`
	GitHub      GitHubConfig      `yaml:"github"`
	HuggingFace HuggingFaceConfig `yaml:"huggingface"`
	WebSearch   WebSearchConfig   `yaml:"web_search"`
}

type Feed struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

type ArxivConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Categories []string `yaml:"categories"`
	MaxPapers  int      `yaml:"max_papers"`
	DaysBack   int      `yaml:"days_back"`
}

type GitHubConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Topics   []string `yaml:"topics"`
	MinStars int      `yaml:"min_stars"`
	MaxRepos int      `yaml:"max_repos"`
}

type HuggingFaceConfig struct {
	Enabled  bool `yaml:"enabled"`
	MaxItems int  `yaml:"max_items"`
}

type WebSearchConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Queries    []string `yaml:"queries"`
	MaxResults int      `yaml:"max_results_per_query"`
}

// Curation holds the engine's two quality knobs plus the per-run cap on
// articles sent to rewriting.
type Curation struct {
	MinQualityScore    float64 `yaml:"min_quality_score"`
	DuplicateThreshold float64 `yaml:"duplicate_threshold"`
	MaxArticlesPerRun  int     `yaml:"max_articles_per_run"`
}

type Rewrite struct {
	Enabled   bool   `yaml:"enabled"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
	Style     string `yaml:"style"`
	MaxLength int    `yaml:"max_length"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for ainews.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "ainews")
}

// DataDir returns the XDG data directory for ainews.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "ainews")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/ainews/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'ainews init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Sources: Sources{
			Arxiv: ArxivConfig{
				Enabled:    true,
				Categories: []string{"cs.AI", "cs.LG", "cs.CL", "cs.CV"},
				MaxPapers:  10,
				DaysBack:   7,
			},
			GitHub: GitHubConfig{
				Enabled:  true,
				Topics:   []string{"artificial-intelligence", "machine-learning", "deep-learning", "nlp"},
				MinStars: 100,
				MaxRepos: 10,
			},
			HuggingFace: HuggingFaceConfig{
				Enabled:  true,
				MaxItems: 10,
			},
			WebSearch: WebSearchConfig{
				Enabled:    true,
				Queries:    []string{"AI news today", "machine learning research"},
				MaxResults: 5,
			},
		},
		Curation: Curation{
			MinQualityScore:    0.6,
			DuplicateThreshold: 0.8,
			MaxArticlesPerRun:  5,
		},
		Rewrite: Rewrite{
			Enabled:   true,
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
			Style:     "通俗易懂",
			MaxLength: 3000,
		},
		Server:  Server{Port: 8000},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Curation.MinQualityScore < 0 || cfg.Curation.MinQualityScore > 1 {
		return nil, fmt.Errorf("curation.min_quality_score must be within [0,1], got %v", cfg.Curation.MinQualityScore)
	}
	if cfg.Curation.DuplicateThreshold < 0 || cfg.Curation.DuplicateThreshold > 1 {
		return nil, fmt.Errorf("curation.duplicate_threshold must be within [0,1], got %v", cfg.Curation.DuplicateThreshold)
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
