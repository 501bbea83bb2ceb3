package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/zenwen/ainews/internal/collect"
	"github.com/zenwen/ainews/internal/config"
	"github.com/zenwen/ainews/internal/database"
	"github.com/zenwen/ainews/internal/fetch"
	"github.com/zenwen/ainews/internal/news"
	"github.com/zenwen/ainews/internal/pipeline"
	"github.com/zenwen/ainews/internal/server"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "ainews",
	Short:   "AI news curation",
	Long:    "ainews collects AI news, scores and deduplicates it, rewrites the best items for a general audience, and validates the rewrites before publication.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(curateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("ainews", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/ainews/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure feeds, sources, and the rewrite API key.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}

		fmt.Println("Items:")
		fmt.Printf("  Collected: %d\n", stats.Items)
		fmt.Printf("  Rewritten: %d\n", stats.Rewrites)
		fmt.Printf("  Validated: %d\n", stats.Validations)
		fmt.Printf("  Publishable: %d\n", stats.ValidCount)

		if len(stats.BySource) > 0 {
			fmt.Println("\nBy source:")
			type kv struct {
				key string
				val int
			}
			var sorted []kv
			for k, v := range stats.BySource {
				sorted = append(sorted, kv{k, v})
			}
			sort.Slice(sorted, func(i, j int) bool { return sorted[i].val > sorted[j].val })
			for _, s := range sorted {
				fmt.Printf("  %s: %d\n", s.key, s.val)
			}
		}
		return nil
	},
}

// --- collect command ---

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect news from configured sources and store it",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Println("Collecting news from sources...")

		ctx := context.Background()
		collector := collect.NewCollector(cfg)
		result := collector.CollectAll(ctx)

		enricher := fetch.NewEnricher(0)
		enricher.Enrich(ctx, result.Items)

		saved := 0
		for _, item := range result.Items {
			if err := db.UpsertItem(item); err != nil {
				log.Printf("Failed to save %q: %v", item.Title, err)
				continue
			}
			saved++
		}

		fmt.Println("\nCollection complete:")
		fmt.Printf("  Total found: %d\n", result.TotalFound)
		fmt.Printf("  Saved: %d\n", saved)
		fmt.Printf("  Source errors: %d\n", result.Errors)

		if len(result.BySource) > 0 {
			fmt.Println("\nItems by source:")
			for name, count := range result.BySource {
				fmt.Printf("  %s: %d\n", name, count)
			}
		}
		return nil
	},
}

// --- curate command ---

var curateCmd = &cobra.Command{
	Use:   "curate",
	Short: "Re-score, deduplicate, and rank stored items",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		pipe, err := pipeline.New(cfg, db)
		if err != nil {
			return err
		}

		stored, err := db.ListItems(1000)
		if err != nil {
			return err
		}
		if len(stored) == 0 {
			fmt.Println("No items stored. Run 'ainews collect' first.")
			return nil
		}

		items := make([]*news.Item, 0, len(stored))
		for i := range stored {
			items = append(items, stored[i].Item())
		}

		curated := pipe.Curate(items)
		for _, item := range curated {
			if err := db.UpsertItem(item); err != nil {
				log.Printf("Failed to update %q: %v", item.Title, err)
			}
		}

		fmt.Printf("Kept %d of %d items:\n\n", len(curated), len(items))
		for i, item := range curated {
			fmt.Printf("  %2d. [%.2f] %s (%s)\n", i+1, item.Score, item.Title, item.Source)
		}
		return nil
	},
}

// --- run command ---

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: collect -> enrich -> curate -> rewrite -> format -> validate -> save",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		pipe, err := pipeline.New(cfg, db)
		if err != nil {
			return err
		}

		result := pipe.Run(context.Background())

		for i, step := range result.Steps {
			fmt.Printf("\nStep %d: %s\n", i+1, step.Name)
			if step.Err != nil {
				fmt.Printf("  Error: %v\n", step.Err)
			} else {
				fmt.Printf("  %s\n", step.Summary)
			}
		}

		fmt.Println("\nPipeline complete! Run 'ainews serve' to browse articles.")
		return nil
	},
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(db, port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (defaults to config)")
}

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "ainews.db")
	return database.Open(dbPath)
}
