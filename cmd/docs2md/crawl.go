package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/docs2md/internal/config"
	"github.com/nao1215/docs2md/internal/crawler"
	"github.com/nao1215/docs2md/internal/database"
	"github.com/nao1215/docs2md/internal/fetch"
	"github.com/nao1215/docs2md/internal/filter"
	"github.com/nao1215/docs2md/internal/log"
	"github.com/nao1215/docs2md/internal/model"
	"github.com/nao1215/docs2md/internal/output"
	"github.com/nao1215/docs2md/internal/report"
	"github.com/nao1215/docs2md/internal/update"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl <start-url>",
		Short: "Crawl a documentation site and convert it to Markdown",
		Long: `Crawl fetches a documentation site breadth-first, starting from the given
URL, and converts every in-scope page (same host or a subdomain) to
Markdown.

Pages are fetched in concurrent batches; links found on each page are
followed up to the configured depth. Output is written under
<output>/<doc-name> as one combined document (aggregate mode) or one
file per page plus an index (mirror mode).

Examples:
  # Convert a documentation site into a single Markdown file
  docs2md crawl https://docs.example.com --doc-name exampledocs

  # Mirror the site structure, following links two levels deep
  docs2md crawl https://docs.example.com -n exampledocs -m mirror -d 2

  # Extract essential content with an OpenAI model
  docs2md crawl https://docs.example.com -n exampledocs --llm-filtering

  # Render JavaScript-built sites in a headless browser
  docs2md crawl https://docs.example.com -n exampledocs --render

Configuration file (` + config.DefaultConfigFile + `) example:
  sites:
    docs.example.com:
      cookie: "session_id=abc123"
      headers:
        Authorization: "Bearer token"
      depth: 2`,
		Args: cobra.ExactArgs(1),
		RunE: runCrawlCmd,
	}

	// Crawl shape flags
	cmd.Flags().StringP("doc-name", "n", "",
		"Name of the documentation set; output goes to <output>/<doc-name> (required)")
	cmd.Flags().StringP("output", "o", "output",
		"Root output directory")
	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		"Maximum link depth relative to the start URL (0 = start page only)")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of pages fetched concurrently per round")

	// Output and filtering flags
	cmd.Flags().StringP("output-mode", "m", string(config.OutputModeAggregate),
		"Output mode: aggregate (one combined file) or mirror (one file per page)")
	cmd.Flags().BoolP("llm-filtering", "l", false,
		"Extract essential content with an OpenAI model instead of DOM heuristics")
	cmd.Flags().String("openai-key", "",
		"OpenAI API key for --llm-filtering (default: OPENAI_API_KEY from .env or environment)")

	// Fetch behavior flags
	cmd.Flags().BoolP("render", "r", false,
		"Render pages in a headless browser (for JavaScript-built sites)")
	cmd.Flags().Bool("cache", false,
		"Cache fetched pages in memory instead of refetching")
	cmd.Flags().Float64("rate", config.DefaultRequestsPerSecond,
		"Maximum requests per second (0 = unlimited)")

	cmd.Flags().String("summary", "simple",
		"Summary format printed after the crawl: simple, markdown, or json")

	// Run management flags
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite an existing <output>/<doc-name> directory")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: "+config.DefaultConfigFile+" in current or home directory)")
	cmd.Flags().Bool("no-history", false,
		"Skip recording this run in the history database")

	if err := cmd.MarkFlagRequired("doc-name"); err != nil {
		panic(err)
	}

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Handle interrupt signals: the crawl stops at the next batch
	// boundary and keeps whatever mirror-mode output exists.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Advisory only: every failure mode of the check is silent.
	if notice := update.NewChecker().Notice(ctx, getVersion()); notice != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), notice)
	}

	return runCrawl(ctx, cmd, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.StartURL = args[0]
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.DocName, err = cmd.Flags().GetString("doc-name")
	if err != nil {
		return nil, err
	}

	cfg.OutputDir, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.MaxDepth, err = cmd.Flags().GetInt("depth")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	outputMode, err := cmd.Flags().GetString("output-mode")
	if err != nil {
		return nil, err
	}
	cfg.OutputMode, err = config.ParseOutputMode(outputMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, outputMode)
	}

	llmFiltering, err := cmd.Flags().GetBool("llm-filtering")
	if err != nil {
		return nil, err
	}
	if llmFiltering {
		cfg.FilterMode = config.FilterModeLLM
	}

	cfg.OpenAIKey, err = cmd.Flags().GetString("openai-key")
	if err != nil {
		return nil, err
	}
	if cfg.OpenAIKey == "" {
		cfg.OpenAIKey = config.OpenAIKeyFromEnv()
	}

	cfg.Render, err = cmd.Flags().GetBool("render")
	if err != nil {
		return nil, err
	}

	cfg.CacheEnabled, err = cmd.Flags().GetBool("cache")
	if err != nil {
		return nil, err
	}

	cfg.RequestsPerSecond, err = cmd.Flags().GetFloat64("rate")
	if err != nil {
		return nil, err
	}

	cfg.Force, err = cmd.Flags().GetBool("force")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load site-specific configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	return cfg, nil
}

// runCrawl executes the crawl.
func runCrawl(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	if err := prepareOutputDir(cfg); err != nil {
		return err
	}

	// Site-specific overrides apply to the crawl's base domain.
	siteConfig := cfg.SiteConfigs.GetSiteConfig(cfg.BaseDomain())
	if siteConfig.Depth > 0 {
		cfg.MaxDepth = siteConfig.Depth
	}

	fetcher := newFetcher(cfg, siteConfig, logger)
	materializer := newMaterializer(cfg)
	observer := newConsoleObserver(cmd.OutOrStdout())

	c, err := crawler.New(cfg, fetcher, materializer,
		crawler.WithLogger(logger),
		crawler.WithObserver(observer),
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Crawling %s (depth %d, batch %d)...\n\n",
		cfg.StartURL, cfg.MaxDepth, cfg.BatchSize)
	startTime := time.Now()

	summary, err := c.Run(ctx)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}
	summary.Elapsed = time.Since(startTime)

	writer, err := newSummaryWriter(cmd, cfg)
	if err != nil {
		return err
	}
	if _, err := writer.Write(&summary); err != nil {
		logger.Error("failed to write summary", "error", err)
	}

	if cfg.SaveHistory {
		if err := saveRunHistory(ctx, cfg, &summary, observer.pages); err != nil {
			// History is best-effort: a broken database never fails a
			// crawl that already produced its output.
			logger.Error("failed to save run history", "error", err)
		}
	}

	return nil
}

// prepareOutputDir aborts when the documentation folder already exists,
// unless --force was given, in which case the old folder is removed.
func prepareOutputDir(cfg *config.Config) error {
	target := filepath.Join(cfg.OutputDir, cfg.DocName)
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to check output directory: %w", err)
	}

	if !cfg.Force {
		return fmt.Errorf("output directory already exists: %s (use -f to overwrite)", target)
	}
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("failed to remove existing output: %w", err)
	}
	return nil
}

// newContentFilter builds the content filter for the configured mode.
func newContentFilter(cfg *config.Config) filter.ContentFilter {
	if cfg.FilterMode == config.FilterModeLLM {
		return filter.NewLLM(cfg.OpenAIKey)
	}
	return filter.NewPruning()
}

// newFetcher builds the fetch service for the configured mode.
func newFetcher(cfg *config.Config, siteConfig config.SiteConfig, logger *slog.Logger) crawler.Fetcher {
	cf := newContentFilter(cfg)

	if cfg.Render {
		return fetch.NewBrowserFetcher(
			fetch.WithBrowserUserAgent(cfg.UserAgent),
			fetch.WithBrowserContentFilter(cf),
			fetch.WithBrowserLogger(logger),
		)
	}

	opts := []fetch.HTTPFetcherOption{
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithRateLimit(cfg.RequestsPerSecond),
		fetch.WithContentFilter(cf),
		fetch.WithLogger(logger),
	}
	if siteConfig.Cookie != "" {
		opts = append(opts, fetch.WithCookie(siteConfig.Cookie))
	}
	if len(siteConfig.Headers) > 0 {
		opts = append(opts, fetch.WithHeaders(siteConfig.Headers))
	}
	if cfg.CacheEnabled {
		opts = append(opts, fetch.WithCache(config.DefaultCacheSize))
	}

	return fetch.NewHTTPFetcher(&http.Client{Timeout: 30 * time.Second}, opts...)
}

// newSummaryWriter builds the report writer selected by --summary.
func newSummaryWriter(cmd *cobra.Command, cfg *config.Config) (report.Writer, error) {
	format, err := cmd.Flags().GetString("summary")
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "simple":
		return report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose)), nil
	case "markdown":
		return report.NewMarkdownWriter(out), nil
	case "json":
		return report.NewJSONWriter(out, report.WithPrettyPrint()), nil
	default:
		return nil, fmt.Errorf("invalid summary format %q: must be simple, markdown, or json", format)
	}
}

// newMaterializer builds the output materializer for the configured mode.
func newMaterializer(cfg *config.Config) crawler.Materializer {
	if cfg.OutputMode == config.OutputModeMirror {
		return output.NewMirror(cfg.OutputDir, cfg.DocName)
	}
	return output.NewAggregate(cfg.OutputDir, cfg.DocName)
}

// saveRunHistory records the run and its per-page outcomes.
func saveRunHistory(ctx context.Context, cfg *config.Config, summary *model.CrawlSummary, pages []database.PageRecord) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	if _, err := db.SaveRun(ctx, summary, string(cfg.OutputMode), string(cfg.FilterMode), pages); err != nil {
		return err
	}
	return nil
}
