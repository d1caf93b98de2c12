package config

import (
	"net/url"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The crawl-shape defaults favor shallow crawls with small fixed batches,
// which work well for documentation sites: they are usually wide rather
// than deep.
const (
	// DefaultMaxDepth limits link-following to one level below the seed.
	// Documentation landing pages typically link every section directly,
	// so depth 1 captures most sites; deeper crawls are opt-in.
	DefaultMaxDepth = 1

	// DefaultBatchSize is the number of pages fetched concurrently per
	// round. Five concurrent fetches keeps browser/renderer resource usage
	// predictable while still overlapping network latency.
	DefaultBatchSize = 5

	// DefaultUserAgent identifies docs2md in HTTP requests so site
	// operators can recognize crawler traffic in their logs.
	DefaultUserAgent = "docs2md/1.0 (+https://github.com/nao1215/docs2md)"

	// DefaultMaxBodySize limits the response body size to read.
	// 10MB is generous for HTML documentation pages while preventing
	// memory exhaustion from unexpected payloads.
	DefaultMaxBodySize = 10 * 1024 * 1024

	// DefaultRequestsPerSecond is the politeness rate limit applied by the
	// fetch service. Two requests per second per crawl is conservative for
	// documentation hosts.
	DefaultRequestsPerSecond = 2

	// DefaultCacheSize is the number of fetched pages kept in the LRU page
	// cache when caching is enabled.
	DefaultCacheSize = 512

	// AppName is the application name used for XDG directory paths.
	AppName = "docs2md"
)

// OutputMode selects the output materialization strategy.
// The mode is resolved once at configuration time; the pipeline never
// re-branches on it after the materializer is constructed.
type OutputMode string

const (
	// OutputModeAggregate accumulates one section per page and writes a
	// single combined index.md when the crawl completes.
	OutputModeAggregate OutputMode = "aggregate"

	// OutputModeMirror writes one file per page into a directory tree
	// derived from the site's URL structure, plus an index.md listing
	// every visited page.
	OutputModeMirror OutputMode = "mirror"
)

// ParseOutputMode parses a user-supplied output mode string.
// The legacy names "single" and "multiple" are accepted as aliases for
// aggregate and mirror.
func ParseOutputMode(s string) (OutputMode, error) {
	switch s {
	case "aggregate", "single":
		return OutputModeAggregate, nil
	case "mirror", "multiple":
		return OutputModeMirror, nil
	default:
		return "", ErrInvalidOutputMode
	}
}

// FilterMode selects the content-filtering strategy applied by the fetch
// service before Markdown is handed to the materializer.
type FilterMode string

const (
	// FilterModeHeuristic prunes boilerplate (navigation, sidebars,
	// footers) using DOM heuristics. No credential required.
	FilterModeHeuristic FilterMode = "heuristic"

	// FilterModeLLM extracts the essential documentation content using an
	// OpenAI model. Requires an API key, validated before the crawl starts.
	FilterModeLLM FilterMode = "llm"
)

// ParseFilterMode parses a user-supplied filter mode string.
func ParseFilterMode(s string) (FilterMode, error) {
	switch s {
	case "heuristic":
		return FilterModeHeuristic, nil
	case "llm":
		return FilterModeLLM, nil
	default:
		return "", ErrInvalidFilterMode
	}
}

// Config holds all configuration for a single crawl run.
// It is populated from CLI flags, the optional config file, and the
// environment, then validated once and treated as read-only for the
// duration of the run.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., FetchConfig, OutputConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant
// benefit.
type Config struct {
	// StartURL is the seed URL of the crawl. Its host defines the crawl's
	// base domain; only that host and its subdomains are in scope.
	StartURL string

	// DocName is the sub-folder name under OutputDir that receives the
	// generated Markdown.
	DocName string

	// OutputDir is the root output directory. Files are written under
	// OutputDir/DocName.
	OutputDir string

	// MaxDepth is the maximum link depth relative to the seed (depth 0).
	// Links discovered at depth MaxDepth are not followed.
	MaxDepth int

	// BatchSize is the maximum number of concurrent fetches per round.
	// Each round is a hard barrier: no fetch from the next round starts
	// until every fetch in the current round has resolved.
	BatchSize int

	// OutputMode selects aggregate or mirror materialization.
	OutputMode OutputMode

	// FilterMode selects heuristic pruning or LLM-based extraction.
	FilterMode FilterMode

	// OpenAIKey is the API credential for FilterModeLLM. Resolution order:
	// --openai-key flag, then .env, then the OPENAI_API_KEY environment
	// variable. Required only in LLM mode.
	OpenAIKey string

	// Render enables headless-browser rendering for JavaScript-built
	// documentation sites. When false, pages are fetched with a plain
	// HTTP client.
	Render bool

	// CacheEnabled enables the in-memory LRU page cache. The default is
	// bypass: every page is fetched fresh.
	CacheEnabled bool

	// Force overwrites an existing OutputDir/DocName folder instead of
	// aborting the run.
	Force bool

	// ConfigFilePath is an explicit path to the .docs2md.yml file.
	// Empty means search the current directory and then the home directory.
	ConfigFilePath string

	// SiteConfigs holds per-site overrides loaded from the config file.
	SiteConfigs *File

	// Verbose enables debug-level log output.
	Verbose bool

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// RequestsPerSecond is the politeness rate limit for the fetch service.
	RequestsPerSecond float64

	// DBDir is the directory for the SQLite crawl history database.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveHistory records the run and its per-page outcomes in the history
	// database when true.
	SaveHistory bool
}

// NewConfig creates a Config with default values.
// Callers override specific fields from flags after creation.
func NewConfig() *Config {
	return &Config{
		MaxDepth:          DefaultMaxDepth,
		BatchSize:         DefaultBatchSize,
		OutputMode:        OutputModeAggregate,
		FilterMode:        FilterModeHeuristic,
		UserAgent:         DefaultUserAgent,
		MaxBodySize:       DefaultMaxBodySize,
		RequestsPerSecond: DefaultRequestsPerSecond,
		DBDir:             XDGDataDir(),
		SaveHistory:       true,
	}
}

// XDGDataDir returns the XDG data directory for docs2md.
// On Linux: ~/.local/share/docs2md
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// BaseDomain returns the host component of the start URL.
// It returns an empty string when the start URL does not parse; Validate
// rejects such configurations before any crawl begins.
func (c *Config) BaseDomain() string {
	u, err := url.Parse(c.StartURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// Validate checks the configuration and returns the first problem found.
// It is called once after flag parsing, before any crawling begins, so
// that configuration mistakes (including a missing LLM credential) are
// reported up front rather than mid-crawl.
func (c *Config) Validate() error {
	if c.StartURL == "" {
		return ErrNoStartURL
	}
	u, err := url.Parse(c.StartURL)
	if err != nil || u.Host == "" {
		return ErrInvalidStartURL
	}

	if c.DocName == "" {
		return ErrNoDocName
	}

	if c.MaxDepth < 0 {
		return ErrInvalidDepth
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	switch c.OutputMode {
	case OutputModeAggregate, OutputModeMirror:
	default:
		return ErrInvalidOutputMode
	}

	switch c.FilterMode {
	case FilterModeHeuristic, FilterModeLLM:
	default:
		return ErrInvalidFilterMode
	}

	// The LLM credential is a fatal precondition: it must never be
	// discovered missing mid-crawl.
	if c.FilterMode == FilterModeLLM && c.OpenAIKey == "" {
		return ErrMissingAPIKey
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.RequestsPerSecond < 0 {
		return ErrInvalidRateLimit
	}

	return nil
}
