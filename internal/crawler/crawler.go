package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/docs2md/internal/config"
	"github.com/nao1215/docs2md/internal/model"
)

// Fetcher fetches one page and returns its structured outcome.
// Implementations live in the fetch package; the crawler never inspects
// HTML, only the PageResult.
//
// A returned error is equivalent to a failed PageResult: the crawler
// records it against the URL and continues. Fetchers should respect the
// context, but the crawler imposes no timeout of its own; timeout policy
// belongs to the fetch service.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*model.PageResult, error)
}

// Materializer receives the Markdown payload of each successful page and
// produces the final output once the crawl completes. Implementations live
// in the output package.
type Materializer interface {
	// Add records one successful page. Mirror-mode implementations write
	// the file immediately; aggregate-mode implementations buffer it.
	Add(pageURL string, depth int, markdown string) error

	// Finalize writes the index document. visited is the full list of
	// visited URLs in dequeue order.
	Finalize(visited []string) error

	// IndexPath returns the path of the index document Finalize writes.
	IndexPath() string
}

// Crawler drives a breadth-first crawl: it drains batches from the
// frontier, fetches each batch concurrently, and processes every outcome
// before dispatching the next batch.
type Crawler struct {
	// cfg is the immutable run configuration.
	cfg *config.Config

	// fetcher produces one PageResult per URL.
	fetcher Fetcher

	// materializer receives successful page payloads.
	materializer Materializer

	// frontier owns pending work and the visited set.
	frontier *Frontier

	// stats collects passive counters.
	stats *Stats

	// observer receives progress events.
	observer Observer

	// logger is used for crawl-level logging.
	logger *slog.Logger
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// WithObserver sets the progress observer.
func WithObserver(obs Observer) Option {
	return func(c *Crawler) {
		c.observer = obs
	}
}

// New creates a Crawler for the given configuration.
// The configuration must already be validated; New only derives the crawl
// scope from the start URL.
func New(cfg *config.Config, fetcher Fetcher, materializer Materializer, opts ...Option) (*Crawler, error) {
	base, err := url.Parse(cfg.StartURL)
	if err != nil || base.Host == "" {
		return nil, config.ErrInvalidStartURL
	}

	c := &Crawler{
		cfg:          cfg,
		fetcher:      fetcher,
		materializer: materializer,
		frontier:     NewFrontier(NewScope(base.Host)),
		stats:        NewStats(),
		observer:     NopObserver{},
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Run executes the crawl until the frontier is exhausted, finalizes the
// output, and returns the final statistics snapshot.
//
// Per-URL fetch failures are recorded and never abort the run. Filesystem
// write failures are fatal and abort immediately. On context cancellation
// the crawl stops at the next batch boundary with whatever the
// materializer has persisted so far; the index is not written.
func (c *Crawler) Run(ctx context.Context) (model.CrawlSummary, error) {
	c.frontier.Seed(c.cfg.StartURL)
	c.stats.URLDiscovered()

	c.logger.Info("starting crawl",
		"url", c.cfg.StartURL,
		"maxDepth", c.cfg.MaxDepth,
		"batchSize", c.cfg.BatchSize,
		"outputMode", string(c.cfg.OutputMode),
		"filterMode", string(c.cfg.FilterMode),
	)

	for {
		select {
		case <-ctx.Done():
			return c.snapshot(), ctx.Err()
		default:
		}

		batch := c.frontier.NextBatch(c.cfg.BatchSize)
		if len(batch) == 0 {
			break
		}

		results := c.fetchBatch(ctx, batch)

		// Outcomes are processed sequentially, in dispatch order, so the
		// aggregate document and the discovery order stay deterministic.
		for i, entry := range batch {
			if err := c.processResult(entry, results[i]); err != nil {
				return c.snapshot(), err
			}
		}
	}

	if err := c.materializer.Finalize(c.frontier.Visited()); err != nil {
		return c.snapshot(), fmt.Errorf("failed to finalize output: %w", err)
	}

	summary := c.snapshot()
	c.observer.OnComplete(summary)

	c.logger.Info("crawl complete",
		"discovered", summary.Discovered,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"elapsed", summary.Elapsed,
	)

	return summary, nil
}

// fetchBatch dispatches one fetch per entry, bounded by the batch size,
// and blocks until every fetch has resolved. This barrier is what keeps
// link discovery strictly breadth-first in units of whole batches and
// bounds fetch-side resource usage predictably.
func (c *Crawler) fetchBatch(ctx context.Context, batch []Entry) []*model.PageResult {
	urls := make([]string, len(batch))
	for i, entry := range batch {
		urls[i] = entry.URL
	}
	c.observer.OnBatchStart(urls)

	results := make([]*model.PageResult, len(batch))

	var g errgroup.Group
	g.SetLimit(c.cfg.BatchSize)

	for i, entry := range batch {
		g.Go(func() error {
			result, err := c.fetcher.Fetch(ctx, entry.URL)
			if err != nil {
				// A fetch error is a per-URL failure, never a batch failure.
				result = &model.PageResult{
					URL:          entry.URL,
					ErrorMessage: err.Error(),
				}
			}
			results[i] = result
			return nil
		})
	}

	// Goroutines never return errors; failures are encoded in the results.
	_ = g.Wait() //nolint:errcheck

	return results
}

// processResult consumes one fetch outcome: materializes the payload,
// re-enqueues in-scope links while depth budget remains, and updates the
// counters. Only materializer write errors are returned; they are fatal.
func (c *Crawler) processResult(entry Entry, result *model.PageResult) error {
	if !result.Success {
		c.logger.Debug("page failed", "url", result.URL, "error", result.ErrorMessage)
		c.stats.URLProcessed(false)
		c.stats.RecordFailure(result.URL, result.ErrorMessage)
		c.observer.OnPageResult(result, entry.Depth)
		return nil
	}

	if err := c.materializer.Add(result.URL, entry.Depth, c.selectPayload(result)); err != nil {
		return fmt.Errorf("failed to write output for %s: %w", result.URL, err)
	}

	if entry.Depth < c.cfg.MaxDepth {
		nextDepth := entry.Depth + 1
		for _, link := range result.InternalLinks {
			abs := resolveLink(result.URL, link)
			if abs == "" {
				continue
			}
			if c.frontier.Discover(abs, nextDepth) {
				c.stats.URLDiscovered()
			}
		}
	}

	c.stats.URLProcessed(true)
	c.observer.OnPageResult(result, entry.Depth)
	return nil
}

// selectPayload picks the Markdown payload per the active filter mode:
// LLM mode prefers the filtered Markdown and falls back to the raw
// conversion when the filter produced nothing; heuristic mode uses the raw
// conversion. The result is an empty string at worst, never absent.
func (c *Crawler) selectPayload(result *model.PageResult) string {
	if c.cfg.FilterMode == config.FilterModeLLM && result.FitMarkdown != "" {
		return result.FitMarkdown
	}
	return result.Markdown
}

// snapshot fills the run-identifying fields into the stats snapshot.
func (c *Crawler) snapshot() model.CrawlSummary {
	summary := c.stats.Snapshot()
	summary.StartURL = c.cfg.StartURL
	summary.DocName = c.cfg.DocName
	summary.IndexPath = c.materializer.IndexPath()
	return summary
}

// resolveLink resolves a possibly-relative link against the URL of the
// page it was found on. It returns an empty string when either URL does
// not parse; such links are silently dropped.
func resolveLink(pageURL, link string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
