package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/nao1215/docs2md/internal/filter"
	"github.com/nao1215/docs2md/internal/model"
)

// BrowserFetcher retrieves pages through a headless Chrome session so
// that client-side rendered documentation (React, Vue, Docusaurus in
// SPA mode) is captured after JavaScript runs.
//
// Design decision: We allocate a fresh browser context per fetch rather
// than keeping one session alive because:
//  1. Crawls are batch-bounded; session reuse saves little
//  2. A crashed tab cannot poison later fetches
//  3. The per-fetch timeout maps cleanly onto the browser context
type BrowserFetcher struct {
	// userAgent is presented to the site by the browser.
	userAgent string

	// timeout bounds one navigation plus render settle time.
	timeout time.Duration

	// settleDelay is how long to wait after navigation for client-side
	// rendering to finish.
	settleDelay time.Duration

	// filter optionally reduces each page to its essential content.
	filter filter.ContentFilter

	// logger records per-request diagnostics.
	logger *slog.Logger
}

// BrowserFetcherOption configures a BrowserFetcher.
type BrowserFetcherOption func(*BrowserFetcher)

// WithBrowserUserAgent sets the browser's User-Agent.
func WithBrowserUserAgent(ua string) BrowserFetcherOption {
	return func(f *BrowserFetcher) {
		f.userAgent = ua
	}
}

// WithBrowserTimeout bounds one navigation including render time.
func WithBrowserTimeout(timeout time.Duration) BrowserFetcherOption {
	return func(f *BrowserFetcher) {
		f.timeout = timeout
	}
}

// WithSettleDelay sets the post-navigation wait for client-side rendering.
func WithSettleDelay(delay time.Duration) BrowserFetcherOption {
	return func(f *BrowserFetcher) {
		f.settleDelay = delay
	}
}

// WithBrowserContentFilter sets the content filter applied to each page.
func WithBrowserContentFilter(cf filter.ContentFilter) BrowserFetcherOption {
	return func(f *BrowserFetcher) {
		f.filter = cf
	}
}

// WithBrowserLogger sets the logger for per-request diagnostics.
func WithBrowserLogger(logger *slog.Logger) BrowserFetcherOption {
	return func(f *BrowserFetcher) {
		f.logger = logger
	}
}

// NewBrowserFetcher creates a headless-browser fetcher.
func NewBrowserFetcher(opts ...BrowserFetcherOption) *BrowserFetcher {
	f := &BrowserFetcher{
		userAgent:   "docs2md/1.0 (+https://github.com/nao1215/docs2md)",
		timeout:     60 * time.Second,
		settleDelay: 1500 * time.Millisecond,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to the page, waits for rendering to settle, and
// returns the processed result built from the rendered DOM.
func (f *BrowserFetcher) Fetch(ctx context.Context, pageURL string) (*model.PageResult, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	execOpts := []chromedp.ExecAllocatorOption{
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(f.userAgent),
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, execOpts...)
	defer allocCancel()

	chromeCtx, chromeCancel := chromedp.NewContext(allocCtx)
	defer chromeCancel()

	var htmlContent string
	err := chromedp.Run(chromeCtx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(f.settleDelay),
		chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("browser fetch failed for %s: %w", pageURL, err)
	}

	f.logger.DebugContext(ctx, "rendered page", "url", pageURL, "html_bytes", len(htmlContent))
	return buildResult(ctx, pageURL, htmlContent, f.filter, f.logger)
}
