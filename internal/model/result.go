package model

import "time"

// PageResult is the outcome of fetching and converting a single page.
// It is produced by the fetch service and consumed exactly once by the
// crawler's result processor. The crawler never inspects HTML; it only
// sees the structured result defined here.
type PageResult struct {
	// URL is the fetched page URL.
	URL string

	// Success reports whether the fetch, render, and conversion succeeded.
	// When false, ErrorMessage describes the failure and the markdown
	// fields are empty.
	Success bool

	// Title is the page title from the <title> tag, if any.
	Title string

	// Markdown is the page content converted to Markdown without any
	// content filtering applied.
	Markdown string

	// FitMarkdown is the content-filtered Markdown (heuristic pruning or
	// LLM extraction). Empty when no filter produced output; callers fall
	// back to Markdown.
	FitMarkdown string

	// InternalLinks are the links discovered on the page whose host matches
	// the page's own domain. They may be relative; the crawler resolves them
	// against URL before enqueueing.
	InternalLinks []string

	// ErrorMessage describes the failure when Success is false.
	ErrorMessage string
}

// PageFailure records one failed URL with the service-provided message.
type PageFailure struct {
	// URL is the page that failed.
	URL string `json:"url"`

	// Message is the error message reported by the fetch service.
	Message string `json:"message"`
}

// CrawlSummary is the final statistics snapshot of a crawl run.
// It is read once at crawl end for reporting and persistence; it never
// gates crawl progress.
type CrawlSummary struct {
	// StartURL is the seed URL of the run.
	StartURL string `json:"start_url"`

	// DocName is the documentation sub-folder name.
	DocName string `json:"doc_name"`

	// Discovered counts every URL accepted into the frontier, including
	// the seed.
	Discovered int `json:"discovered"`

	// Processed counts every fetch outcome handled, success or failure.
	Processed int `json:"processed"`

	// Succeeded counts successfully fetched and materialized pages.
	Succeeded int `json:"succeeded"`

	// Failed counts per-URL fetch failures.
	Failed int `json:"failed"`

	// Elapsed is the wall-clock duration of the crawl.
	Elapsed time.Duration `json:"elapsed"`

	// IndexPath is the path of the generated index document.
	IndexPath string `json:"index_path"`

	// Failures lists each failed URL with its error message.
	Failures []PageFailure `json:"failures,omitempty"`
}
