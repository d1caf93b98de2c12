package crawler

import (
	"time"

	"github.com/nao1215/docs2md/internal/model"
)

// Stats collects passive crawl counters. It is updated by the result
// processor on every outcome and read once at crawl end; it never gates
// or blocks crawl progress.
type Stats struct {
	// discovered counts every URL accepted into the frontier, seed included.
	discovered int

	// processed counts every handled fetch outcome.
	processed int

	// succeeded counts successful fetches.
	succeeded int

	// failed counts per-URL fetch failures.
	failed int

	// failures records each failed URL with its error message.
	failures []model.PageFailure

	// start is the crawl start timestamp.
	start time.Time
}

// NewStats creates a Stats with the start timestamp set to now.
func NewStats() *Stats {
	return &Stats{start: time.Now()}
}

// URLDiscovered records one URL accepted into the frontier.
func (s *Stats) URLDiscovered() {
	s.discovered++
}

// URLProcessed records one handled fetch outcome.
func (s *Stats) URLProcessed(success bool) {
	s.processed++
	if success {
		s.succeeded++
	} else {
		s.failed++
	}
}

// RecordFailure stores the URL and service-provided message of one failed
// fetch so the final summary can surface it to the operator.
func (s *Stats) RecordFailure(pageURL, message string) {
	s.failures = append(s.failures, model.PageFailure{URL: pageURL, Message: message})
}

// Elapsed returns the wall-clock time since the crawl started.
func (s *Stats) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Snapshot returns the current counters as a CrawlSummary.
// The StartURL, DocName, and IndexPath fields are filled in by the caller.
func (s *Stats) Snapshot() model.CrawlSummary {
	failures := make([]model.PageFailure, len(s.failures))
	copy(failures, s.failures)

	return model.CrawlSummary{
		Discovered: s.discovered,
		Processed:  s.processed,
		Succeeded:  s.succeeded,
		Failed:     s.failed,
		Elapsed:    s.Elapsed(),
		Failures:   failures,
	}
}
