package crawler

import "github.com/nao1215/docs2md/internal/model"

// Observer receives crawl progress events. The crawler calls every method
// synchronously from its single control flow, so implementations need no
// locking of their own and must return promptly.
//
// Design decision: Progress display is injected rather than printed by the
// crawler so the core stays free of presentation concerns. The CLI supplies
// a console observer; tests supply recording observers.
type Observer interface {
	// OnBatchStart is called before a batch of URLs is dispatched for
	// concurrent fetching.
	OnBatchStart(urls []string)

	// OnPageResult is called for every processed fetch outcome, success
	// or failure, in processing order. depth is the page's distance from
	// the seed.
	OnPageResult(result *model.PageResult, depth int)

	// OnComplete is called once after the frontier is exhausted and the
	// output has been finalized.
	OnComplete(summary model.CrawlSummary)
}

// NopObserver is an Observer that ignores all events.
// It is the default when no observer is injected.
type NopObserver struct{}

// OnBatchStart implements Observer.
func (NopObserver) OnBatchStart([]string) {}

// OnPageResult implements Observer.
func (NopObserver) OnPageResult(*model.PageResult, int) {}

// OnComplete implements Observer.
func (NopObserver) OnComplete(model.CrawlSummary) {}
