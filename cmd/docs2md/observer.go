package main

import (
	"fmt"
	"io"

	"github.com/nao1215/docs2md/internal/database"
	"github.com/nao1215/docs2md/internal/model"
)

// consoleObserver prints per-page progress to the terminal and collects
// the per-page outcomes for the history database.
//
// The crawler invokes observers from its single control flow, so no
// locking is needed here.
type consoleObserver struct {
	out   io.Writer
	batch int

	// pages accumulates one record per processed page, in processing
	// order, for persistence after the run.
	pages []database.PageRecord
}

// newConsoleObserver creates a console observer writing to out.
func newConsoleObserver(out io.Writer) *consoleObserver {
	return &consoleObserver{out: out}
}

// OnBatchStart implements crawler.Observer.
func (o *consoleObserver) OnBatchStart(urls []string) {
	o.batch++
	fmt.Fprintf(o.out, "Batch %d: fetching %d page(s)\n", o.batch, len(urls))
}

// OnPageResult implements crawler.Observer.
func (o *consoleObserver) OnPageResult(result *model.PageResult, depth int) {
	if result.Success {
		fmt.Fprintf(o.out, "  [+] %s\n", result.URL)
	} else {
		fmt.Fprintf(o.out, "  [x] %s (%s)\n", result.URL, result.ErrorMessage)
	}

	o.pages = append(o.pages, database.PageRecord{
		URL:          result.URL,
		Depth:        depth,
		Success:      result.Success,
		ErrorMessage: result.ErrorMessage,
	})
}

// OnComplete implements crawler.Observer.
func (o *consoleObserver) OnComplete(model.CrawlSummary) {
	fmt.Fprintln(o.out)
}
