package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/docs2md/internal/model"
)

// SimpleWriter outputs human-readable text summaries.
// This format is designed for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables the per-URL failure listing.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with per-URL failure details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the crawl summary in human-readable format.
func (w *SimpleWriter) Write(summary *model.CrawlSummary) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         CRAWL SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Start URL:      %s\n", summary.StartURL))
	sb.WriteString(fmt.Sprintf("Documentation:  %s\n", summary.DocName))
	sb.WriteString(fmt.Sprintf("Discovered:     %d\n", summary.Discovered))
	sb.WriteString(fmt.Sprintf("Processed:      %d\n", summary.Processed))
	sb.WriteString(fmt.Sprintf("Succeeded:      %d\n", summary.Succeeded))
	sb.WriteString(fmt.Sprintf("Failed:         %d\n", summary.Failed))
	sb.WriteString(fmt.Sprintf("Elapsed:        %s\n", summary.Elapsed.Round(10*time.Millisecond)))
	sb.WriteString(fmt.Sprintf("Index:          %s\n", summary.IndexPath))
	sb.WriteString("\n")

	if len(summary.Failures) > 0 {
		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n")
		sb.WriteString("FAILED PAGES\n")
		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n\n")
		for _, f := range summary.Failures {
			sb.WriteString(fmt.Sprintf("  [x] %s\n", f.URL))
			if w.verbose && f.Message != "" {
				sb.WriteString(fmt.Sprintf("      %s\n", f.Message))
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}
