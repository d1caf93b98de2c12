package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/nao1215/docs2md/internal/model"
)

// MarkdownWriter outputs crawl summaries in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the crawl summary in Markdown format.
func (w *MarkdownWriter) Write(summary *model.CrawlSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Crawl Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Start URL", "`" + summary.StartURL + "`"},
			{"Documentation", summary.DocName},
			{"Discovered", strconv.Itoa(summary.Discovered)},
			{"Processed", strconv.Itoa(summary.Processed)},
			{"Succeeded", strconv.Itoa(summary.Succeeded)},
			{"Failed", strconv.Itoa(summary.Failed)},
			{"Elapsed", summary.Elapsed.String()},
			{"Index", "`" + summary.IndexPath + "`"},
		},
	})
	md.PlainText("")

	w.writeAlert(md, summary)

	if len(summary.Failures) > 0 {
		md.H2("Failed Pages")
		md.PlainText("")

		rows := make([][]string, len(summary.Failures))
		for i, f := range summary.Failures {
			rows[i] = []string{"`" + f.URL + "`", f.Message}
		}
		md.Table(markdown.TableSet{
			Header: []string{"URL", "Error"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

// writeAlert writes an outcome alert based on the failure count.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.CrawlSummary) {
	switch {
	case summary.Processed == 0:
		md.Warning("No pages were processed.")
	case summary.Failed == 0:
		md.Tipf("All %d pages were converted successfully.", summary.Succeeded)
	case summary.Succeeded == 0:
		md.Cautionf("All %d pages failed; no content was converted.", summary.Failed)
	default:
		md.Warningf("%d of %d pages failed; the output is incomplete.", summary.Failed, summary.Processed)
	}
	md.PlainText("")
}
