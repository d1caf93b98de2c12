package filter

import "context"

// ContentFilter extracts the essential documentation content from a
// page's HTML and returns it as Markdown.
//
// Implementations must tolerate arbitrary real-world HTML; a page the
// filter cannot improve should yield its best effort rather than an
// error. Errors are reserved for operational failures (network, API).
type ContentFilter interface {
	// Filter returns the filtered Markdown for the given page.
	Filter(ctx context.Context, pageURL, html string) (string, error)
}
