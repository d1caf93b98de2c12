package htmlmd

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Convert renders an HTML document as Markdown.
//
// Design decision: We use the html-to-markdown/v2 converter rather than
// a hand-rolled tree walk because it handles the awkward cases
// (nested lists, tables, code blocks with language hints) that
// documentation sites rely on.
func Convert(html string) (string, error) {
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}
