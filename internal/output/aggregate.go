package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Aggregate accumulates one rendered section per page and writes a single
// combined index.md when the crawl completes. Sections keep processing
// order (breadth-first by batch), not URL order.
//
// No file is written before Finalize: a crash mid-crawl loses all
// aggregate output. Use Mirror when incremental durability matters.
type Aggregate struct {
	// outputRoot is the root output directory.
	outputRoot string

	// docName is the documentation sub-folder under outputRoot.
	docName string

	// sections holds the rendered sections in processing order.
	sections []string
}

// NewAggregate creates an aggregate materializer writing under
// outputRoot/docName.
func NewAggregate(outputRoot, docName string) *Aggregate {
	return &Aggregate{
		outputRoot: outputRoot,
		docName:    docName,
	}
}

// Add buffers one section: a title heading derived from the URL, the
// page's Markdown payload, and a horizontal-rule separator.
func (a *Aggregate) Add(pageURL string, _ int, markdown string) error {
	section := fmt.Sprintf("# %s\n\n%s\n\n---\n\n", Title(pageURL), markdown)
	a.sections = append(a.sections, section)
	return nil
}

// Finalize concatenates all buffered sections into a single index.md.
// The visited list is not needed in aggregate mode; sections were
// collected as outcomes arrived.
func (a *Aggregate) Finalize(_ []string) error {
	dir := filepath.Join(a.outputRoot, a.docName)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	content := strings.Join(a.sections, "")
	if err := os.WriteFile(a.IndexPath(), []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}

// IndexPath returns the path of the combined document.
func (a *Aggregate) IndexPath() string {
	return filepath.Join(a.outputRoot, a.docName, "index.md")
}
