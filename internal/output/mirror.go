package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/markdown"
)

// Mirror writes one Markdown file per page, into a directory tree that
// replicates the site's URL structure, and builds an index document
// linking every visited page once the crawl completes.
//
// Per-page files are written immediately, so a crawl aborted midway still
// leaves usable output; only the index is deferred to Finalize.
type Mirror struct {
	// outputRoot is the root output directory.
	outputRoot string

	// docName is the documentation sub-folder under outputRoot.
	docName string
}

// NewMirror creates a mirror materializer writing under outputRoot/docName.
func NewMirror(outputRoot, docName string) *Mirror {
	return &Mirror{
		outputRoot: outputRoot,
		docName:    docName,
	}
}

// Add writes the page's Markdown payload to the path derived from its
// URL, creating intermediate directories as needed.
func (m *Mirror) Add(pageURL string, _ int, md string) error {
	rel, err := RelativePath(pageURL)
	if err != nil {
		return fmt.Errorf("failed to derive path for %s: %w", pageURL, err)
	}

	full := filepath.Join(m.outputRoot, m.docName, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", pageURL, err)
	}
	if err := os.WriteFile(full, []byte(md), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", full, err)
	}
	return nil
}

// Finalize writes index.md listing one entry per visited URL, in dequeue
// order, as Markdown links to the mirrored files. The entry paths use the
// same derivation as Add, so every link resolves to the file the page was
// written to.
func (m *Mirror) Finalize(visited []string) error {
	dir := filepath.Join(m.outputRoot, m.docName)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.OpenFile(m.IndexPath(), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer f.Close()

	md := markdown.NewMarkdown(f)
	md.H1("Documentation Index")
	md.PlainText("")

	items := make([]string, 0, len(visited))
	for _, pageURL := range visited {
		rel, err := RelativePath(pageURL)
		if err != nil {
			continue
		}
		items = append(items, markdown.Link(Title(pageURL), rel))
	}
	md.BulletList(items...)

	if err := md.Build(); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}

// IndexPath returns the path of the index document.
func (m *Mirror) IndexPath() string {
	return filepath.Join(m.outputRoot, m.docName, "index.md")
}
