// Package report renders crawl summaries for humans and machines.
//
// Three formats are supported: plain text for terminals, Markdown for
// documentation and sharing, and JSON for downstream tooling. All
// formats implement the same Writer interface, so callers pick one (or
// several via MultiWriter) without caring about the rendering details.
package report
