// Package main provides the entry point for the docs2md CLI.
//
// docs2md crawls a documentation site breadth-first and converts every
// in-scope page to Markdown, producing either a single combined document
// or a mirrored directory tree with an index.
//
// Usage:
//
//	docs2md crawl https://docs.example.com --doc-name exampledocs
//
// See --help for all available options.
package main

// main is the entry point for docs2md.
func main() {
	Execute()
}
