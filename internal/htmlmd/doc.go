// Package htmlmd converts HTML documents to Markdown.
//
// It is a thin seam over the html-to-markdown converter so that the
// fetch and filter packages share one conversion path and tests can
// exercise it in isolation.
package htmlmd
