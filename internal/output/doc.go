// Package output materializes crawl results as Markdown files.
//
// Two interchangeable strategies exist, selected once at configuration
// time:
//
//   - Aggregate: buffer one section per page in processing order and
//     write a single combined index.md when the crawl completes. No
//     output exists until the whole crawl finishes.
//   - Mirror: write one file per page immediately, into a directory tree
//     derived from the site's URL structure, then write an index.md that
//     links every visited page. Per-page files are durable as soon as
//     each page is processed.
//
// The asymmetric durability is a deliberate tradeoff: aggregate favors
// a single shareable document, mirror favors partial results surviving
// an interrupted crawl.
package output
