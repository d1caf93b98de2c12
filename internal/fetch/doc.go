// Package fetch retrieves documentation pages and turns each one into a
// processed result: extracted title, converted Markdown, optionally
// filtered Markdown, and the page's in-site links.
//
// Two fetchers are provided. HTTPFetcher issues plain GET requests and
// is the default. BrowserFetcher drives a headless Chrome instance for
// sites that only render their content client-side. Both produce
// identical result shapes, so the crawl loop does not care which one it
// holds.
package fetch
