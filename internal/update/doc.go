// Package update checks GitHub releases for a newer docs2md version.
//
// The check is advisory: it runs once before a crawl, times out quickly,
// and every failure mode (network, rate limit, malformed payload) is
// reported as "no update" so it can never interfere with a run.
package update
