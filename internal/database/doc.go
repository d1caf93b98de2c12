// Package database provides SQLite-based persistence for crawl run
// history. Each completed crawl is stored as one run row plus one row
// per processed page, which lets later invocations answer "when did I
// last convert these docs, and what failed" without re-crawling.
package database
