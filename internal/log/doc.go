// Package log provides a redacting slog handler for docs2md.
// Crawl runs may carry an OpenAI API key and per-site authentication
// headers; the handler guarantees those values never reach log output,
// regardless of which component logs them.
package log
