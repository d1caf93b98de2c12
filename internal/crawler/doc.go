// Package crawler implements the breadth-first crawl orchestration engine.
//
// # Architecture
//
// The crawler is organized around four cooperating pieces:
//
//   - Scope: decides whether a candidate URL belongs to the crawl's domain
//   - Frontier: the FIFO queue of pending (url, depth) entries plus the
//     insertion-ordered set of visited URLs; owns deduplication
//   - Crawler: drives the batch loop: drain a batch from the frontier,
//     fetch all entries concurrently, then process every outcome before
//     dispatching the next batch
//   - Stats: passive counters observed at the end of the run
//
// # Concurrency model
//
// A single control flow drives the frontier loop. Within each batch, up to
// BatchSize fetches run concurrently via errgroup; the batch boundary is a
// hard barrier, so no two batches ever overlap in flight. The frontier,
// visited set, and output state are mutated only between batch barriers,
// which is why none of them carry locks; the concurrency boundary is
// entirely at the fetch call.
package crawler
