package crawler

// Entry is one unit of pending crawl work: a URL and the depth at which it
// was discovered. Entries are created when a link is discovered (or as the
// seed) and consumed exactly once by the batch loop.
type Entry struct {
	// URL is the absolute URL to fetch.
	URL string

	// Depth is the link distance from the seed. The seed is depth 0; a
	// link found on a depth-N page is depth N+1.
	Depth int
}

// Frontier owns the FIFO queue of pending entries and the set of URLs
// already handed out for fetching. "Visited" means dequeued for fetching,
// not fetch completed: a URL enters the visited set the moment NextBatch
// selects it, so the same URL can never be fetched twice even when many
// pages link to it.
//
// The visited set keeps insertion order so that listings derived from it
// (the mirror-mode index) are reproducible across runs.
//
// Frontier is not safe for concurrent use. The crawl loop mutates it only
// between batch barriers, from a single control flow, so no locking is
// needed.
type Frontier struct {
	// scope filters discovered URLs down to the crawl's domain.
	scope *Scope

	// pending is the FIFO queue of entries waiting to be fetched.
	pending []Entry

	// pendingSet mirrors pending for O(1) duplicate checks.
	pendingSet map[string]struct{}

	// visited holds every URL already dequeued for fetching.
	visited map[string]struct{}

	// visitedOrder records visited URLs in dequeue order.
	visitedOrder []string
}

// NewFrontier creates an empty Frontier scoped to the given domain.
func NewFrontier(scope *Scope) *Frontier {
	return &Frontier{
		scope:      scope,
		pendingSet: make(map[string]struct{}),
		visited:    make(map[string]struct{}),
	}
}

// Seed enqueues the start URL at depth 0 unconditionally. It does not mark
// the URL visited; that happens when NextBatch dequeues it.
func (f *Frontier) Seed(rawURL string) {
	f.pending = append(f.pending, Entry{URL: rawURL, Depth: 0})
	f.pendingSet[rawURL] = struct{}{}
}

// NextBatch pops up to n entries from the head of the pending queue.
// Entries whose URL is already visited are discarded without counting
// toward the batch; every returned entry is marked visited before the
// batch is handed back. An empty batch means the pending queue is
// exhausted and the crawl is complete.
func (f *Frontier) NextBatch(n int) []Entry {
	batch := make([]Entry, 0, n)

	for len(f.pending) > 0 && len(batch) < n {
		entry := f.pending[0]
		f.pending = f.pending[1:]
		delete(f.pendingSet, entry.URL)

		if _, ok := f.visited[entry.URL]; ok {
			continue
		}

		f.visited[entry.URL] = struct{}{}
		f.visitedOrder = append(f.visitedOrder, entry.URL)
		batch = append(batch, entry)
	}

	return batch
}

// Discover offers a URL found on a crawled page. It is appended to the
// pending queue only when it is in scope, not yet visited, and not already
// pending; otherwise the call is a silent no-op. Re-discovery keeps the
// first-seen depth (first-write-wins).
//
// Discover reports whether the URL was accepted, so the caller can count
// discovered URLs without the frontier owning statistics.
func (f *Frontier) Discover(rawURL string, depth int) bool {
	if !f.scope.InScope(rawURL) {
		return false
	}
	if _, ok := f.visited[rawURL]; ok {
		return false
	}
	if _, ok := f.pendingSet[rawURL]; ok {
		return false
	}

	f.pending = append(f.pending, Entry{URL: rawURL, Depth: depth})
	f.pendingSet[rawURL] = struct{}{}
	return true
}

// Visited returns the visited URLs in the order they were dequeued.
// The returned slice is a copy; mutating it does not affect the frontier.
func (f *Frontier) Visited() []string {
	out := make([]string, len(f.visitedOrder))
	copy(out, f.visitedOrder)
	return out
}

// PendingLen returns the number of entries waiting in the queue.
func (f *Frontier) PendingLen() int {
	return len(f.pending)
}
