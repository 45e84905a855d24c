package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/sitecrawl"
)

// Compile-time interface verification.
var _ sitecrawl.Frontier = (*Frontier)(nil)

// Frontier is an in-memory crawl queue with exact deduplication and
// wake-based suspension of idle callers. It is safe for concurrent use
// by multiple goroutines.
//
// All state is guarded by a single mutex. The seen set only grows and
// always covers the pending and in-flight sets, so a URL is dispatched
// at most once for the lifetime of the frontier.
type Frontier struct {
	mu       sync.Mutex
	pending  map[uint64]string
	inFlight map[uint64]struct{}
	seen     map[uint64]struct{}
	waiters  []chan struct{}
	closed   bool
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		pending:  make(map[uint64]string),
		inFlight: make(map[uint64]struct{}),
		seen:     make(map[uint64]struct{}),
	}
}

// Enqueue adds URLs to the queue, dropping any whose canonical form has
// been seen before. Every suspended caller of Next is woken when at
// least one URL is accepted; each re-checks the queue, so only as many
// as there are items proceed and the rest suspend again.
func (f *Frontier) Enqueue(urls ...string) int {
	f.mu.Lock()
	accepted := 0
	for _, u := range urls {
		key := sitecrawl.DedupKey(u)
		if _, ok := f.seen[key]; ok {
			continue
		}
		f.seen[key] = struct{}{}
		f.pending[key] = u
		accepted++
	}
	var wake []chan struct{}
	if accepted > 0 {
		wake = f.takeWaitersLocked()
	}
	f.mu.Unlock()

	for _, w := range wake {
		close(w)
	}
	return accepted
}

// Next returns the next pending URL and marks it in flight. No ordering
// is guaranteed. When the queue is momentarily empty but other callers
// still hold in-flight work, Next suspends until woken by Enqueue,
// MarkDone or Close and retries. It reports ok=false once nothing is
// pending or in flight anywhere.
func (f *Frontier) Next(ctx context.Context) (string, bool, error) {
	for {
		f.mu.Lock()
		if f.closed {
			f.mu.Unlock()
			return "", false, sitecrawl.Errorf(sitecrawl.ECANCELED, "frontier closed")
		}
		for key, u := range f.pending {
			delete(f.pending, key)
			f.inFlight[key] = struct{}{}
			f.mu.Unlock()
			return u, true, nil
		}
		if len(f.inFlight) == 0 {
			f.mu.Unlock()
			return "", false, nil
		}

		// Empty but not done: an in-flight fetch may still produce work.
		wake := make(chan struct{})
		f.waiters = append(f.waiters, wake)
		f.mu.Unlock()

		select {
		case <-wake:
		case <-ctx.Done():
			return "", false, ctx.Err()
		}
	}
}

// MarkDone removes the URL from the in-flight set. Discovering the
// terminal condition wakes every suspended caller so idle workers
// observe it and exit instead of blocking forever.
func (f *Frontier) MarkDone(url string) {
	f.mu.Lock()
	delete(f.inFlight, sitecrawl.DedupKey(url))
	var wake []chan struct{}
	if len(f.pending) == 0 && len(f.inFlight) == 0 {
		wake = f.takeWaitersLocked()
	}
	f.mu.Unlock()

	for _, w := range wake {
		close(w)
	}
}

// Seen reports whether the URL has been enqueued at any point.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.seen[sitecrawl.DedupKey(url)]
	return ok
}

// Len returns the number of pending URLs.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Close wakes every suspended caller unconditionally so it can observe
// cancellation instead of deadlocking. Subsequent Next calls fail with
// ECANCELED.
func (f *Frontier) Close() {
	f.mu.Lock()
	f.closed = true
	wake := f.takeWaitersLocked()
	f.mu.Unlock()

	for _, w := range wake {
		close(w)
	}
}

// takeWaitersLocked empties the waiter list. The caller must hold mu
// and close the returned channels after releasing it.
func (f *Frontier) takeWaitersLocked() []chan struct{} {
	wake := f.waiters
	f.waiters = nil
	return wake
}
