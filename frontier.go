package sitecrawl

import "context"

// Frontier manages a crawl queue: deduplication, in-flight accounting
// and suspension of idle workers.
//
// A crawl is done when no URL is pending and none is in flight. Next
// blocks while other workers may still produce work and reports ok=false
// only once the whole crawl is drained, so workers never poll.
type Frontier interface {
	// Enqueue adds URLs to the queue, dropping any whose canonical form
	// has been seen before. Suspended callers of Next are woken when at
	// least one URL is accepted. Returns the number of URLs accepted.
	Enqueue(urls ...string) int

	// Next returns the next URL to fetch and marks it in flight,
	// suspending the caller while the queue is momentarily empty but
	// other callers still hold in-flight work. It reports ok=false once
	// nothing is pending or in flight anywhere. A non-nil error means
	// the wait was interrupted: the context was canceled or the
	// frontier was closed.
	Next(ctx context.Context) (url string, ok bool, err error)

	// MarkDone removes the URL from the in-flight set. If this drains
	// the frontier, every suspended caller is woken so it can observe
	// the terminal condition.
	MarkDone(url string)

	// Seen reports whether the URL has been enqueued at any point.
	Seen(url string) bool

	// Len returns the number of pending URLs.
	Len() int

	// Close wakes every suspended caller unconditionally. It is used
	// during error and cancellation unwind so no caller is left parked
	// in Next. Subsequent Next calls fail with ECANCELED.
	Close()
}
