package crawl

import (
	"context"

	"github.com/fwojciec/sitecrawl"
)

// streamBuffer is how many pages a slow consumer may lag behind before
// workers block on emission.
const streamBuffer = 64

// Stream delivers fetched pages to a consumer as they arrive.
//
// Pages are emitted in arrival order, not URL order. Once the page
// channel is closed, Err reports the crawl outcome: nil on clean
// completion, the first fetch error under the fail-fast policy, or the
// context error after cancellation.
type Stream struct {
	pages  chan *sitecrawl.Page
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

func newStream(cancel context.CancelFunc) *Stream {
	return &Stream{
		pages:  make(chan *sitecrawl.Page, streamBuffer),
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Pages returns the channel of fetched pages. It is closed when the
// crawl completes, fails or is cancelled.
func (s *Stream) Pages() <-chan *sitecrawl.Page {
	return s.pages
}

// Err blocks until the crawl has fully unwound and returns its outcome.
// Call it after the page channel is closed, or after Cancel.
func (s *Stream) Err() error {
	<-s.done
	return s.err
}

// Cancel abandons the stream: the worker pool is torn down, parked
// workers are woken and no further fetches are dispatched. A fetch
// already in flight is allowed to finish; its result is discarded.
// Cancel is safe to call multiple times and after completion.
func (s *Stream) Cancel() {
	s.cancel()
}

// finish records the crawl outcome and releases consumers blocked in
// Err or ranging over Pages.
func (s *Stream) finish(err error) {
	s.err = err
	close(s.pages)
	close(s.done)
}
