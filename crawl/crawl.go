// Package crawl implements the same-site crawl engine: a deduplicating
// frontier queue with wake-based worker suspension, a bounded worker
// pool with distributed termination detection, and a cancellable page
// stream with fail-fast error propagation.
package crawl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/fwojciec/sitecrawl"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the number of concurrent fetch workers used when
// the Crawler does not specify one.
const DefaultWorkers = 4

// Crawler drives a bounded pool of fetch workers against a shared
// frontier and streams fetched pages to the consumer.
type Crawler struct {
	Fetcher sitecrawl.PageFetcher
	Workers int
	Logger  *slog.Logger
}

// Crawl starts crawling at rootURL in the background and returns a
// stream of fetched pages.
//
// Every page reachable from the root whose URL is prefixed by rootURL
// is fetched exactly once. Extra seeds, if given, are enqueued
// alongside the root after the same prefix check. Cancel the context
// or the returned stream to abandon the crawl; parked workers are
// always woken and the stream's Err reports the outcome.
func (c *Crawler) Crawl(ctx context.Context, rootURL string, seeds ...string) (*Stream, error) {
	if c.Fetcher == nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINTERNAL, "crawler requires a page fetcher")
	}
	u, err := url.Parse(rootURL)
	if err != nil || !u.IsAbs() {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "invalid root URL %q", rootURL)
	}

	workers := c.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With("crawl_id", uuid.NewString())

	frontier := NewFrontier()
	frontier.Enqueue(rootURL)
	for _, seed := range seeds {
		if strings.HasPrefix(seed, rootURL) {
			frontier.Enqueue(seed)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	stream := newStream(cancel)

	go func() {
		var emitted atomic.Int64

		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < workers; i++ {
			i := i
			g.Go(func() error {
				return c.worker(gctx, i, frontier, stream, rootURL, logger, &emitted)
			})
		}
		err := g.Wait()

		// All workers are joined; wake anything that could still be
		// parked and stop serving dequeues.
		frontier.Close()
		cancel()

		if err != nil {
			logger.Error("crawl failed", "emitted", emitted.Load(), "err", err)
		} else {
			logger.Info("crawl complete", "emitted", emitted.Load())
		}
		stream.finish(err)
	}()

	return stream, nil
}

// worker repeatedly dequeues a URL, fetches it, enqueues its in-scope
// links, emits the page and marks the URL done, until the frontier is
// drained or the crawl is torn down. A fetch
// error is fatal to the whole crawl: it is returned to the errgroup,
// which cancels the sibling workers.
func (c *Crawler) worker(
	ctx context.Context,
	id int,
	frontier *Frontier,
	stream *Stream,
	basePrefix string,
	logger *slog.Logger,
	emitted *atomic.Int64,
) error {
	processed := 0
	for {
		jobURL, ok, err := frontier.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			logger.Debug("worker drained", "worker", id, "processed", processed)
			return nil
		}

		page, err := c.Fetcher.Fetch(ctx, jobURL)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", jobURL, err)
		}

		// Same-run dedup is the frontier's job: concurrent workers may
		// discover the same link and the frontier accepts it only once.
		var links []string
		for _, link := range page.OutgoingLinks {
			if strings.HasPrefix(link, basePrefix) {
				links = append(links, link)
			}
		}
		frontier.Enqueue(links...)

		// Emit before MarkDone: the page must be on the stream before
		// the crawl can be declared done.
		select {
		case stream.pages <- page:
		case <-ctx.Done():
			return ctx.Err()
		}
		frontier.MarkDone(jobURL)

		processed++
		emitted.Add(1)
	}
}
