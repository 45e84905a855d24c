// Package slog provides logging decorators for the sitecrawl interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitecrawl"
)

// Ensure LoggingPageFetcher implements sitecrawl.PageFetcher.
var _ sitecrawl.PageFetcher = (*LoggingPageFetcher)(nil)

// LoggingPageFetcher wraps a PageFetcher with per-fetch logging.
type LoggingPageFetcher struct {
	next   sitecrawl.PageFetcher
	logger *slog.Logger
}

// NewLoggingPageFetcher creates a new LoggingPageFetcher.
func NewLoggingPageFetcher(next sitecrawl.PageFetcher, logger *slog.Logger) *LoggingPageFetcher {
	return &LoggingPageFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingPageFetcher) Fetch(ctx context.Context, url string) (page *sitecrawl.Page, err error) {
	defer func(begin time.Time) {
		links := 0
		if page != nil {
			links = len(page.OutgoingLinks)
		}
		f.logger.Info("page fetch",
			"url", url,
			"links", links,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Ensure LoggingSeedDiscoverer implements sitecrawl.SeedDiscoverer.
var _ sitecrawl.SeedDiscoverer = (*LoggingSeedDiscoverer)(nil)

// LoggingSeedDiscoverer wraps a SeedDiscoverer with debug logging.
type LoggingSeedDiscoverer struct {
	next   sitecrawl.SeedDiscoverer
	logger *slog.Logger
}

// NewLoggingSeedDiscoverer creates a new LoggingSeedDiscoverer.
func NewLoggingSeedDiscoverer(next sitecrawl.SeedDiscoverer, logger *slog.Logger) *LoggingSeedDiscoverer {
	return &LoggingSeedDiscoverer{next: next, logger: logger}
}

// Discover delegates to the wrapped discoverer and logs the operation.
func (d *LoggingSeedDiscoverer) Discover(ctx context.Context, baseURL string) (seeds []string, err error) {
	defer func(begin time.Time) {
		d.logger.Info("seed discovery",
			"url", baseURL,
			"count", len(seeds),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Discover(ctx, baseURL)
}
