package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/sitecrawl"
)

// Ensure LoggingFrontier implements sitecrawl.Frontier.
var _ sitecrawl.Frontier = (*LoggingFrontier)(nil)

// LoggingFrontier wraps a Frontier with debug logging of queue activity.
// Next is logged only when it returns, to avoid a log line per
// suspension retry.
type LoggingFrontier struct {
	next   sitecrawl.Frontier
	logger *slog.Logger
}

// NewLoggingFrontier creates a new LoggingFrontier.
func NewLoggingFrontier(next sitecrawl.Frontier, logger *slog.Logger) *LoggingFrontier {
	return &LoggingFrontier{next: next, logger: logger}
}

// Enqueue delegates to the wrapped frontier and logs accepted counts.
func (f *LoggingFrontier) Enqueue(urls ...string) int {
	accepted := f.next.Enqueue(urls...)
	if accepted > 0 {
		f.logger.Debug("frontier enqueue",
			"offered", len(urls),
			"accepted", accepted,
			"pending", f.next.Len(),
		)
	}
	return accepted
}

// Next delegates to the wrapped frontier.
func (f *LoggingFrontier) Next(ctx context.Context) (string, bool, error) {
	url, ok, err := f.next.Next(ctx)
	if !ok {
		f.logger.Debug("frontier dequeue ended", "err", err)
	}
	return url, ok, err
}

// MarkDone delegates to the wrapped frontier.
func (f *LoggingFrontier) MarkDone(url string) {
	f.next.MarkDone(url)
}

// Seen delegates to the wrapped frontier.
func (f *LoggingFrontier) Seen(url string) bool {
	return f.next.Seen(url)
}

// Len delegates to the wrapped frontier.
func (f *LoggingFrontier) Len() int {
	return f.next.Len()
}

// Close delegates to the wrapped frontier.
func (f *LoggingFrontier) Close() {
	f.logger.Debug("frontier closed")
	f.next.Close()
}
