package slog_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/sitecrawl/crawl"
	"github.com/fwojciec/sitecrawl/mock"
	slogdec "github.com/fwojciec/sitecrawl/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFrontier_logs_enqueue_counts(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := slogdec.NewLoggingFrontier(crawl.NewFrontier(), testLogger(&buf))

	accepted := f.Enqueue("https://x/a", "https://x/a#dup", "https://x/b")

	assert.Equal(t, 2, accepted)
	assert.Contains(t, buf.String(), "offered=3")
	assert.Contains(t, buf.String(), "accepted=2")
}

func TestLoggingFrontier_delegates_queue_operations(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := slogdec.NewLoggingFrontier(crawl.NewFrontier(), testLogger(&buf))

	f.Enqueue("https://x/a")
	assert.True(t, f.Seen("https://x/a"))
	assert.Equal(t, 1, f.Len())

	url, ok, err := f.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	f.MarkDone(url)

	_, ok, err = f.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoggingFrontier_passes_calls_through_unchanged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	var markedDone string
	var closed bool
	inner := &mock.Frontier{
		EnqueueFn:  func(urls ...string) int { return len(urls) },
		NextFn:     func(context.Context) (string, bool, error) { return "https://x/a", true, nil },
		MarkDoneFn: func(url string) { markedDone = url },
		SeenFn:     func(url string) bool { return url == "https://x/a" },
		LenFn:      func() int { return 7 },
		CloseFn:    func() { closed = true },
	}
	f := slogdec.NewLoggingFrontier(inner, testLogger(&buf))

	assert.Equal(t, 2, f.Enqueue("https://x/a", "https://x/b"))

	url, ok, err := f.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "https://x/a", url)

	f.MarkDone(url)
	assert.Equal(t, "https://x/a", markedDone)
	assert.True(t, f.Seen("https://x/a"))
	assert.False(t, f.Seen("https://x/b"))
	assert.Equal(t, 7, f.Len())

	f.Close()
	assert.True(t, closed)
	assert.Contains(t, buf.String(), "frontier closed")
}
