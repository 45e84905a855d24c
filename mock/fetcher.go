// Package mock provides hand-written mock implementations of the
// sitecrawl interfaces for use in tests.
package mock

import (
	"context"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of sitecrawl.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ sitecrawl.PageFetcher = (*PageFetcher)(nil)

// PageFetcher is a mock implementation of sitecrawl.PageFetcher.
type PageFetcher struct {
	FetchFn func(ctx context.Context, url string) (*sitecrawl.Page, error)
}

func (f *PageFetcher) Fetch(ctx context.Context, url string) (*sitecrawl.Page, error) {
	return f.FetchFn(ctx, url)
}
