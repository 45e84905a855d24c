package mock

import (
	"context"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of sitecrawl.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *sitecrawl.Page) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *sitecrawl.Page) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	if s.CommitFn == nil {
		return nil
	}
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	if s.AbortFn == nil {
		return nil
	}
	return s.AbortFn()
}

var _ sitecrawl.SeedDiscoverer = (*SeedDiscoverer)(nil)

// SeedDiscoverer is a mock implementation of sitecrawl.SeedDiscoverer.
type SeedDiscoverer struct {
	DiscoverFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (d *SeedDiscoverer) Discover(ctx context.Context, baseURL string) ([]string, error) {
	return d.DiscoverFn(ctx, baseURL)
}
