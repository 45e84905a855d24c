package mock

import (
	"context"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of sitecrawl.Frontier.
type Frontier struct {
	EnqueueFn  func(urls ...string) int
	NextFn     func(ctx context.Context) (string, bool, error)
	MarkDoneFn func(url string)
	SeenFn     func(url string) bool
	LenFn      func() int
	CloseFn    func()
}

func (f *Frontier) Enqueue(urls ...string) int {
	return f.EnqueueFn(urls...)
}

func (f *Frontier) Next(ctx context.Context) (string, bool, error) {
	return f.NextFn(ctx)
}

func (f *Frontier) MarkDone(url string) {
	f.MarkDoneFn(url)
}

func (f *Frontier) Seen(url string) bool {
	return f.SeenFn(url)
}

func (f *Frontier) Len() int {
	return f.LenFn()
}

func (f *Frontier) Close() {
	if f.CloseFn != nil {
		f.CloseFn()
	}
}
