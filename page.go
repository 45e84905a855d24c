package sitecrawl

import "context"

// Page represents a fetched page. Immutable once constructed by a
// PageFetcher.
type Page struct {
	URL           string
	Title         string
	OutgoingLinks []string
}

// Validate returns an error if the page has invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageFetcher retrieves a single page and its outgoing links.
// Implementations hide transport selection, HTML parsing and link
// resolution; the crawl engine only consumes the typed result.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// PageStore persists pages to storage with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}

// SeedDiscoverer finds additional crawl seed URLs for a site, for
// example from its sitemap.
type SeedDiscoverer interface {
	Discover(ctx context.Context, baseURL string) ([]string, error)
}
