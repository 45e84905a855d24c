package goquery_test

import (
	"context"
	"testing"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/goquery"
	"github.com/fwojciec/sitecrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPageFetcher(html string) *goquery.PageFetcher {
	return goquery.NewPageFetcher(&mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (string, error) {
			return html, nil
		},
	})
}

func TestPageFetcher_extracts_title_and_links(t *testing.T) {
	t.Parallel()

	html := `<html>
<head><title>  Getting Started  </title></head>
<body>
	<a href="/docs/install">Install</a>
	<a href="https://example.com/docs/config">Config</a>
	<a href="../api">API</a>
</body>
</html>`

	page, err := newPageFetcher(html).Fetch(context.Background(), "https://example.com/docs/intro")

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/docs/intro", page.URL)
	assert.Equal(t, "Getting Started", page.Title)
	assert.Equal(t, []string{
		"https://example.com/docs/install",
		"https://example.com/docs/config",
		"https://example.com/api",
	}, page.OutgoingLinks)
}

func TestPageFetcher_deduplicates_links_in_document_order(t *testing.T) {
	t.Parallel()

	html := `<body>
	<a href="/a">first</a>
	<a href="/b">second</a>
	<a href="/a">repeat</a>
</body>`

	page, err := newPageFetcher(html).Fetch(context.Background(), "https://example.com/")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, page.OutgoingLinks)
}

func TestPageFetcher_skips_non_http_links(t *testing.T) {
	t.Parallel()

	html := `<body>
	<a href="javascript:void(0)">js</a>
	<a href="mailto:hi@example.com">mail</a>
	<a href="tel:+1234567890">phone</a>
	<a href="data:text/plain,hello">data</a>
	<a href="/real">real</a>
</body>`

	page, err := newPageFetcher(html).Fetch(context.Background(), "https://example.com/")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/real"}, page.OutgoingLinks)
}

func TestPageFetcher_keeps_fragment_links_resolved(t *testing.T) {
	t.Parallel()

	// Fragment handling is the frontier's concern; the fetcher reports
	// the resolved link as-is.
	html := `<body><a href="#section">anchor</a></body>`

	page, err := newPageFetcher(html).Fetch(context.Background(), "https://example.com/docs")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/docs#section"}, page.OutgoingLinks)
}

func TestPageFetcher_propagates_transport_errors(t *testing.T) {
	t.Parallel()

	f := goquery.NewPageFetcher(&mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			return "", sitecrawl.Errorf(sitecrawl.EUNAVAILABLE, "HTTP 503 for %s", url)
		},
	})

	_, err := f.Fetch(context.Background(), "https://example.com/")

	assert.Equal(t, sitecrawl.EUNAVAILABLE, sitecrawl.ErrorCode(err))
}

func TestPageFetcher_rejects_invalid_URL(t *testing.T) {
	t.Parallel()

	_, err := newPageFetcher("").Fetch(context.Background(), "https://example.com/%zz")

	assert.Equal(t, sitecrawl.EINVALID, sitecrawl.ErrorCode(err))
}
