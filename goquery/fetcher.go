// Package goquery implements page fetching and link extraction using
// the goquery library.
package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitecrawl"
)

// Compile-time interface verification.
var _ sitecrawl.PageFetcher = (*PageFetcher)(nil)

// PageFetcher implements sitecrawl.PageFetcher by retrieving HTML over
// a transport Fetcher and parsing the title and outgoing links.
type PageFetcher struct {
	client sitecrawl.Fetcher
}

// NewPageFetcher creates a PageFetcher that retrieves HTML with client.
func NewPageFetcher(client sitecrawl.Fetcher) *PageFetcher {
	return &PageFetcher{client: client}
}

// Fetch retrieves the page at rawURL and extracts its title and
// outgoing links. Relative links are resolved against the page URL and
// returned in document order, deduplicated. Non-HTTP links
// (javascript:, mailto:, tel:, data:) are skipped.
func (f *PageFetcher) Fetch(ctx context.Context, rawURL string) (*sitecrawl.Page, error) {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "invalid URL: %v", err)
	}

	html, err := f.client.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	page := &sitecrawl.Page{
		URL:   rawURL,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		page.OutgoingLinks = append(page.OutgoingLinks, resolved)
	})

	return page, nil
}

// resolveURL resolves a relative URL against a base URL.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
