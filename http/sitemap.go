package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/sitecrawl"
)

// Ensure Sitemap implements sitecrawl.SeedDiscoverer.
var _ sitecrawl.SeedDiscoverer = (*Sitemap)(nil)

// Sitemap discovers crawl seeds from a site's sitemaps. It checks
// robots.txt for Sitemap directives, falls back to /sitemap.xml, and
// resolves sitemap indexes recursively.
type Sitemap struct {
	client *http.Client
}

// NewSitemap creates a Sitemap discoverer using the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemap(client *http.Client) *Sitemap {
	if client == nil {
		client = http.DefaultClient
	}
	return &Sitemap{client: client}
}

// Discover returns the sitemap URLs that share baseURL as a prefix, so
// every seed belongs to the same crawl scope as the root. Returns an
// empty slice if the site has no sitemap.
func (s *Sitemap) Discover(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "invalid base URL %q", baseURL)
	}

	// Sitemaps live at the domain root regardless of the crawl prefix.
	root := *base
	root.Path = ""

	sitemapURLs, err := s.locate(ctx, &root)
	if err != nil {
		return nil, err
	}

	seeds := []string{}
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	for _, sm := range sitemapURLs {
		urls, err := s.collect(ctx, sm, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			if !strings.HasPrefix(u, baseURL) || seenURLs[u] {
				continue
			}
			seenURLs[u] = true
			seeds = append(seeds, u)
		}
	}

	return seeds, nil
}

// locate finds sitemap URLs from robots.txt Sitemap directives, falling
// back to /sitemap.xml when none are declared.
func (s *Sitemap) locate(ctx context.Context, root *url.URL) ([]string, error) {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"})
	if sitemaps, err := s.fromRobots(ctx, robotsURL.String()); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	exists, err := s.exists(ctx, fallback.String())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if exists {
		return []string{fallback.String()}, nil
	}
	return nil, nil
}

// fromRobots extracts Sitemap: directives from robots.txt.
func (s *Sitemap) fromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			continue
		}
		if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
			sitemaps = append(sitemaps, u)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINTERNAL, "reading robots.txt: %v", err)
	}

	return sitemaps, nil
}

// collect fetches a sitemap and returns its page URLs, recursing into
// sitemap indexes. Each sitemap is processed at most once.
func (s *Sitemap) collect(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "parsing sitemap XML: %v", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "empty sitemap XML at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var all []string
		for _, el := range root.SelectElements("sitemap") {
			loc := el.SelectElement("loc")
			if loc == nil {
				continue
			}
			nested := strings.TrimSpace(loc.Text())
			if nested == "" {
				continue
			}
			urls, err := s.collect(ctx, nested, seen)
			if err != nil {
				return nil, err
			}
			all = append(all, urls...)
		}
		return all, nil
	}

	var urls []string
	for _, el := range root.SelectElements("url") {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// get fetches a URL and returns the response body.
func (s *Sitemap) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "creating request for %s: %v", targetURL, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, sitecrawl.Errorf(sitecrawl.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp.Body, nil
}

// exists checks whether a URL answers 200 OK to a HEAD request.
func (s *Sitemap) exists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, sitecrawl.Errorf(sitecrawl.EINVALID, "creating request for %s: %v", targetURL, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
