package sitecrawl

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// CanonicalURL returns the form of a URL used for deduplication: the
// fragment and a single trailing slash are stripped. Two URLs that
// differ only by fragment or trailing slash are the same crawl unit.
func CanonicalURL(rawURL string) string {
	if idx := strings.Index(rawURL, "#"); idx != -1 {
		rawURL = rawURL[:idx]
	}
	if len(rawURL) > 1 && strings.HasSuffix(rawURL, "/") {
		rawURL = rawURL[:len(rawURL)-1]
	}
	return rawURL
}

// DedupKey hashes the canonical form of a URL with xxhash for use as an
// exact set key.
func DedupKey(rawURL string) uint64 {
	return xxhash.Sum64String(CanonicalURL(rawURL))
}
