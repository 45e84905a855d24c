// Package fs provides file-based storage for crawl results.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/sitecrawl"
)

// Ensure PageStore implements sitecrawl.PageStore at compile time.
var _ sitecrawl.PageStore = (*PageStore)(nil)

// PageStore implements sitecrawl.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on
// Commit; an aborted or failed crawl leaves no partial output behind.
type PageStore struct {
	baseDir string
	name    string
}

// NewPageStore creates a new PageStore. baseDir is the parent directory,
// name is the output directory name. Files are saved to baseDir/name.tmp
// and moved to baseDir/name on Commit.
func NewPageStore(baseDir, name string) *PageStore {
	return &PageStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *PageStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *PageStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes a page to the store's temporary directory.
func (s *PageStore) Save(ctx context.Context, page *sitecrawl.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(s.tempDir(), relPath)
	if !strings.HasPrefix(fullPath, s.tempDir()+string(filepath.Separator)) {
		return sitecrawl.Errorf(sitecrawl.EINVALID, "page URL %q escapes the store directory", page.URL)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatPage(page)), 0644)
}

// Commit atomically replaces the final directory with the temporary one.
func (s *PageStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything saved since the store was created.
func (s *PageStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// FormatPage formats a page with YAML frontmatter followed by its
// outgoing links.
func FormatPage(page *sitecrawl.Page) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(page.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(page.Title)
	b.WriteString("\ncrawled: ")
	b.WriteString(time.Now().Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	for _, link := range page.OutgoingLinks {
		b.WriteString("- ")
		b.WriteString(link)
		b.WriteString("\n")
	}
	return b.String()
}

// URLToPath converts a page URL to a relative file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", sitecrawl.Errorf(sitecrawl.EINVALID, "invalid page URL %q", rawURL)
	}

	path := u.Path
	if path == "" || path == "/" {
		return "index.md", nil
	}

	path = strings.TrimPrefix(path, "/")
	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}
	return path + ".md", nil
}
