package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/crawl"
	"github.com/fwojciec/sitecrawl/fs"
	"github.com/fwojciec/sitecrawl/goquery"
	sitehttp "github.com/fwojciec/sitecrawl/http"
	siteslog "github.com/fwojciec/sitecrawl/slog"
)

func main() {
	// Ctrl-C cancels the crawl cooperatively: parked workers are woken
	// and the stream reports context.Canceled.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Workers int           `short:"w" default:"4" help:"Number of concurrent fetch workers"`
	Timeout time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Sitemap bool          `help:"Seed the crawl from the site's sitemap"`
	Out     string        `short:"o" optional:"" type:"path" help:"Directory to save fetched pages to"`
	Verbose bool          `short:"v" help:"Enable debug logging"`
	URL     string        `arg:"" required:"" help:"Root URL to crawl"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitecrawl"),
		kong.Description("Crawl every same-site page reachable from a root URL"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire dependencies
	fetcher := sitehttp.NewFetcher(sitehttp.WithTimeout(cli.Timeout))
	defer fetcher.Close()

	var pageFetcher sitecrawl.PageFetcher = goquery.NewPageFetcher(fetcher)
	if cli.Verbose {
		pageFetcher = siteslog.NewLoggingPageFetcher(pageFetcher, logger)
	}

	var seeds []string
	if cli.Sitemap {
		var discoverer sitecrawl.SeedDiscoverer = sitehttp.NewSitemap(nil)
		discoverer = siteslog.NewLoggingSeedDiscoverer(discoverer, logger)
		seeds, err = discoverer.Discover(ctx, cli.URL)
		if err != nil {
			return fmt.Errorf("seed discovery: %w", err)
		}
	}

	var store sitecrawl.PageStore
	if cli.Out != "" {
		store = fs.NewPageStore(filepath.Dir(cli.Out), filepath.Base(cli.Out))
	}

	crawler := &crawl.Crawler{
		Fetcher: pageFetcher,
		Workers: cli.Workers,
		Logger:  logger,
	}

	stream, err := crawler.Crawl(ctx, cli.URL, seeds...)
	if err != nil {
		return err
	}

	count := 0
	for page := range stream.Pages() {
		count++
		fmt.Fprintf(stdout, "%s\t%s\n", page.URL, page.Title)
		if store != nil {
			if err := store.Save(ctx, page); err != nil {
				stream.Cancel()
				_ = store.Abort()
				return fmt.Errorf("saving %s: %w", page.URL, err)
			}
		}
	}
	if err := stream.Err(); err != nil {
		if store != nil {
			_ = store.Abort()
		}
		return err
	}
	if store != nil {
		if err := store.Commit(); err != nil {
			return fmt.Errorf("committing output: %w", err)
		}
	}

	fmt.Fprintf(stdout, "crawled %d pages\n", count)
	return nil
}
