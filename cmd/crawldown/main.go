package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/awalczyk/crawldown"
	"github.com/awalczyk/crawldown/crawl"
	"github.com/awalczyk/crawldown/github"
	"github.com/awalczyk/crawldown/goquery"
	"github.com/awalczyk/crawldown/htmltomarkdown"
	cdhttp "github.com/awalczyk/crawldown/http"
	cdslog "github.com/awalczyk/crawldown/slog"
	"github.com/google/uuid"
)

func main() {
	ctx := context.Background()

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

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("crawldown"),
		kong.Description("Crawl a site or GitHub tree to local markdown files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	// Diagnostics go to stderr; pages and progress go to stdout.
	var logger *slog.Logger
	if !cli.Quiet {
		level := slog.LevelInfo
		if cli.Verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
			With("crawl_id", uuid.NewString())
	}

	// Transport options are the crawl's fetch configuration.
	opts := []cdhttp.Option{cdhttp.WithTimeout(cli.Timeout)}
	if cli.UserAgent != "" {
		opts = append(opts, cdhttp.WithUserAgent(cli.UserAgent))
	}
	if cli.Rate > 0 {
		opts = append(opts, cdhttp.WithRateLimit(cli.Rate))
	}
	for _, h := range cli.Header {
		key, value, ok := strings.Cut(h, ":")
		if !ok {
			return fmt.Errorf("invalid header %q, expected Key: Value", h)
		}
		opts = append(opts, cdhttp.WithHeader(strings.TrimSpace(key), strings.TrimSpace(value)))
	}

	var fetcher crawldown.Fetcher = cdhttp.NewFetcher(opts...)
	defer fetcher.Close()
	if logger != nil {
		fetcher = cdslog.NewLoggingFetcher(fetcher, logger)
	}

	var ghOpts []github.Option
	if cli.Token != "" {
		ghOpts = append(ghOpts, github.WithToken(cli.Token))
	}

	crawler := &crawl.Crawler{
		Fetcher:   fetcher,
		Extractor: goquery.NewExtractor(),
		Converter: htmltomarkdown.NewConverter(),
		Links:     goquery.NewLinkExtractor(),
		Trees:     github.NewClient(ghOpts...),
		Config: crawldown.Config{
			Selector:       cli.Selector,
			MaxConnections: cli.Concurrency,
			Exclude:        cli.Exclude,
			BreakOnError:   !cli.ContinueOnError,
			Logger:         logger,
		},
	}

	cmd := &FetchCmd{
		URL:     cli.URL,
		Out:     cli.Out,
		Preview: cli.Preview,
	}
	return cmd.Run(ctx, crawler, stdout, stderr)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Selector        string        `short:"s" help:"CSS selector narrowing extraction to a sub-tree"`
	Concurrency     int           `short:"c" default:"5" help:"Concurrent fetches per batch"`
	Exclude         []string      `short:"x" help:"Filename to exclude, repeatable (e.g. license, changelog.md)"`
	ContinueOnError bool          `help:"Log failed fetches and continue instead of aborting"`
	Preview         bool          `short:"p" help:"Print page URLs without writing files"`
	Quiet           bool          `short:"q" help:"Disable diagnostic logging"`
	Verbose         bool          `short:"v" help:"Enable per-request debug logging"`
	Timeout         time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Header          []string      `short:"H" help:"Extra request header (Key: Value), repeatable"`
	UserAgent       string        `help:"User-Agent header for page fetches"`
	Rate            float64       `help:"Max requests per second (0 = unlimited)"`
	Token           string        `env:"GITHUB_TOKEN" help:"GitHub API token for repository-tree crawls"`
	URL             string        `arg:"" required:"" help:"Start URL (site or github.com tree URL)"`
	Out             string        `arg:"" optional:"" default:"." help:"Output directory for markdown files"`
}
