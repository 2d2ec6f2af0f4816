package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/tickerlens/tickerlens"
	"github.com/tickerlens/tickerlens/crawl"
	"github.com/tickerlens/tickerlens/evidence"
	"github.com/tickerlens/tickerlens/finnhub"
	"github.com/tickerlens/tickerlens/gemini"
	"github.com/tickerlens/tickerlens/goquery"
	tlhttp "github.com/tickerlens/tickerlens/http"
	"github.com/tickerlens/tickerlens/resolve"
	"github.com/tickerlens/tickerlens/rod"
	tlslog "github.com/tickerlens/tickerlens/slog"
	"github.com/tickerlens/tickerlens/sqlite"
	"github.com/tickerlens/tickerlens/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	DocumentService tickerlens.DocumentService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Policy: tickerlens.DefaultDomainPolicy(),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tickerlens"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tickerlens --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set TICKERLENS_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	docs := sqlite.NewDocumentService(m.DB)
	docs.Logger = logger
	m.DocumentService = docs
	deps.DB = m.DB
	deps.Documents = docs

	if cmd == "add" {
		var fetcher tickerlens.Fetcher
		if cli.Add.Render {
			browser, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = browser
		} else {
			fetcher = tlhttp.NewFetcher()
		}
		defer fetcher.Close()

		var normalizer tickerlens.Normalizer = goquery.NewNormalizer()
		if cli.Add.Extractor == "article" {
			normalizer = trafilatura.NewNormalizer()
		}

		crawler := &crawl.Crawler{
			Fetcher:         tlslog.NewLoggingFetcher(fetcher, logger),
			Normalizer:      normalizer,
			Links:           goquery.NewLinkExtractor(),
			Documents:       docs,
			RateLimiter:     crawl.NewDomainLimiter(cli.Add.RateLimit),
			AllowDuplicates: cli.Add.AllowDupes,
			Concurrency:     cli.Add.Concurrency,
			Logger:          logger,
		}

		// Summary and translation backfill are best effort; crawling
		// works without a key.
		if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
			client, err := newGeminiClient(ctx, apiKey)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return err
			}
			crawler.Summarizer = gemini.NewSummarizer(client)
			crawler.Translator = gemini.NewTranslator(client)
		}

		deps.Crawler = crawler
	}

	if cmd == "ask" || cmd == "chat" {
		geminiKey := os.Getenv("GEMINI_API_KEY")
		if geminiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set")
		}
		finnhubKey := os.Getenv("FINNHUB_API_KEY")
		if finnhubKey == "" {
			fmt.Fprintln(stderr, "FINNHUB_API_KEY environment variable not set. Get an API key at https://finnhub.io")
			return fmt.Errorf("FINNHUB_API_KEY not set")
		}

		client, err := newGeminiClient(ctx, geminiKey)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return err
		}
		market := finnhub.NewClient(finnhubKey)

		resolver := resolve.NewResolver(
			gemini.NewEntityExtractor(client),
			tlslog.NewLoggingSymbolLookup(market, logger),
		)
		resolver.Logger = logger
		deps.Resolver = resolver

		aggregator := evidence.NewAggregator(
			tlslog.NewLoggingFactsService(market, logger),
			gemini.NewSummarizer(client),
		)
		aggregator.Logger = logger
		deps.Aggregator = aggregator

		deps.Answerer = gemini.NewAnswerer(client)
	}

	return kongCtx.Run(deps)
}

func newGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client, nil
}

func defaultDBPath() string {
	if path := os.Getenv("TICKERLENS_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "tickerlens.db"
	}
	dir := filepath.Join(home, ".tickerlens")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "tickerlens.db")
}
