package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/recipescrape"
	"github.com/fwojciec/recipescrape/fs"
	"github.com/fwojciec/recipescrape/gemini"
	"github.com/fwojciec/recipescrape/goquery"
	"github.com/fwojciec/recipescrape/htmltomarkdown"
	recipehttp "github.com/fwojciec/recipescrape/http"
	"github.com/fwojciec/recipescrape/readability"
	"github.com/fwojciec/recipescrape/scrape"
	recipeslog "github.com/fwojciec/recipescrape/slog"
	"github.com/fwojciec/recipescrape/sqlite"
	"github.com/fwojciec/recipescrape/trafilatura"
	"google.golang.org/genai"
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
type Main struct {
	// Database path. Set before calling Run(); --db and RECIPESCRAPE_DB
	// take precedence.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing. When set, they are used instead of
	// the real implementations.
	RecipeService recipescrape.RecipeService
	Fetcher       recipescrape.Fetcher
	Sitemaps      recipescrape.SitemapService
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
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("recipescrape"),
		kong.Description("Extract structured recipes from web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'recipescrape --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	var logger *slog.Logger
	if cli.Debug {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	// Extraction is offline and always available.
	detector := goquery.NewDetector()
	extractor := goquery.NewExtractor(
		goquery.WithMetadataExtractor(trafilatura.NewMetadataExtractor()),
		goquery.WithMetadataExtractor(readability.NewMetadataExtractor()),
		goquery.WithConverter(htmltomarkdown.NewConverter()),
	)
	deps.Extractor = extractor
	deps.Detector = detector

	deps.Store = func(dir string) recipescrape.RecipeStore {
		dir = filepath.Clean(dir)
		return fs.NewFileStore(filepath.Dir(dir), filepath.Base(dir))
	}

	needsDB := cmd == "list" || cmd == "show" || cmd == "delete" || cmd == "export" ||
		(cmd == "scrape" && cli.Scrape.Save) || (cmd == "batch" && cli.Batch.Save)
	if needsDB {
		if err := m.openDB(cli.DB, stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Recipes = m.RecipeService
	}

	if cmd == "scrape" || cmd == "batch" {
		fetcher := m.Fetcher
		if fetcher == nil {
			fetcher = recipehttp.NewFetcher(recipehttp.WithTimeout(cli.Timeout))
		}
		defer fetcher.Close()

		var recipeExtractor recipescrape.RecipeExtractor = extractor
		if logger != nil {
			fetcher = recipeslog.NewLoggingFetcher(fetcher, logger)
			recipeExtractor = recipeslog.NewLoggingExtractor(extractor, detector, logger)
		}

		deps.Scraper = &scrape.Service{
			Fetcher:   fetcher,
			Extractor: recipeExtractor,
			Recipes:   deps.Recipes,
			Logf: func(format string, args ...any) {
				fmt.Fprintf(stderr, "  "+format+"\n", args...)
			},
		}

		if (cmd == "scrape" && cli.Scrape.Refine) || (cmd == "batch" && cli.Batch.Refine) {
			normalizer, err := newNormalizer(ctx, cli.GeminiKey, stderr)
			if err != nil {
				return err
			}
			deps.Scraper.Normalizer = normalizer
			if logger != nil {
				deps.Scraper.Normalizer = recipeslog.NewLoggingNormalizer(normalizer, logger)
			}
		}
	}

	if cmd == "batch" {
		sitemaps := m.Sitemaps
		if sitemaps == nil {
			var opts []recipehttp.SitemapOption
			if cli.Batch.Limit > 0 {
				opts = append(opts, recipehttp.WithMaxURLs(cli.Batch.Limit))
			}
			sitemaps = recipehttp.NewSitemapService(nil, opts...)
		}
		if logger != nil {
			sitemaps = recipeslog.NewLoggingSitemapService(sitemaps, logger)
		}

		deps.Scraper.RetryDelays = scrape.DefaultRetryDelays()
		deps.Batch = &scrape.Batch{
			Service:     deps.Scraper,
			Sitemaps:    sitemaps,
			Limiter:     scrape.NewDomainLimiter(cli.Batch.RPS),
			Concurrency: cli.Batch.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// openDB opens the database unless a RecipeService was injected.
func (m *Main) openDB(path string, stderr io.Writer) error {
	if m.RecipeService != nil {
		return nil
	}
	if path != "" {
		m.DBPath = path
	}
	if err := os.MkdirAll(filepath.Dir(m.DBPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set RECIPESCRAPE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	m.RecipeService = sqlite.NewRecipeService(m.DB)
	return nil
}

// tokenizerModel is used for token counting of normalizer prompts.
const tokenizerModel = "gemini-2.5-flash"

func newNormalizer(ctx context.Context, apiKey string, stderr io.Writer) (*gemini.Normalizer, error) {
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set; --refine needs it")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	var opts []gemini.NormalizerOption
	if tc, err := gemini.NewTokenCounter(tokenizerModel); err == nil {
		opts = append(opts, gemini.WithTokenCounter(tc, gemini.DefaultTokenBudget))
	} else {
		fmt.Fprintf(stderr, "  token counter unavailable, sending ingredients in one request: %v\n", err)
	}

	return gemini.NewNormalizer(client, opts...), nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "recipes.db"
	}
	return filepath.Join(home, ".recipescrape", "recipes.db")
}
