package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/recipescrape"
	"github.com/fwojciec/recipescrape/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Scraper   *scrape.Service
	Batch     *scrape.Batch
	Extractor FormatExtractor
	Detector  recipescrape.FormatDetector
	Recipes   recipescrape.RecipeService
	Store     func(dir string) recipescrape.RecipeStore
}

// FormatExtractor extracts a recipe and reports which format produced it.
type FormatExtractor interface {
	ExtractFormat(html string, sourceURL string) (*recipescrape.ScrapedRecipe, recipescrape.Format, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB        string        `name:"db" env:"RECIPESCRAPE_DB" help:"Database path (default ~/.recipescrape/recipes.db)"`
	Timeout   time.Duration `env:"RECIPESCRAPE_TIMEOUT" default:"15s" help:"Per-page fetch timeout"`
	GeminiKey string        `name:"gemini-key" env:"GEMINI_API_KEY" help:"Gemini API key used by --refine"`
	Debug     bool          `help:"Log fetches, extractions and normalizer calls to stderr"`

	Scrape  ScrapeCmd  `cmd:"" help:"Scrape a recipe from a URL"`
	Extract ExtractCmd `cmd:"" help:"Extract a recipe from a saved HTML file"`
	Detect  DetectCmd  `cmd:"" help:"Report the recipe markup format of a saved HTML file"`
	Batch   BatchCmd   `cmd:"" help:"Scrape many recipes from URLs or a site's sitemap"`
	List    ListCmd    `cmd:"" help:"List saved recipes"`
	Show    ShowCmd    `cmd:"" help:"Show a saved recipe"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved recipe"`
	Export  ExportCmd  `cmd:"" help:"Write saved recipes as Markdown files"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL    string `arg:"" help:"Recipe page URL"`
	Save   bool   `short:"s" help:"Save the recipe to the database"`
	Owner  string `default:"local" env:"RECIPESCRAPE_OWNER" help:"Owner to save the recipe for"`
	Refine bool   `short:"r" help:"Resolve ambiguous ingredients with Gemini"`
	JSON   bool   `name:"json" help:"Print the recipe as JSON"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File string `arg:"" type:"existingfile" help:"Saved HTML page"`
	URL  string `name:"url" help:"Source URL of the page, for diagnostics"`
	JSON bool   `name:"json" help:"Print the recipe as JSON"`
}

// DetectCmd is the "detect" subcommand.
type DetectCmd struct {
	File string `arg:"" type:"existingfile" help:"Saved HTML page"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLs        []string `arg:"" optional:"" name:"url" help:"Recipe page URLs"`
	Sitemap     string   `help:"Site whose sitemaps list the recipe pages"`
	Include     []string `short:"i" help:"Keep sitemap URLs matching regex (repeatable)"`
	Exclude     []string `short:"x" help:"Drop sitemap URLs matching regex (repeatable)"`
	Limit       int      `short:"n" help:"Stop after this many sitemap URLs (0 for no limit)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
	RPS         float64  `name:"rps" default:"1" help:"Requests per second per domain (0 for no limit)"`
	Save        bool     `short:"s" help:"Save recipes to the database"`
	Owner       string   `default:"local" env:"RECIPESCRAPE_OWNER" help:"Owner to save recipes for"`
	Refine      bool     `short:"r" help:"Resolve ambiguous ingredients with Gemini"`
	BloomAbove  int      `name:"bloom-above" default:"100000" help:"Deduplicate with a Bloom filter above this many URLs (0 to never)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Owner  string `help:"Only list recipes of this owner"`
	Limit  int    `short:"n" default:"50" help:"Maximum number of recipes"`
	Offset int    `help:"Number of recipes to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Recipe ID"`
	JSON bool   `name:"json" help:"Print the recipe as JSON"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Recipe ID"`
	Force bool   `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir   string `arg:"" help:"Output directory, replaced on success"`
	Owner string `help:"Only export recipes of this owner"`
}
