package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/recipescrape"
)

var _ recipescrape.RecipeExtractor = (*Extractor)(nil)

// Extractor runs the recipe strategies in priority order and returns the
// first result with ingredients. GenericStrategy is always tried last and
// always produces a record.
type Extractor struct {
	strategies []Strategy
	fallback   Strategy
	metadata   []recipescrape.MetadataExtractor
	converter  recipescrape.Converter
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithMetadataExtractor adds a metadata extractor used to backfill the
// title, description and image when no strategy found them. Extractors
// are consulted in the order added until nothing is missing.
func WithMetadataExtractor(m recipescrape.MetadataExtractor) ExtractorOption {
	return func(e *Extractor) {
		e.metadata = append(e.metadata, m)
	}
}

// WithConverter sets a converter for descriptions that contain markup.
func WithConverter(c recipescrape.Converter) ExtractorOption {
	return func(e *Extractor) {
		e.converter = c
	}
}

// WithStrategies replaces the structured strategies. The generic fallback
// is kept.
func WithStrategies(strategies ...Strategy) ExtractorOption {
	return func(e *Extractor) {
		e.strategies = strategies
	}
}

// NewExtractor creates an Extractor with the default strategy order:
// plugin markup, data attributes, linked data, then generic HTML.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		strategies: DefaultStrategies(),
		fallback:   NewGenericStrategy(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register adds a strategy after the existing ones and before the generic
// fallback.
func (e *Extractor) Register(s Strategy) {
	e.strategies = append(e.strategies, s)
}

// Strategies returns all strategies in the order they are tried.
func (e *Extractor) Strategies() []Strategy {
	out := make([]Strategy, 0, len(e.strategies)+1)
	out = append(out, e.strategies...)
	return append(out, e.fallback)
}

// Extract parses html and returns a normalized recipe. Blank input still
// yields a placeholder record; it fails only when html cannot be parsed.
func (e *Extractor) Extract(html string, sourceURL string) (*recipescrape.ScrapedRecipe, error) {
	rec, _, err := e.ExtractFormat(html, sourceURL)
	return rec, err
}

// ExtractFormat is like Extract but also returns the format of the
// strategy that produced the recipe.
func (e *Extractor) ExtractFormat(html string, sourceURL string) (*recipescrape.ScrapedRecipe, recipescrape.Format, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, recipescrape.FormatUnknown, recipescrape.Errorf(recipescrape.EINVALID, "failed to parse HTML from %s: %v", sourceURL, err)
	}

	rec, format := e.run(doc)
	e.backfill(rec, html)
	rec.Normalize()

	return rec, format, nil
}

func (e *Extractor) run(doc *goquery.Document) (*recipescrape.ScrapedRecipe, recipescrape.Format) {
	for _, s := range e.strategies {
		if !s.Detect(doc) {
			continue
		}
		if rec, ok := s.Extract(doc); ok && rec != nil && len(rec.Ingredients) > 0 {
			return rec, s.Format()
		}
	}
	rec, _ := e.fallback.Extract(doc)
	if rec == nil {
		rec = &recipescrape.ScrapedRecipe{}
	}
	return rec, e.fallback.Format()
}

// backfill applies the optional metadata extractor and converter. Their
// failures are not fatal; the record is returned as is.
func (e *Extractor) backfill(rec *recipescrape.ScrapedRecipe, html string) {
	for _, m := range e.metadata {
		if rec.Title != "" && rec.Description != nil && rec.ImageURL != nil {
			break
		}
		meta, err := m.ExtractMetadata(html)
		if err != nil || meta == nil {
			continue
		}
		if rec.Title == "" {
			rec.Title = strings.TrimSpace(meta.Title)
		}
		if rec.Description == nil {
			rec.Description = optionalString(meta.Description)
		}
		if rec.ImageURL == nil {
			rec.ImageURL = optionalString(meta.ImageURL)
		}
	}

	if e.converter != nil && rec.Description != nil && strings.Contains(*rec.Description, "<") {
		if md, err := e.converter.Convert(*rec.Description); err == nil {
			rec.Description = optionalString(md)
		}
	}
}
