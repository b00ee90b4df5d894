package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/recipescrape"
)

var _ recipescrape.FormatDetector = (*Detector)(nil)

// Detector identifies the recipe format of a page by running the Detect
// check of each structured strategy in priority order.
type Detector struct {
	strategies []Strategy
}

// NewDetector creates a new Detector over the default strategies.
func NewDetector() *Detector {
	return &Detector{strategies: DefaultStrategies()}
}

// Detect returns the format of the first strategy whose signature markup
// is present. Returns FormatUnknown if none is.
//
// Linked-data detection only checks for a script block, so a page reported
// as FormatLinkedData may still hold no Recipe object.
func (d *Detector) Detect(html string) recipescrape.Format {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return recipescrape.FormatUnknown
	}
	return d.DetectDocument(doc)
}

// DetectDocument is like Detect for an already parsed document.
func (d *Detector) DetectDocument(doc *goquery.Document) recipescrape.Format {
	for _, s := range d.strategies {
		if s.Detect(doc) {
			return s.Format()
		}
	}
	return recipescrape.FormatUnknown
}
