package mock

import "github.com/fwojciec/recipescrape"

var _ recipescrape.Converter = (*Converter)(nil)

// Converter is a mock implementation of recipescrape.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
