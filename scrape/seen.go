package scrape

import "github.com/fwojciec/recipescrape"

var _ recipescrape.URLSet = urlSet(nil)

// urlSet is the exact default for Batch.Seen. It is only touched from the
// goroutine calling Run.
type urlSet map[string]struct{}

func (s urlSet) TestAndAdd(url string) bool {
	if _, ok := s[url]; ok {
		return true
	}
	s[url] = struct{}{}
	return false
}
