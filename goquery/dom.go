package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/recipescrape"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// sectionLookahead is how many element siblings after a heading are
// considered part of that heading's section.
const sectionLookahead = 3

var (
	headingSel       = cascadia.MustCompile("h2, h3, h4, h5, h6")
	listItemSel      = cascadia.MustCompile("li")
	blockChildSel    = cascadia.MustCompile("p, div")
	recipeHeadingSel = cascadia.MustCompile(`[class*="recipe"] h1, [class*="recipe"] h2, [class*="recipe"] h3, [id*="recipe"] h1, [id*="recipe"] h2, [id*="recipe"] h3`)
	topHeadingSel    = cascadia.MustCompile("h1")
	titleSel         = cascadia.MustCompile("title")
)

var (
	ingredientKeywords  = []string{"ingredient"}
	instructionKeywords = []string{"instruction", "direction", "step"}
)

// headingSections maps the first few element siblings after every heading
// under root to the heading's text. A sibling heading ends the section.
// Headings that only name a part of the recipe ("Ingredients") label
// nothing.
func headingSections(root *goquery.Selection) map[*html.Node]string {
	sections := make(map[*html.Node]string)
	root.FindMatcher(headingSel).Each(func(_ int, h *goquery.Selection) {
		label := strings.TrimRight(cleanText(h), ":")
		if label == "" || isSectionTitle(label, ingredientKeywords) || isSectionTitle(label, instructionKeywords) {
			return
		}
		next := h.Get(0).NextSibling
		for seen := 0; next != nil && seen < sectionLookahead; next = next.NextSibling {
			if next.Type != html.ElementNode {
				continue
			}
			if isHeading(next) {
				break
			}
			if _, ok := sections[next]; !ok {
				sections[next] = label
			}
			seen++
		}
	})
	return sections
}

// sectionOf returns the section label of n or its closest labeled ancestor
// below stop. A nil stop searches up to the document root.
func sectionOf(sections map[*html.Node]string, n, stop *html.Node) string {
	for ; n != nil && n != stop; n = n.Parent {
		if label, ok := sections[n]; ok {
			return label
		}
	}
	return ""
}

func isHeading(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

// matchesKeyword reports whether an element's class, id or itemprop value,
// or the name of any of its attributes, contains one of the keywords.
func matchesKeyword(n *html.Node, keywords []string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Html, atom.Head, atom.Body, atom.Script, atom.Style, atom.Meta, atom.Link,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return false
	}
	for _, a := range n.Attr {
		key := strings.ToLower(a.Key)
		if containsAny(key, keywords) {
			return true
		}
		switch key {
		case "class", "id", "itemprop":
			if containsAny(strings.ToLower(a.Val), keywords) {
				return true
			}
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// keywordContainers returns the outermost elements matching the keywords,
// in document order.
func keywordContainers(doc *goquery.Document, keywords []string) *goquery.Selection {
	matched := make(map[*html.Node]bool)
	all := doc.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		if matchesKeyword(s.Get(0), keywords) {
			matched[s.Get(0)] = true
			return true
		}
		return false
	})
	return all.FilterFunction(func(_ int, s *goquery.Selection) bool {
		for p := s.Get(0).Parent; p != nil; p = p.Parent {
			if matched[p] {
				return false
			}
		}
		return true
	})
}

// candidateLine is one line of text collected from a keyword container.
type candidateLine struct {
	Text    string
	Section string
}

// collectLines gathers line candidates from the outermost elements matching
// the keywords. List items are preferred; containers without list items
// yield their paragraph-like children, or their own text.
func collectLines(doc *goquery.Document, keywords []string) []candidateLine {
	sections := headingSections(doc.Selection)
	seen := make(map[*html.Node]bool)
	var lines []candidateLine

	add := func(s *goquery.Selection, container *html.Node) {
		n := s.Get(0)
		if seen[n] {
			return
		}
		seen[n] = true
		text := cleanText(s)
		if text == "" || isSectionTitle(text, keywords) {
			return
		}
		lines = append(lines, candidateLine{Text: text, Section: sectionOf(sections, n, container)})
	}

	keywordContainers(doc, keywords).Each(func(_ int, c *goquery.Selection) {
		container := c.Get(0)
		if items := c.FindMatcher(listItemSel); items.Length() > 0 {
			items.Each(func(_ int, li *goquery.Selection) {
				// Nested lists are read through their innermost items.
				if li.FindMatcher(listItemSel).Length() == 0 {
					add(li, container)
				}
			})
			return
		}
		if blocks := c.ChildrenMatcher(blockChildSel); blocks.Length() > 0 {
			blocks.Each(func(_ int, b *goquery.Selection) { add(b, container) })
			return
		}
		add(c, container)
	})
	return lines
}

// isSectionTitle reports whether text is just a label such as
// "Ingredients" or "Directions:" rather than content.
func isSectionTitle(text string, keywords []string) bool {
	t := strings.ToLower(strings.TrimRight(text, ": "))
	t = strings.TrimSuffix(t, "s")
	for _, kw := range keywords {
		if t == kw {
			return true
		}
	}
	return t == "method" || t == "preparation"
}

// findTitle falls back through a heading inside a recipe-labeled
// container, the first top-level heading and the document title.
func findTitle(doc *goquery.Document) string {
	for _, m := range []goquery.Matcher{recipeHeadingSel, topHeadingSel, titleSel} {
		if title := cleanText(doc.FindMatcher(m).First()); title != "" {
			return title
		}
	}
	return ""
}

// findInstructions collects instruction steps with the keyword heuristics.
func findInstructions(doc *goquery.Document) []string {
	var steps []string
	for _, line := range collectLines(doc, instructionKeywords) {
		steps = append(steps, line.Text)
	}
	return recipescrape.CleanInstructions(steps)
}
