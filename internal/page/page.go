// Package page models the two input representations the extraction pipeline
// runs against: a parsed HTML document narrowed to the statistics scope, and
// a flat text rendering of the same page. Field extractors are written
// against the Source capability and upgrade to Structured when the document
// tree is available.
package page

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/hyperifyio/statblock/internal/textutil"
)

// maxScanBlocks bounds how many leading text blocks of a structured scope
// feed the attack scan, so that spell lists and lore sections further down
// the page cannot contribute false matches.
const maxScanBlocks = 40

// Source is the capability every field extractor can rely on, regardless of
// which retrieval route produced the page.
type Source interface {
	// Lines returns the cleaned textual lines of the page in document order.
	Lines() []string
	// FindLine returns the first line matching re.
	FindLine(re *regexp.Regexp) (string, bool)
	// ScanWindow returns the text window the attack extractor scans.
	ScanWindow() string
}

// Structured is the extended capability available when the page arrived as
// HTML and a document tree exists.
type Structured interface {
	Source
	// ScopeTexts returns the cleaned text of each element matching the CSS
	// selector within the statistics scope, in document order.
	ScopeTexts(selector string) []string
	// DocTexts is ScopeTexts over the whole document rather than the scope.
	DocTexts(selector string) []string
}

// scopeSelectors are tried in order when narrowing a document to its
// statistics container. The site-specific id comes first, then generic
// main-content containers. The fallback to the document itself means scope
// selection never fails.
var scopeSelectors = []string{"#main-details", "#main", ".main-content", "main", "article", "body"}

// StructuredScope wraps a parsed document narrowed to the statistics scope.
type StructuredScope struct {
	doc   *goquery.Document
	scope *goquery.Selection
	lines []string
}

// ParseHTML parses body and selects the statistics scope.
func ParseHTML(body string) (*StructuredScope, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	scope := doc.Selection
	for _, sel := range scopeSelectors {
		if s := doc.Find(sel); s.Length() > 0 {
			scope = s.First()
			break
		}
	}
	return &StructuredScope{doc: doc, scope: scope}, nil
}

// Lines renders the scope as cleaned text lines, one per block-level run.
func (s *StructuredScope) Lines() []string {
	if s.lines != nil {
		return s.lines
	}
	var b strings.Builder
	for _, n := range s.scope.Nodes {
		collectText(&b, n)
	}
	s.lines = splitClean(b.String())
	return s.lines
}

// FindLine returns the first line matching re.
func (s *StructuredScope) FindLine(re *regexp.Regexp) (string, bool) {
	return findLine(s.Lines(), re)
}

// ScanWindow joins the scope's leading text blocks; later sections of long
// pages are excluded from attack scanning.
func (s *StructuredScope) ScanWindow() string {
	lines := s.Lines()
	if len(lines) > maxScanBlocks {
		lines = lines[:maxScanBlocks]
	}
	return strings.Join(lines, "\n")
}

// ScopeTexts returns the cleaned text of each selector match inside the scope.
func (s *StructuredScope) ScopeTexts(selector string) []string {
	return selectionTexts(s.scope.Find(selector))
}

// DocTexts returns the cleaned text of each selector match in the whole
// document.
func (s *StructuredScope) DocTexts(selector string) []string {
	return selectionTexts(s.doc.Find(selector))
}

func selectionTexts(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, el *goquery.Selection) {
		if t := clean(el.Text()); t != "" {
			out = append(out, t)
		}
	})
	return out
}

// FlatText is the Source over a plain-text rendering of the page.
type FlatText struct {
	body  string
	lines []string
}

// NewFlatText wraps a plain-text page body.
func NewFlatText(body string) *FlatText {
	return &FlatText{body: body}
}

// Lines returns the cleaned non-empty lines of the body.
func (t *FlatText) Lines() []string {
	if t.lines == nil {
		t.lines = splitClean(t.body)
	}
	return t.lines
}

// FindLine returns the first line matching re.
func (t *FlatText) FindLine(re *regexp.Regexp) (string, bool) {
	return findLine(t.Lines(), re)
}

// ScanWindow returns the entire cleaned body; text mirrors carry no reliable
// section structure to narrow by.
func (t *FlatText) ScanWindow() string {
	return strings.Join(t.Lines(), "\n")
}

func findLine(lines []string, re *regexp.Regexp) (string, bool) {
	for _, ln := range lines {
		if re.MatchString(ln) {
			return ln, true
		}
	}
	return "", false
}

// collectText walks the node tree writing text with newlines at block
// boundaries, so that inline markup inside one statistics line (bold labels,
// links) collapses into a single textual line.
func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript", "nav", "footer", "aside", "iframe":
			return
		case "br", "hr", "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol", "div", "tr":
			b.WriteString("\n")
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "div", "tr":
			b.WriteString("\n")
		}
	}
}

func splitClean(s string) []string {
	raw := strings.Split(s, "\n")
	out := make([]string, 0, len(raw))
	for _, ln := range raw {
		if t := clean(ln); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func clean(s string) string {
	return textutil.CollapseSpaces(textutil.NormalizeSigns(s))
}
