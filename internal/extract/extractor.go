package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/qualcanal/qualcanal/internal/match"
	"github.com/qualcanal/qualcanal/internal/parser"
)

const (
	// MaxSiblingChars caps how much sibling text is read after the heading.
	MaxSiblingChars = 40000
	// Terminator ends the sibling walk once it shows up in a chunk.
	Terminator = "Ver mais jogos"
	// HeadingSelector lists the heading levels searched for the schedule anchor.
	HeadingSelector = "h2, h3, h4"
)

// defaultHeadings are the anchor phrases, in priority order.
var defaultHeadings = []string{"Agenda de jogos", "Agenda de jogos em destaque"}

// Path records which strategy produced a result.
type Path string

const (
	PathNone     Path = "none"
	PathTable    Path = "table"
	PathSiblings Path = "siblings"
	PathPage     Path = "page"
)

// Result is the outcome of one extraction pass.
type Result struct {
	Matches []*match.Match
	Path    Path
}

// Extractor finds schedule lines in a document and parses them.
type Extractor struct {
	parser   *parser.Parser
	Headings []string
	MaxChars int
}

// New creates an Extractor that feeds lines to p.
func New(p *parser.Parser) *Extractor {
	if p == nil {
		p = parser.New(nil)
	}
	return &Extractor{
		parser:   p,
		Headings: append([]string(nil), defaultHeadings...),
		MaxChars: MaxSiblingChars,
	}
}

// Extract runs the heading-anchored strategies. A table following the heading
// wins outright, even when none of its rows parse; otherwise the heading's
// siblings are read as text.
func (e *Extractor) Extract(doc *goquery.Document) Result {
	heading := e.findHeading(doc)
	if heading == nil {
		return Result{Matches: []*match.Match{}, Path: PathNone}
	}

	if table := findNext(heading, atom.Table); table != nil {
		return Result{Matches: e.parseTable(doc.FindNodes(table)), Path: PathTable}
	}

	return Result{Matches: e.parseLines(e.siblingText(heading)), Path: PathSiblings}
}

// ExtractPage parses the visible text of the whole document line by line.
// It is the last resort when Extract finds nothing.
func (e *Extractor) ExtractPage(doc *goquery.Document) []*match.Match {
	matches := make([]*match.Match, 0)
	for _, root := range doc.Nodes {
		matches = append(matches, e.parseLines(VisibleText(root))...)
	}
	return matches
}

func (e *Extractor) findHeading(doc *goquery.Document) *html.Node {
	headings := doc.Find(HeadingSelector)
	for _, phrase := range e.Headings {
		var found *html.Node
		headings.EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if strings.Contains(strings.TrimSpace(sel.Text()), phrase) {
				found = sel.Get(0)
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// parseTable treats every row with at least two cells as one " | "-joined line.
func (e *Extractor) parseTable(table *goquery.Selection) []*match.Match {
	matches := make([]*match.Match, 0)
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}
		columns := make([]string, 0, cells.Length())
		for _, cell := range cells.Nodes {
			columns = append(columns, NodeText(cell))
		}
		if m := e.parser.ParseLine(strings.Join(columns, " | ")); m != nil {
			matches = append(matches, m)
		}
	})
	return matches
}

// siblingText accumulates the text of the nodes after heading.
func (e *Extractor) siblingText(heading *html.Node) string {
	var chunks []string
	budget := 0

walk:
	for node := Wrap(heading.NextSibling); node != nil && budget < e.MaxChars; node = node.Next() {
		text := node.Text()
		switch node.(type) {
		case Element:
			chunks = append(chunks, text)
			budget += utf8.RuneCountInString(text)
			if strings.Contains(text, Terminator) {
				break walk
			}
		case TextNode:
			if text != "" {
				chunks = append(chunks, text)
				budget += utf8.RuneCountInString(text)
			}
		}
	}

	return strings.Join(chunks, "\n")
}

func (e *Extractor) parseLines(text string) []*match.Match {
	matches := make([]*match.Match, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := e.parser.ParseLine(line); m != nil {
			matches = append(matches, m)
		}
	}
	return matches
}
