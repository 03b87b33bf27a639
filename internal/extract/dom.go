package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node is a sibling-walkable view of a document node: either an element or a
// freestanding text node. Comments and doctypes are skipped.
type Node interface {
	// Text returns the trimmed text content of the node.
	Text() string
	// Next returns the next element or text sibling, or nil.
	Next() Node
}

// Element wraps an element node.
type Element struct{ n *html.Node }

// TextNode wraps a text node.
type TextNode struct{ n *html.Node }

// Wrap returns the first element or text node at or after n among its siblings.
func Wrap(n *html.Node) Node {
	for ; n != nil; n = n.NextSibling {
		switch n.Type {
		case html.ElementNode:
			return Element{n: n}
		case html.TextNode:
			return TextNode{n: n}
		}
	}
	return nil
}

func (e Element) Text() string { return NodeText(e.n) }
func (e Element) Next() Node   { return Wrap(e.n.NextSibling) }

func (t TextNode) Text() string { return strings.TrimSpace(t.n.Data) }
func (t TextNode) Next() Node   { return Wrap(t.n.NextSibling) }

// invisible elements never contribute text.
var invisible = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Head:     true,
}

// NodeText joins every visible descendant text node of n, each trimmed, with
// single spaces.
func NodeText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		switch cur.Type {
		case html.TextNode:
			if s := strings.TrimSpace(cur.Data); s != "" {
				parts = append(parts, s)
			}
			return
		case html.ElementNode:
			if invisible[cur.DataAtom] {
				return
			}
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

// nextInDocument returns the node following n in document order.
func nextInDocument(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

// findNext returns the first element after n in document order with the given tag.
func findNext(n *html.Node, tag atom.Atom) *html.Node {
	for cur := nextInDocument(n); cur != nil; cur = nextInDocument(cur) {
		if cur.Type == html.ElementNode && cur.DataAtom == tag {
			return cur
		}
	}
	return nil
}

// blocks start a new line in VisibleText.
var blocks = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Br: true, atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Fieldset: true, atom.Figure: true, atom.Footer: true, atom.Form: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.P: true, atom.Section: true, atom.Table: true, atom.Tr: true,
	atom.Ul: true,
}

// VisibleText renders the visible text under root one block per line. Table
// cells on the same row are joined with " | " so rows read like table lines.
func VisibleText(root *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if s := strings.TrimSpace(n.Data); s != "" {
				b.WriteString(s)
				b.WriteByte(' ')
			}
			return
		case html.ElementNode:
			if invisible[n.DataAtom] {
				return
			}
			if blocks[n.DataAtom] {
				b.WriteByte('\n')
			}
			if isCell(n) && hasPrevCell(n) {
				b.WriteString("| ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blocks[n.DataAtom] {
			b.WriteByte('\n')
		}
	}
	walk(root)
	return b.String()
}

func isCell(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.DataAtom == atom.Td || n.DataAtom == atom.Th)
}

func hasPrevCell(n *html.Node) bool {
	for p := n.PrevSibling; p != nil; p = p.PrevSibling {
		if isCell(p) {
			return true
		}
	}
	return false
}
