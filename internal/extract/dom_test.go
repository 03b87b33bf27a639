package extract

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func parseFragment(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("html.Parse() error: %v", err)
	}
	return doc
}

func TestNodeText(t *testing.T) {
	doc := parseFragment(t, `<div>  Dom <b>21</b>
		Set <script>ignored()</script><span> 14:00 </span></div>`)

	div := findNext(doc, atom.Div)
	if div == nil {
		t.Fatal("div not found")
	}

	if got := NodeText(div); got != "Dom 21 Set 14:00" {
		t.Errorf("NodeText() = %q, want %q", got, "Dom 21 Set 14:00")
	}
}

func TestWrap_SiblingWalk(t *testing.T) {
	doc := parseFragment(t, `<body><h2>x</h2>  free text  <!-- c --><p>para</p></body>`)

	var h2 *html.Node
	for n := doc; n != nil; n = nextInDocument(n) {
		if n.Type == html.ElementNode && n.Data == "h2" {
			h2 = n
			break
		}
	}
	if h2 == nil {
		t.Fatal("h2 not found")
	}

	first := Wrap(h2.NextSibling)
	if _, ok := first.(TextNode); !ok {
		t.Fatalf("first sibling is %T, want TextNode", first)
	}
	if first.Text() != "free text" {
		t.Errorf("Text() = %q, want %q", first.Text(), "free text")
	}

	second := first.Next()
	if _, ok := second.(Element); !ok {
		t.Fatalf("second sibling is %T, want Element (comment skipped)", second)
	}
	if second.Text() != "para" {
		t.Errorf("Text() = %q, want %q", second.Text(), "para")
	}

	if third := second.Next(); third != nil {
		t.Errorf("Next() = %v, want nil", third)
	}
}

func TestVisibleText(t *testing.T) {
	doc := parseFragment(t, `<body><p>a <i>b</i></p><div>c</div><table><tr><td>x</td><td>y</td></tr></table></body>`)

	var lines []string
	for _, line := range strings.Split(VisibleText(doc), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	want := []string{"a b", "c", "x | y"}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("VisibleText() lines = %q, want %q", lines, want)
	}
}
