// Package dom exposes the small set of tree queries the extractors need
// over a parsed HTML document.
//
// Parsing is tolerant: golang.org/x/net/html repairs malformed markup the
// way browsers do, so Parse only fails when the input cannot be read at all.
// Queries are answered with github.com/PuerkitoBio/goquery selections.
package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Tree is the capability set the extraction steps depend on.
type Tree interface {
	// FindAll returns every element named tag in document order. When attr
	// is not empty only elements carrying that attribute are returned.
	FindAll(tag, attr string) []Element
	// First returns the first element named tag.
	First(tag string) (Element, bool)
	// TextNodes returns every text node in depth-first order.
	TextNodes() []TextNode
}

// TextNode is a run of character data together with the name of the
// element that contains it.
type TextNode struct {
	Text   string
	Parent string
}

// Document is a parsed HTML document.
type Document struct {
	root *html.Node
	doc  *goquery.Document
}

var _ Tree = (*Document)(nil)

// Parse builds a Document from markup.
func Parse(text string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	return &Document{
		root: root,
		doc:  goquery.NewDocumentFromNode(root),
	}, nil
}

// FindAll implements Tree.
func (d *Document) FindAll(tag, attr string) []Element {
	return collect(d.doc.Selection, tag, attr)
}

// First implements Tree.
func (d *Document) First(tag string) (Element, bool) {
	sel := d.doc.Find(tag).First()
	if sel.Length() == 0 {
		return Element{}, false
	}
	return Element{sel: sel}, true
}

// TextNodes implements Tree.
func (d *Document) TextNodes() []TextNode {
	nodes := make([]TextNode, 0)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parent := ""
			if n.Parent != nil && n.Parent.Type == html.ElementNode {
				parent = n.Parent.Data
			}
			nodes = append(nodes, TextNode{Text: n.Data, Parent: parent})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)

	return nodes
}

// Element is a single element of a Document.
type Element struct {
	sel *goquery.Selection
}

// Tag returns the lowercase element name.
func (e Element) Tag() string {
	if e.sel == nil {
		return ""
	}
	return goquery.NodeName(e.sel)
}

// Attr returns the raw value of the named attribute.
func (e Element) Attr(name string) (string, bool) {
	if e.sel == nil {
		return "", false
	}
	return e.sel.Attr(name)
}

// Text returns the concatenated text of the element and its descendants.
func (e Element) Text() string {
	if e.sel == nil {
		return ""
	}
	return e.sel.Text()
}

// StrippedText returns the text nodes of the element and its descendants,
// each trimmed of surrounding whitespace, concatenated without a separator.
func (e Element) StrippedText() string {
	if e.sel == nil {
		return ""
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range e.sel.Nodes {
		walk(n)
	}

	return b.String()
}

// FindAll returns matching descendants of the element.
func (e Element) FindAll(tag, attr string) []Element {
	if e.sel == nil {
		return nil
	}
	return collect(e.sel, tag, attr)
}

func collect(sel *goquery.Selection, tag, attr string) []Element {
	found := sel.Find(selector(tag, attr))
	elems := make([]Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		elems = append(elems, Element{sel: s})
	})
	return elems
}

// selector builds a CSS selector such as "a[href]".
func selector(tag, attr string) string {
	if attr == "" {
		return tag
	}
	return tag + "[" + attr + "]"
}
