package dom

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var ErrNoElement = errors.New("markup does not contain any element")

// Parse parses an HTML fragment, as if it were the content of a body element,
// and returns its first top-level element with its whole subtree.
func Parse(r io.Reader) (*Element, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return build(n), nil
		}
	}
	return nil, ErrNoElement
}

// ParseString is Parse over a string.
func ParseString(markup string) (*Element, error) {
	return Parse(strings.NewReader(markup))
}

func build(n *html.Node) *Element {
	e := wrap(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		child := build(c)
		child.parent = e
		e.children = append(e.children, child)
	}
	return e
}

// Render writes the HTML serialization of e and its subtree to w.
func (e *Element) Render(w io.Writer) error {
	return html.Render(w, e.node)
}

// String returns the HTML serialization of e.
func (e *Element) String() string {
	var b bytes.Buffer
	if err := e.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

// RenderIndent writes an indented HTML serialization of e to w.
func (e *Element) RenderIndent(w io.Writer) error {
	var b bytes.Buffer
	if err := e.Render(&b); err != nil {
		return err
	}
	_, err := io.WriteString(w, gohtml.Format(b.String()))
	return err
}
