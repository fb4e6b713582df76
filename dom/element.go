// Package dom is a small headless DOM. Elements keep their markup in
// golang.org/x/net/html nodes, so that they can be parsed from and rendered to
// HTML, and dispatch DOM custom events that bubble up to their ancestors.
//
// Like a browser DOM, it is meant to be used from a single goroutine.
package dom

import (
	"strings"

	eventloop "github.com/joeycumines/go-eventloop"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is a node of the headless DOM tree.
type Element struct {
	node     *html.Node
	parent   *Element
	children []*Element
	target   *eventloop.EventTarget
}

// NewElement creates a detached element with the given tag name and attributes.
func NewElement(tag string, attrs ...html.Attribute) *Element {
	tag = strings.ToLower(tag)
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     append([]html.Attribute(nil), attrs...),
	}
	return wrap(n)
}

func wrap(n *html.Node) *Element {
	return &Element{node: n, target: eventloop.NewEventTarget()}
}

// Attr is a shorthand to build an attribute for NewElement.
func Attr(name, value string) html.Attribute {
	return html.Attribute{Key: name, Val: value}
}

// TagName returns the lower-cased tag name.
func (e *Element) TagName() string { return e.node.Data }

// Node returns the underlying html node.
func (e *Element) Node() *html.Node { return e.node }

func (e *Element) Parent() *Element { return e.parent }

func (e *Element) Children() []*Element {
	return append([]*Element(nil), e.children...)
}

// Attr returns the value of the named attribute and whether it is present.
// Attribute names are case-insensitive.
func (e *Element) Attr(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttribute sets the named attribute, replacing any previous value.
func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

func (e *Element) HasAttribute(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
			return
		}
	}
}

// Attributes returns a copy of the element attributes, in document order.
func (e *Element) Attributes() []html.Attribute {
	return append([]html.Attribute(nil), e.node.Attr...)
}

// AppendChild moves child under e, detaching it from its previous parent first.
func (e *Element) AppendChild(child *Element) *Element {
	child.Remove()
	child.parent = e
	e.children = append(e.children, child)
	e.node.AppendChild(child.node)
	return e
}

// Remove detaches e from its parent.
func (e *Element) Remove() {
	p := e.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	p.node.RemoveChild(e.node)
	e.parent = nil
}

// QuerySelector returns the first descendant, in document order, whose tag name
// matches tag, or nil. Only tag selectors are supported.
func (e *Element) QuerySelector(tag string) *Element {
	tag = strings.ToLower(tag)
	for _, c := range e.children {
		if c.node.Data == tag {
			return c
		}
		if found := c.QuerySelector(tag); found != nil {
			return found
		}
	}
	return nil
}

// GetElementByID returns the first element of the subtree rooted at e, e included,
// whose id attribute equals id.
func (e *Element) GetElementByID(id string) *Element {
	if v, ok := e.Attr("id"); ok && v == id {
		return e
	}
	for _, c := range e.children {
		if found := c.GetElementByID(id); found != nil {
			return found
		}
	}
	return nil
}
