package dom

import (
	"context"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Event is a DOM event delivered to a mounted view.
type Event struct {
	// Target is the id of the element the event fired on.
	Target string
	// Type is the event type, e.g. "submit" or "click".
	Type string
	// Values holds the form field values keyed by field id.
	Values url.Values
}

// Value returns the value of a form field.
func (e Event) Value(field string) string {
	return e.Values.Get(field)
}

// Handler handles an event.
type Handler func(ctx context.Context, ev Event) error

// View is the handle of one mounted view. Controllers only touch the page
// through it. A handle outlived by a newer mount is inert.
type View struct {
	doc *Document
	seq uint64
}

// Stale reports whether another view has been mounted since this one.
func (v *View) Stale() bool {
	return v.seq != v.doc.mountSeq
}

func (v *View) element(id string) *html.Node {
	if v.Stale() || id == "" {
		return nil
	}
	var found *html.Node
	walk(v.doc.mount, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id && n != v.doc.mount {
			found = n
			return false
		}
		return true
	})
	return found
}

// Has reports whether the view contains an element with id.
func (v *View) Has(id string) bool {
	return v.element(id) != nil
}

// Text returns the text content of the element with id.
func (v *View) Text(id string) string {
	n := v.element(id)
	if n == nil {
		return ""
	}
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// Attr returns an attribute of the element with id.
func (v *View) Attr(id, key string) string {
	n := v.element(id)
	if n == nil {
		return ""
	}
	return attr(n, key)
}

// SetText replaces the content of the element with id by text.
func (v *View) SetText(id, text string) bool {
	n := v.element(id)
	if n == nil {
		return false
	}
	replaceChildren(n, []*html.Node{{Type: html.TextNode, Data: text}})
	return true
}

// SetHTML replaces the content of the element with id by markup.
func (v *View) SetHTML(id, markup string) bool {
	n := v.element(id)
	if n == nil {
		return false
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		return false
	}
	replaceChildren(n, nodes)
	return true
}

// SetAttr sets an attribute of the element with id.
func (v *View) SetAttr(id, key, val string) bool {
	n := v.element(id)
	if n == nil {
		return false
	}
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return true
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
	return true
}

// On registers h for events of type event on the element with id. It returns
// false when the view has no such element.
func (v *View) On(id, event string, h Handler) bool {
	if !v.Has(id) {
		return false
	}
	v.doc.listeners[listenerKey{target: id, event: event}] = h
	return true
}
