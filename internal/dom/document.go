// Package dom is the headless document the views are mounted into.
package dom

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// MountID is the id of the node every view is injected into.
	MountID = "app"
	// NavLinkClass tags links that navigate without a full page reload.
	NavLinkClass = "nav-link-spa"
)

// ErrNoListener is returned by Dispatch when nothing listens for an event.
var ErrNoListener = errors.New("no listener for event")

type listenerKey struct {
	target string
	event  string
}

// Document is the page of one tab: body classes, the mount node, pending
// notices and the event listeners of the mounted view.
type Document struct {
	shell     *template.Template
	classes   []string
	mount     *html.Node
	mountSeq  uint64
	current   *View
	listeners map[listenerKey]Handler
	notices   []string
}

// ShellData is passed to the shell template on Render.
type ShellData struct {
	BodyClass string
	MountID   string
	Mount     template.HTML
	Notices   []string
}

// NewDocument creates an empty document rendered through shell.
// A nil shell renders the mount subtree only.
func NewDocument(shell *template.Template) *Document {
	return &Document{
		shell: shell,
		mount: &html.Node{
			Type:     html.ElementNode,
			Data:     "div",
			DataAtom: atom.Div,
			Attr:     []html.Attribute{{Key: "id", Val: MountID}},
		},
		listeners: make(map[listenerKey]Handler),
	}
}

// Mount replaces the mounted view with markup. Listeners of the previous view
// are dropped together with its nodes.
func (d *Document) Mount(markup string) (*View, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment: %w", err)
	}

	replaceChildren(d.mount, nodes)
	d.mountSeq++
	d.listeners = make(map[listenerKey]Handler)
	d.current = &View{doc: d, seq: d.mountSeq}
	return d.current, nil
}

// MountError replaces the mounted view with an inline page-level error.
func (d *Document) MountError(msg string) {
	markup := `<h1 class="text-center text-danger mt-5">` + html.EscapeString(msg) + `</h1>`
	_, _ = d.Mount(markup) // escaped text always parses
}

// Current returns the handle of the mounted view, nil before the first mount.
func (d *Document) Current() *View {
	return d.current
}

// AddClass adds a class to the document body.
func (d *Document) AddClass(name string) {
	if !d.HasClass(name) {
		d.classes = append(d.classes, name)
	}
}

// RemoveClass removes a class from the document body.
func (d *Document) RemoveClass(name string) {
	d.classes = slices.DeleteFunc(d.classes, func(c string) bool { return c == name })
}

// HasClass reports whether the body carries the class.
func (d *Document) HasClass(name string) bool {
	return slices.Contains(d.classes, name)
}

// BodyClass returns the class attribute of the document body.
func (d *Document) BodyClass() string {
	return strings.Join(d.classes, " ")
}

// Notify queues a user-visible notice.
func (d *Document) Notify(msg string) {
	if msg != "" {
		d.notices = append(d.notices, msg)
	}
}

// Notices returns the queued notices.
func (d *Document) Notices() []string {
	return slices.Clone(d.notices)
}

// TakeNotices returns the queued notices and clears the queue.
func (d *Document) TakeNotices() []string {
	n := d.notices
	d.notices = nil
	return n
}

// Dispatch delivers an event to the listener registered by the mounted view.
func (d *Document) Dispatch(ctx context.Context, ev Event) error {
	h, ok := d.listeners[listenerKey{target: ev.Target, event: ev.Type}]
	if !ok {
		return fmt.Errorf("%w: %s on #%s", ErrNoListener, ev.Type, ev.Target)
	}
	return h(ctx, ev)
}

// NavLinks returns the data-path of every client-side navigation link of the mounted view.
func (d *Document) NavLinks() []string {
	var paths []string
	walk(d.mount, func(n *html.Node) bool {
		if n.Type == html.ElementNode && hasClass(n, NavLinkClass) {
			if p := attr(n, "data-path"); p != "" {
				paths = append(paths, p)
			}
		}
		return true
	})
	return paths
}

// RenderMount writes the markup of the mounted view.
func (d *Document) RenderMount(w io.Writer) error {
	for c := d.mount.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}
	return nil
}

// Render writes the full page.
func (d *Document) Render(w io.Writer) error {
	if d.shell == nil {
		return d.RenderMount(w)
	}
	var mount bytes.Buffer
	if err := d.RenderMount(&mount); err != nil {
		return err
	}
	return d.shell.Execute(w, ShellData{
		BodyClass: d.BodyClass(),
		MountID:   MountID,
		Mount:     template.HTML(mount.String()), //nolint:gosec
		Notices:   d.Notices(),
	})
}

func replaceChildren(parent *html.Node, nodes []*html.Node) {
	for c := parent.FirstChild; c != nil; {
		next := c.NextSibling
		parent.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
}

// walk visits n and its descendants depth-first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(attr(n, "class")), class)
}
