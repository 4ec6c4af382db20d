// Package router maps URL paths to views, gates protected views behind the
// session and drives the view loader and the view controllers.
package router

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/crudnote/internal/apperror"
	"github.com/jon4hz/crudnote/internal/dom"
	"github.com/jon4hz/crudnote/internal/preference"
	"github.com/jon4hz/crudnote/internal/session"
	"github.com/jon4hz/crudnote/internal/theme"
	"github.com/jon4hz/crudnote/internal/views"
)

// Controller initializes a view after its fragment has been mounted.
type Controller interface {
	Init(ctx context.Context, tab *Tab, view *dom.View) error
}

// ControllerFunc adapts a function to a Controller.
type ControllerFunc func(ctx context.Context, tab *Tab, view *dom.View) error

func (f ControllerFunc) Init(ctx context.Context, tab *Tab, view *dom.View) error {
	return f(ctx, tab, view)
}

// Router is shared by all tabs and safe for concurrent use once configured.
type Router struct {
	table       *Table
	loader      views.Loader
	controllers map[string]Controller
}

// New creates a router rendering the routes of table with fragments from loader.
func New(table *Table, loader views.Loader) *Router {
	return &Router{
		table:       table,
		loader:      loader,
		controllers: make(map[string]Controller),
	}
}

// Handle registers the controller of a view. It must not be called after the
// router started serving tabs.
func (r *Router) Handle(view string, c Controller) {
	r.controllers[view] = c
}

// Table returns the route table.
func (r *Router) Table() *Table {
	return r.table
}

// NewTab opens a tab on this router.
func (r *Router) NewTab(history History, sess *session.Store, prefs *preference.Store, doc *dom.Document) *Tab {
	return &Tab{
		router:  r,
		history: history,
		session: sess,
		prefs:   prefs,
		doc:     doc,
	}
}

// ResolveAndRender renders the view of the current path of the tab.
//
// Redirects rewrite the tab history. A fragment that cannot be loaded leaves an
// inline error in the mount node; it is logged and not returned. A load that
// completes after a newer navigation of the same tab started is dropped.
func (r *Router) ResolveAndRender(ctx context.Context, t *Tab) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gen := t.generation.Add(1)

	res := r.table.Resolve(t.history.Path(), t.session.Authenticated())
	for _, hop := range res.Hops {
		if errors.Is(hop.Reason, apperror.ErrAuthRequired) {
			log.Info("Unauthorized access to protected view, redirecting to login", "path", hop.From)
		} else {
			log.Debug("Unknown route, redirecting", "path", hop.From, "to", hop.To)
		}
		t.history.Push(hop.To)
	}

	view := res.Route.View
	markup, err := r.loader.Load(ctx, view)
	if t.generation.Load() != gen {
		log.Debug("Dropping stale view", "view", view)
		return nil
	}
	if err != nil {
		log.Error("Failed to load route", "view", view, "error", err)
		t.doc.MountError(apperror.NoticeLoadFailed)
		return nil
	}

	v, err := t.doc.Mount(markup)
	if err != nil {
		log.Error("Failed to mount view", "view", view, "error", err)
		t.doc.MountError(apperror.NoticeLoadFailed)
		return nil
	}
	log.Debug("View loaded", "view", view, "path", res.Route.Path)

	// new DOM, reflect the current theme on it
	theme.Apply(t.doc, t.prefs)

	if c, ok := r.controllers[view]; ok {
		if err := c.Init(ctx, t, v); err != nil {
			t.Fail(err)
		}
	}
	return nil
}
