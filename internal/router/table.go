package router

import (
	"fmt"

	"github.com/jon4hz/crudnote/internal/apperror"
	"github.com/samber/lo"
)

const (
	RootPath  = "/"
	LoginPath = "/login"
	HomePath  = "/home"
)

// Route maps a URL path to a logical view name.
type Route struct {
	Path         string
	View         string
	RequiresAuth bool
}

// Table is the static route table. It is not mutated after creation.
type Table struct {
	routes []Route
	byPath map[string]Route
}

// NewTable creates a route table. The root and login paths must be present and
// the login view must not require authentication, so resolution always terminates.
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{
		routes: routes,
		byPath: make(map[string]Route, len(routes)),
	}
	for _, r := range routes {
		if _, dup := t.byPath[r.Path]; dup {
			return nil, fmt.Errorf("duplicate route %s", r.Path)
		}
		t.byPath[r.Path] = r
	}
	if _, ok := t.byPath[RootPath]; !ok {
		return nil, fmt.Errorf("route table is missing %s", RootPath)
	}
	login, ok := t.byPath[LoginPath]
	if !ok {
		return nil, fmt.Errorf("route table is missing %s", LoginPath)
	}
	if login.RequiresAuth {
		return nil, fmt.Errorf("%s must not require authentication", LoginPath)
	}
	return t, nil
}

// DefaultTable returns the route table of the application.
func DefaultTable() *Table {
	t, err := NewTable(
		Route{Path: "/", View: "landing"},
		Route{Path: "/login", View: "login"},
		Route{Path: "/register", View: "register"},
		Route{Path: "/home", View: "home", RequiresAuth: true},
		Route{Path: "/profile", View: "profile", RequiresAuth: true},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// Routes returns the routes in declaration order.
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}

// Lookup returns the route for path.
func (t *Table) Lookup(path string) (Route, bool) {
	r, ok := t.byPath[path]
	return r, ok
}

// ProtectedViews returns the names of the views requiring authentication.
func (t *Table) ProtectedViews() []string {
	return lo.FilterMap(t.routes, func(r Route, _ int) (string, bool) {
		return r.View, r.RequiresAuth
	})
}

// Hop is one redirect taken during resolution.
type Hop struct {
	From   string
	To     string
	Reason error
}

// Resolution is the outcome of resolving a path.
type Resolution struct {
	Route Route
	Hops  []Hop
}

// Resolve maps path to the route to render. An unknown path is redirected to
// the root exactly once; a protected route without a session is redirected to
// the login route. Resolution always terminates.
func (t *Table) Resolve(path string, authenticated bool) Resolution {
	var res Resolution

	r, ok := t.byPath[path]
	if !ok {
		res.Hops = append(res.Hops, Hop{From: path, To: RootPath, Reason: apperror.ErrRouteNotFound})
		r = t.byPath[RootPath]
	}

	if r.RequiresAuth && !authenticated {
		res.Hops = append(res.Hops, Hop{From: r.Path, To: LoginPath, Reason: apperror.ErrAuthRequired})
		r = t.byPath[LoginPath]
	}

	res.Route = r
	return res
}
