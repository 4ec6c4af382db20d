// Package views retrieves the HTML fragments of the application views.
package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/jon4hz/crudnote/internal/apperror"
)

// Loader retrieves the fragment of a view by its logical name. Loaders never
// touch the document; injection is up to the caller.
type Loader interface {
	Load(ctx context.Context, name string) (string, error)
}

// LoaderFunc adapts a function to a Loader.
type LoaderFunc func(ctx context.Context, name string) (string, error)

func (f LoaderFunc) Load(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

// fragmentPath returns the conventional location of a view fragment.
func fragmentPath(name string) string {
	return "views/" + name + ".html"
}

func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: invalid view name %q", apperror.ErrFragmentUnavailable, name)
	}
	return nil
}
