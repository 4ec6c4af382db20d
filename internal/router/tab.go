package router

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/crudnote/internal/apperror"
	"github.com/jon4hz/crudnote/internal/dom"
	"github.com/jon4hz/crudnote/internal/preference"
	"github.com/jon4hz/crudnote/internal/session"
)

// ErrNoHistory is returned by Back and Forward when the history cannot move.
var ErrNoHistory = errors.New("history cannot move")

// Tab is one browser tab: its navigation state, storages and document.
type Tab struct {
	router     *Router
	history    History
	session    *session.Store
	prefs      *preference.Store
	doc        *dom.Document
	generation atomic.Uint64
}

func (t *Tab) History() History               { return t.history }
func (t *Tab) Session() *session.Store        { return t.session }
func (t *Tab) Preferences() *preference.Store { return t.prefs }
func (t *Tab) Document() *dom.Document        { return t.doc }

// Render renders the current path, as on the initial page load.
func (t *Tab) Render(ctx context.Context) error {
	return t.router.ResolveAndRender(ctx, t)
}

// Navigate pushes path and renders it.
func (t *Tab) Navigate(ctx context.Context, path string) error {
	t.history.Push(path)
	return t.Render(ctx)
}

// FollowLink activates a client-side navigation link of the mounted view. It
// reports false when no such link is mounted, leaving navigation to the caller.
func (t *Tab) FollowLink(ctx context.Context, path string) (bool, error) {
	if !slices.Contains(t.doc.NavLinks(), path) {
		return false, nil
	}
	return true, t.Navigate(ctx, path)
}

type stepper interface {
	Back() bool
	Forward() bool
}

// Back moves back in history and renders the new current path.
func (t *Tab) Back(ctx context.Context) error {
	s, ok := t.history.(stepper)
	if !ok || !s.Back() {
		return ErrNoHistory
	}
	return t.Render(ctx)
}

// Forward moves forward in history and renders the new current path.
func (t *Tab) Forward(ctx context.Context) error {
	s, ok := t.history.(stepper)
	if !ok || !s.Forward() {
		return ErrNoHistory
	}
	return t.Render(ctx)
}

// Dispatch delivers a DOM event to the mounted view. Errors of the listener are
// surfaced to the user and returned.
func (t *Tab) Dispatch(ctx context.Context, ev dom.Event) error {
	err := t.doc.Dispatch(ctx, ev)
	if err == nil {
		return nil
	}
	if errors.Is(err, dom.ErrNoListener) {
		log.Debug("Ignoring event", "target", ev.Target, "event", ev.Type, "path", t.history.Path())
		return err
	}
	t.Fail(fmt.Errorf("%s on #%s: %w", ev.Type, ev.Target, err))
	return err
}

// Notify shows a notice to the user.
func (t *Tab) Notify(msg string) {
	t.doc.Notify(msg)
}

// Fail logs err and shows its notice to the user.
func (t *Tab) Fail(err error) {
	if err == nil {
		return
	}
	log.Error("Operation failed", "path", t.history.Path(), "error", err)
	t.doc.Notify(apperror.Notice(err))
}
