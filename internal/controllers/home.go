package controllers

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/crudnote/internal/dom"
	"github.com/jon4hz/crudnote/internal/router"
	"github.com/jon4hz/crudnote/internal/theme"
)

// Home greets the signed in user.
type Home struct{}

func (c *Home) Init(ctx context.Context, tab *router.Tab, v *dom.View) error {
	user, ok := tab.Session().Get()
	if !ok {
		return tab.Navigate(ctx, router.LoginPath)
	}

	name := user.DisplayName()
	v.SetText("userName", name)
	v.SetText("welcomeMessage", fmt.Sprintf("Welcome, %s!", name))

	bindAccountActions(tab, v)
	v.On("newNoteBtn", "click", func(context.Context, dom.Event) error {
		tab.Notify(NoticeNewNote)
		return nil
	})
	return nil
}

// bindAccountActions wires the sign out and theme toggle controls shared by
// the signed in views.
func bindAccountActions(tab *router.Tab, v *dom.View) {
	v.On("signOutBtn", "click", func(ctx context.Context, _ dom.Event) error {
		if err := tab.Session().Clear(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		log.Info("User signed out")
		if err := tab.Navigate(ctx, router.LoginPath); err != nil {
			return err
		}
		tab.Notify(NoticeSignedOut)
		return nil
	})
	v.On(theme.ToggleButtonID, "click", func(context.Context, dom.Event) error {
		_, err := theme.Toggle(tab.Document(), tab.Preferences())
		return err
	})
}
