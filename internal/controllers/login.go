package controllers

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/crudnote/internal/apperror"
	"github.com/jon4hz/crudnote/internal/dom"
	"github.com/jon4hz/crudnote/internal/models"
	"github.com/jon4hz/crudnote/internal/router"
	"github.com/samber/lo"
)

// Login signs users in with their email or username.
type Login struct {
	users Users
}

func (c *Login) Init(_ context.Context, tab *router.Tab, v *dom.View) error {
	v.On("loginForm", "submit", func(ctx context.Context, ev dom.Event) error {
		return c.submit(ctx, tab, ev.Value("loginEmailOrUsername"), ev.Value("loginPassword"))
	})
	return nil
}

func (c *Login) submit(ctx context.Context, tab *router.Tab, identifier, password string) error {
	users, err := c.users.ListUsers(ctx, nil)
	if err != nil {
		return apperror.WithNotice(fmt.Errorf("failed to list users: %w", err), apperror.NoticeLoginFailed)
	}

	user, ok := lo.Find(users, func(u models.User) bool {
		return (u.Email == identifier || u.Username == identifier) && u.Password == password
	})
	if !ok {
		log.Info("Rejected sign in", "identifier", identifier)
		return apperror.ErrCredentialMismatch
	}

	if err := tab.Session().Set(&user); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	log.Info("User signed in", "username", user.Username)

	if err := tab.Navigate(ctx, router.HomePath); err != nil {
		return err
	}
	tab.Notify(NoticeSignedIn)
	return nil
}
