package controllers

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jon4hz/crudnote/internal/apperror"
	"github.com/jon4hz/crudnote/internal/dom"
	"github.com/jon4hz/crudnote/internal/models"
	"github.com/jon4hz/crudnote/internal/router"
	"github.com/samber/lo"
)

// Registration creates new user accounts.
type Registration struct {
	users Users
}

func (c *Registration) Init(_ context.Context, tab *router.Tab, v *dom.View) error {
	v.On("registerForm", "submit", func(ctx context.Context, ev dom.Event) error {
		return c.submit(ctx, tab, &models.User{
			FullName: ev.Value("fullName"),
			Email:    ev.Value("email"),
			Username: ev.Value("username"),
			Password: ev.Value("password"),
		})
	})
	return nil
}

func (c *Registration) submit(ctx context.Context, tab *router.Tab, user *models.User) error {
	if lo.Contains([]string{user.FullName, user.Email, user.Username, user.Password}, "") {
		return apperror.ErrValidationFailure
	}

	// uniqueness is checked against every existing user
	users, err := c.users.ListUsers(ctx, nil)
	if err != nil {
		return apperror.WithNotice(fmt.Errorf("failed to list users: %w", err), apperror.NoticeRegisterFailed)
	}
	if lo.ContainsBy(users, func(u models.User) bool { return u.Email == user.Email }) {
		return apperror.ErrEmailTaken
	}
	if lo.ContainsBy(users, func(u models.User) bool { return u.Username == user.Username }) {
		return apperror.ErrUsernameTaken
	}

	user.ID = models.ID(uuid.NewString())
	user.RegistrationDate = models.NewTimestamp(time.Now().UTC())

	created, err := c.users.CreateUser(ctx, user)
	if err != nil {
		return apperror.WithNotice(fmt.Errorf("failed to create user: %w", err), apperror.NoticeRegisterFailed)
	}
	log.Info("User registered", "username", created.Username, "id", created.ID)

	// registering does not sign in, the home route sends the tab on to login
	if err := tab.Navigate(ctx, router.HomePath); err != nil {
		return err
	}
	tab.Notify(NoticeRegistered)
	return nil
}
