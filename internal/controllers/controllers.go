// Package controllers wires the behavior of the views after they are mounted.
package controllers

import (
	"context"

	"github.com/jon4hz/crudnote/internal/backend"
	"github.com/jon4hz/crudnote/internal/config"
	"github.com/jon4hz/crudnote/internal/models"
	"github.com/jon4hz/crudnote/internal/router"
)

const (
	NoticeSignedIn   = "Signed in successfully!"
	NoticeRegistered = "Registration successful! You can now sign in."
	NoticeSignedOut  = "You have been signed out."
	NoticeNewNote    = "Creating notes is coming soon."
)

// Users is the part of the backend the controllers need.
type Users interface {
	ListUsers(ctx context.Context, opts *backend.ListOptions) ([]models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
}

// Register installs the controllers of all views on r.
func Register(r *router.Router, users Users, gravatar *config.GravatarConfig) {
	r.Handle("login", &Login{users: users})
	r.Handle("register", &Registration{users: users})
	r.Handle("home", &Home{})
	r.Handle("profile", &Profile{gravatar: gravatar})
}
