package controllers

import (
	"context"

	"github.com/jon4hz/crudnote/internal/config"
	"github.com/jon4hz/crudnote/internal/dom"
	"github.com/jon4hz/crudnote/internal/gravatar"
	"github.com/jon4hz/crudnote/internal/router"
	"github.com/mergestat/timediff"
)

// Profile shows the account of the signed in user.
type Profile struct {
	gravatar *config.GravatarConfig
}

func (c *Profile) Init(ctx context.Context, tab *router.Tab, v *dom.View) error {
	user, ok := tab.Session().Get()
	if !ok {
		return tab.Navigate(ctx, router.LoginPath)
	}

	v.SetText("profileFullName", user.DisplayName())
	v.SetText("profileUsername", user.Username)
	v.SetText("profileEmail", user.Email)
	if !user.RegistrationDate.IsZero() {
		v.SetText("profileRegistered", timediff.TimeDiff(user.RegistrationDate.Time))
		v.SetAttr("profileRegistered", "title", user.RegistrationDate.Format("2006-01-02"))
	}
	if u := gravatar.URL(user.Email, c.gravatar); u != "" {
		v.SetAttr("profileAvatar", "src", u)
		v.SetAttr("profileAvatar", "class", "rounded-circle mx-auto mb-3")
	}

	bindAccountActions(tab, v)
	return nil
}
